package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/repair-rate/internal/application/normalize"
	"github.com/jhoicas/repair-rate/internal/domain"
	"github.com/jhoicas/repair-rate/internal/domain/repository"
)

func TestMaterials_DescartaSinCodigoYDuplicados(t *testing.T) {
	n := normalize.New(normalize.Options{CleanDescriptions: true})
	raw := []repository.RawMaterialRow{
		{Code: " M1 ", Description: "主板 (A)", BoardCode: "B1"},
		{Code: "", Description: "sin código"},
		{Code: "M1", Description: "repetido"},
		{Code: 4030, Description: "numérico"},
	}

	got, st := n.Materials(raw)
	require.Len(t, got, 2)
	assert.Equal(t, "M1", got[0].Code)
	assert.Equal(t, "主板A", got[0].Description)
	assert.Equal(t, "B1", got[0].BoardCode)
	assert.Equal(t, "4030", got[1].Code)

	assert.Equal(t, 4, st.Read)
	assert.Equal(t, 2, st.Kept)
	assert.Equal(t, 1, st.MissingID)
	assert.Equal(t, 1, st.Conflicts)
	assert.Equal(t, 2, st.Dropped())
}

func TestStock_ConflictoDeClaveCompuesta(t *testing.T) {
	n := normalize.New(normalize.Options{})
	raw := []repository.RawStockRow{
		{MaterialCode: "M1", Sequence: "1", Date: "2023-01-15", Quantity: "100"},
		{MaterialCode: "M1", Sequence: "1", Date: "2023/01/15", Quantity: "5"}, // misma clave
		{MaterialCode: "M1", Sequence: "2", Date: "2023-01-15", Quantity: 7.5},
		{MaterialCode: "M1", Sequence: "3", Date: "2023-01-16", Quantity: ""},   // celda vacía
		{MaterialCode: "M1", Sequence: "4", Date: "no-date", Quantity: "1"},     // fecha ilegible
		{MaterialCode: "M1", Sequence: "5", Date: "2023-01-17", Quantity: "-3"}, // negativo
		{MaterialCode: nil, Sequence: "6", Date: "2023-01-17", Quantity: "1"},
	}

	got, st := n.Stock(raw)
	require.Len(t, got, 2)
	assert.Equal(t, "100", got[0].Quantity.String())
	assert.Equal(t, "7.5", got[1].Quantity.String())

	assert.Equal(t, 1, st.Conflicts)
	assert.Equal(t, 1, st.Blank)
	assert.Equal(t, 2, st.Malformed)
	assert.Equal(t, 1, st.MissingID)
	assert.Equal(t, 5, st.Dropped())

	require.Len(t, st.Samples, 3)
	assert.Equal(t, 1, st.Samples[0].Row)
	assert.ErrorIs(t, st.Samples[0], domain.ErrDuplicate)
	assert.Equal(t, 4, st.Samples[1].Row)
	assert.ErrorIs(t, st.Samples[1], domain.ErrMalformedRow)
	assert.Equal(t, 5, st.Samples[2].Row)
	assert.ErrorIs(t, st.Samples[2], domain.ErrMalformedRow)
}

func TestRepairs_FechaIlegibleConservaLaFila(t *testing.T) {
	n := normalize.New(normalize.Options{})
	raw := []repository.RawRepairRow{
		{BoardCode: "B1", Count: "3", Year: "2023", Month: "4", RepairDate: "2022-11-02"},
		{BoardCode: "B1", Count: 2.0, Year: 2023, Month: 5, RepairDate: "pendiente"},
		{BoardCode: "B1", Count: "1", Year: "2023", Month: "6"},
		{BoardCode: "B1", Count: "x", Year: "2023", Month: "6"},
		{BoardCode: "B1", Count: "1", Year: "2023", Month: "13"},
		{BoardCode: "B1", Count: "-1", Year: "2023", Month: "6"},
		{BoardCode: "  ", Count: "1", Year: "2023", Month: "6"},
	}

	got, st := n.Repairs(raw)
	require.Len(t, got, 3)

	require.NotNil(t, got[0].RepairDate)
	assert.Equal(t, "2022-11-02", got[0].RepairDate.Format("2006-01-02"))

	assert.Nil(t, got[1].RepairDate)
	assert.Equal(t, "pendiente", got[1].RepairDateRaw)
	assert.Equal(t, int64(2), got[1].Count)

	assert.Nil(t, got[2].RepairDate)
	assert.Empty(t, got[2].RepairDateRaw)

	assert.Equal(t, 1, st.UnparseableDates)
	assert.Equal(t, 3, st.Malformed)
	assert.Equal(t, 1, st.MissingID)

	require.Len(t, st.Samples, 4)
	assert.ErrorIs(t, st.Samples[0], domain.ErrUnparseableDate)
	assert.Contains(t, st.Samples[0].Error(), "pendiente")
	for _, re := range st.Samples[1:] {
		assert.ErrorIs(t, re, domain.ErrMalformedRow)
		assert.Equal(t, "B1", re.ID)
	}
}

func TestStock_MuestrasLimitadas(t *testing.T) {
	n := normalize.New(normalize.Options{})
	raw := make([]repository.RawStockRow, 0, 50)
	for i := 0; i < 50; i++ {
		raw = append(raw, repository.RawStockRow{MaterialCode: "M1", Sequence: "1", Date: "x", Quantity: "1"})
	}
	_, st := n.Stock(raw)
	assert.Equal(t, 50, st.Malformed)
	assert.Len(t, st.Samples, 10)
}
