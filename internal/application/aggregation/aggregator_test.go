package aggregation_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/repair-rate/internal/application/aggregation"
	"github.com/jhoicas/repair-rate/internal/domain/entity"
)

func day(y, m, d int) time.Time { return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC) }

func bucket(t *testing.T, s string) entity.Bucket {
	t.Helper()
	b, err := entity.ParseBucket(s)
	require.NoError(t, err)
	return b
}

func TestAggregate_OuterJoinRellenaConCero(t *testing.T) {
	stock := []entity.StockEvent{
		{MaterialCode: "M1", Sequence: "1", Date: day(2023, 1, 15), Quantity: decimal.NewFromInt(100)},
		{MaterialCode: "M1", Sequence: "2", Date: day(2023, 1, 20), Quantity: decimal.NewFromInt(20)},
		{MaterialCode: "M2", Sequence: "1", Date: day(2023, 2, 1), Quantity: decimal.NewFromInt(40)},
	}
	repairs := []entity.RepairEvent{
		{BoardCode: "M1", Count: 5, Year: 2023, Month: 1},
		// reparaciones de material recibido en un mes anterior: sin entradas en marzo
		{BoardCode: "M1", Count: 2, Year: 2023, Month: 3},
	}

	aggs, st := aggregation.Aggregate(stock, repairs, aggregation.Window{})
	require.Len(t, aggs, 3)
	assert.Equal(t, 3, st.Groups)

	assert.Equal(t, "M1", aggs[0].Identifier)
	assert.Equal(t, "2023-01", aggs[0].Bucket.String())
	assert.Equal(t, "120", aggs[0].InboundQty.String())
	assert.Equal(t, "5", aggs[0].RepairQty.String())

	assert.Equal(t, "2023-03", aggs[1].Bucket.String())
	assert.True(t, aggs[1].InboundQty.IsZero(), "sin entradas debe valer 0, no faltar")
	assert.Equal(t, "2", aggs[1].RepairQty.String())

	assert.Equal(t, "M2", aggs[2].Identifier)
	assert.True(t, aggs[2].RepairQty.IsZero())
}

func TestAggregate_DeterministaSinImportarOrden(t *testing.T) {
	var stock []entity.StockEvent
	var repairs []entity.RepairEvent
	for i := 1; i <= 12; i++ {
		stock = append(stock, entity.StockEvent{MaterialCode: "M" + string(rune('A'+i%3)), Date: day(2023, i, 3), Quantity: decimal.NewFromInt(int64(i * 10))})
		repairs = append(repairs, entity.RepairEvent{BoardCode: "M" + string(rune('A'+i%4)), Count: int64(i), Year: 2023, Month: i})
	}
	render := func(aggs []entity.MonthlyAggregate) []string {
		out := make([]string, len(aggs))
		for i, a := range aggs {
			out[i] = a.Identifier + "|" + a.Bucket.String() + "|" + a.InboundQty.String() + "|" + a.RepairQty.String()
		}
		return out
	}
	first, _ := aggregation.Aggregate(stock, repairs, aggregation.Window{})
	want := render(first)

	r := rand.New(rand.NewSource(7))
	for n := 0; n < 5; n++ {
		r.Shuffle(len(stock), func(i, j int) { stock[i], stock[j] = stock[j], stock[i] })
		r.Shuffle(len(repairs), func(i, j int) { repairs[i], repairs[j] = repairs[j], repairs[i] })
		got, _ := aggregation.Aggregate(stock, repairs, aggregation.Window{})
		assert.Equal(t, want, render(got))
	}
}

func TestAggregate_VentanaSeAplicaAAmbosFlujos(t *testing.T) {
	stock := []entity.StockEvent{
		{MaterialCode: "M1", Date: day(2022, 12, 30), Quantity: decimal.NewFromInt(10)},
		{MaterialCode: "M1", Date: day(2023, 1, 2), Quantity: decimal.NewFromInt(10)},
	}
	repairs := []entity.RepairEvent{
		{BoardCode: "M1", Count: 1, Year: 2022, Month: 12},
		{BoardCode: "M1", Count: 1, Year: 2023, Month: 1},
	}
	w := aggregation.Window{Start: bucket(t, "2023-01")}

	aggs, st := aggregation.Aggregate(stock, repairs, w)
	require.Len(t, aggs, 1)
	assert.Equal(t, "2023-01", aggs[0].Bucket.String())
	assert.Equal(t, 1, st.StockOutOfWindow)
	assert.Equal(t, 1, st.RepairOutOfWindow)
}

func TestClassifyRepairs_SumaUnidadesPorEtiqueta(t *testing.T) {
	early := day(2023, 4, 20)
	longAgo := day(2021, 1, 1)
	repairs := []entity.RepairEvent{
		{BoardCode: "M1", Count: 3, Year: 2023, Month: 5, RepairDate: &early},
		{BoardCode: "M1", Count: 2, Year: 2023, Month: 5, RepairDate: &longAgo},
		{BoardCode: "M2", Count: 4, Year: 2023, Month: 5},
		{BoardCode: "M2", Count: 1, Year: 2023, Month: 5, RepairDate: &early},
	}

	classes, tally := aggregation.ClassifyRepairs(repairs, aggregation.Window{})
	require.Len(t, classes, 4)
	assert.Equal(t, entity.LabelERI, classes[0].Label)
	assert.Equal(t, entity.LabelLTR, classes[1].Label)
	assert.Equal(t, entity.LabelNA, classes[2].Label)

	require.Len(t, tally, 3)
	assert.Equal(t, entity.LabelERI, tally[0].Label)
	assert.Equal(t, "4", tally[0].Qty.String())
	assert.Equal(t, entity.LabelLTR, tally[1].Label)
	assert.Equal(t, entity.LabelNA, tally[2].Label)
	assert.Equal(t, "4", tally[2].Qty.String())
}
