package render_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/repair-rate/internal/application/pivot"
	"github.com/jhoicas/repair-rate/internal/domain"
	"github.com/jhoicas/repair-rate/internal/domain/entity"
	"github.com/jhoicas/repair-rate/internal/infrastructure/render"
)

func rateTable(t *testing.T) *pivot.Table {
	t.Helper()
	b1, err := entity.ParseBucket("2023-01")
	require.NoError(t, err)
	b2, err := entity.ParseBucket("2023-02")
	require.NoError(t, err)
	aggs := []entity.MonthlyAggregate{
		{Identifier: "M1", Bucket: b1, InboundQty: decimal.NewFromInt(100), RepairQty: decimal.NewFromInt(5)},
		{Identifier: "M1", Bucket: b2, InboundQty: decimal.NewFromInt(50), RepairQty: decimal.Zero},
	}
	return pivot.RateTable(aggs, func(string) string { return "desc1" }, pivot.DefaultLabels(), nil)
}

func TestCSVRenderer_Escribe(t *testing.T) {
	dir := t.TempDir()
	path, err := render.NewCSVRenderer(dir).Render(context.Background(), rateTable(t))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "repair_rate.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))

	recs, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, []string{"material_code", "material_desc", "2023-01", "2023-02"}, recs[0])
	assert.Equal(t, []string{"M1", "desc1", "5.00", "0.00"}, recs[1])
	assert.Equal(t, []string{"", "当月全局总计", "5.00", "0.00"}, recs[2])

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no deben quedar temporales")
}

func TestWriteAtomic_FalloNoDejaArchivos(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.csv")
	require.NoError(t, os.WriteFile(path, []byte("previo"), 0o600))

	boom := errors.New("boom")
	err := render.WriteAtomic(path, func(w io.Writer) error {
		_, _ = w.Write([]byte("parcial"))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previo", string(data))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCSVRenderer_DirectorioInvalido(t *testing.T) {
	file := filepath.Join(t.TempDir(), "archivo")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	_, err := render.NewCSVRenderer(filepath.Join(file, "sub")).Render(context.Background(), rateTable(t))
	assert.ErrorIs(t, err, domain.ErrSinkWrite)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "1.50", render.FormatValue(pivot.FormatPercent, decimal.RequireFromString("1.5")))
	assert.Equal(t, "120", render.FormatValue(pivot.FormatQuantity, decimal.NewFromInt(120)))
}
