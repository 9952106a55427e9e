package repairrate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/repair-rate/internal/domain/entity"
	"github.com/jhoicas/repair-rate/internal/domain/repairrate"
)

func TestLabelFor_Limites(t *testing.T) {
	cases := []struct {
		diff int
		want entity.Label
	}{
		{541, entity.LabelLTR},
		{540, entity.LabelYRR},
		{181, entity.LabelYRR},
		{180, entity.LabelERI},
		{1, entity.LabelERI},
		{0, entity.LabelNA},
		{-5, entity.LabelNA},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, repairrate.LabelFor(tc.diff), "diff=%d", tc.diff)
	}
}

func TestClassify_SinFechaEsNA(t *testing.T) {
	b, err := entity.BucketOf(2024, 3)
	require.NoError(t, err)

	c := repairrate.Classify("M1", b, nil)
	assert.Equal(t, entity.LabelNA, c.Label)
	assert.Nil(t, c.DiffDays)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), c.Reference)
}

func TestClassify_DiferenciaDesdePrimerDiaDelMes(t *testing.T) {
	b, err := entity.BucketOf(2024, 3)
	require.NoError(t, err)

	// 2024-03-01 menos 2024-02-28 = 2 días (2024 es bisiesto).
	repair := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	c := repairrate.Classify("M1", b, &repair)
	require.NotNil(t, c.DiffDays)
	assert.Equal(t, 2, *c.DiffDays)
	assert.Equal(t, entity.LabelERI, c.Label)

	// Reparación posterior al mes de referencia: diferencia negativa.
	later := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	c = repairrate.Classify("M1", b, &later)
	assert.Equal(t, -19, *c.DiffDays)
	assert.Equal(t, entity.LabelNA, c.Label)

	// Mismo día: NA.
	same := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	c = repairrate.Classify("M1", b, &same)
	assert.Equal(t, 0, *c.DiffDays)
	assert.Equal(t, entity.LabelNA, c.Label)
}

func TestDiffDays_IgnoraHoraYZona(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)
	ref := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	repair := time.Date(2021, 12, 1, 23, 30, 0, 0, loc)
	assert.Equal(t, 577, repairrate.DiffDays(ref, repair))
	assert.Equal(t, entity.LabelLTR, repairrate.LabelFor(577))
}

func TestDiffDays_FechasLejanas(t *testing.T) {
	ref := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 738520, repairrate.DiffDays(ref, time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, -2549392, repairrate.DiffDays(ref, time.Date(9003, 1, 1, 0, 0, 0, 0, time.UTC)))
}
