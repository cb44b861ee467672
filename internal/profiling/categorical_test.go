package profiling

import (
	"testing"

	"healthlab/domain/core"
	"healthlab/domain/health"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProportions(t *testing.T) {
	res, err := Proportions(health.ColumnSmoker, []string{"no", "yes", "", "no", "no"})
	require.NoError(t, err)

	assert.Equal(t, 4, res.Total)
	require.Len(t, res.Values, 2)
	assert.Equal(t, "no", res.Values[0].Category)
	assert.Equal(t, 0.75, res.Values[0].Share)
	assert.Equal(t, "yes", res.Values[1].Category)
	assert.Equal(t, 0.25, res.Values[1].Share)
	assert.Equal(t, map[string]float64{"no": 0.75, "yes": 0.25}, res.AsMap())
}

func TestProportionsTiesByName(t *testing.T) {
	res, err := Proportions(health.ColumnSmoker, []string{"yes", "no"})
	require.NoError(t, err)

	assert.Equal(t, "no", res.Values[0].Category)
	assert.Equal(t, "yes", res.Values[1].Category)
}

func TestProportionsAllMissing(t *testing.T) {
	_, err := Proportions(health.ColumnSmoker, []string{"", ""})
	assert.ErrorIs(t, err, core.ErrEmptyDataset)
}

func TestGroupRates(t *testing.T) {
	res, err := GroupRates(health.ColumnSex, map[string][]float64{
		"Male":   {1, 0},
		"Female": {0, 0, 1, 1},
	})
	require.NoError(t, err)

	require.Len(t, res.Groups, 2)
	assert.Equal(t, "Female", res.Groups[0].Group)
	assert.Equal(t, 4, res.Groups[0].Count)
	assert.Equal(t, 0.5, res.Groups[0].Rate)
	assert.Equal(t, "Male", res.Groups[1].Group)
	assert.Equal(t, 0.5, res.Groups[1].Rate)
}

func TestGroupRatesEmpty(t *testing.T) {
	_, err := GroupRates(health.ColumnSex, nil)
	assert.ErrorIs(t, err, core.ErrEmptyDataset)
}
