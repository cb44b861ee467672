package health

import (
	"math"
	"testing"

	"healthlab/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []Record {
	return []Record{
		{Age: 54, Height: 178, Weight: 82, SystolicBP: 138, Cholesterol: 5.6, Sex: "Male", Smoker: "yes", Disease: 1},
		{Age: 38, Height: 162, Weight: math.NaN(), SystolicBP: 121, Cholesterol: 4.9, Sex: "Female", Smoker: "", Disease: 0},
		{Age: 61, Height: 181, Weight: 95, SystolicBP: 152, Cholesterol: 6.3, Sex: "", Smoker: "no", Disease: 1},
	}
}

func TestNewDatasetRejectsBadDisease(t *testing.T) {
	records := sampleRecords()
	records[2].Disease = 2

	_, err := NewDataset("x", records)
	assert.ErrorIs(t, err, core.ErrSchemaMismatch)
}

func TestDatasetValues(t *testing.T) {
	ds, err := NewDataset("x", sampleRecords())
	require.NoError(t, err)

	weights, err := ds.Values(ColumnWeight)
	require.NoError(t, err)
	assert.Equal(t, []float64{82, 95}, weights)

	disease, err := ds.Values(ColumnDisease)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 1}, disease)

	_, err = ds.Values(ColumnSex)
	assert.ErrorIs(t, err, core.ErrSchemaMismatch)
}

func TestDatasetCategories(t *testing.T) {
	ds, _ := NewDataset("x", sampleRecords())

	smokers, err := ds.Categories(ColumnSmoker)
	require.NoError(t, err)
	assert.Equal(t, []string{"yes", "", "no"}, smokers)

	_, err = ds.Categories(ColumnAge)
	assert.Error(t, err)
}

func TestDatasetGroupValues(t *testing.T) {
	ds, _ := NewDataset("x", sampleRecords())

	groups, err := ds.GroupValues(ColumnSex, ColumnWeight)
	require.NoError(t, err)
	assert.Equal(t, map[string][]float64{"Male": {82}}, groups)
	assert.Equal(t, []string{"Male"}, SortedGroups(groups))

	groups, err = ds.GroupValues(ColumnSex, ColumnDisease)
	require.NoError(t, err)
	assert.Equal(t, []string{"Female", "Male"}, SortedGroups(groups))
}

func TestDatasetFingerprint(t *testing.T) {
	a, _ := NewDataset("a", sampleRecords())
	b, _ := NewDataset("b", sampleRecords())
	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "source must not affect the fingerprint")

	changed := sampleRecords()
	changed[0].Age = 55
	c, _ := NewDataset("a", changed)
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestNilDataset(t *testing.T) {
	var ds *Dataset
	assert.Equal(t, 0, ds.Len())
	assert.True(t, ds.IsEmpty())
}
