package profiling

import (
	"math"
	"testing"

	"healthlab/domain/core"
	"healthlab/domain/health"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	da := NewDistributionAnalyzer()

	s, err := da.Summarize(health.ColumnWeight, []float64{80, 60, math.NaN(), 70, 90})
	require.NoError(t, err)

	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 75.0, s.Mean)
	assert.Equal(t, 75.0, s.Median)
	assert.Equal(t, 60.0, s.Min)
	assert.Equal(t, 90.0, s.Max)
	assert.LessOrEqual(t, s.Min, s.Mean)
	assert.LessOrEqual(t, s.Mean, s.Max)
}

func TestSummarizeNoValues(t *testing.T) {
	_, err := NewDistributionAnalyzer().Summarize(health.ColumnAge, []float64{math.NaN()})
	assert.ErrorIs(t, err, core.ErrEmptyDataset)
}

func TestBoxPlot(t *testing.T) {
	da := NewDistributionAnalyzer()

	box, err := da.BoxPlot("Male", []float64{15, 10, 100, 12, 11, 14, 13})
	require.NoError(t, err)

	assert.Equal(t, 7, box.Count)
	assert.Equal(t, 11.5, box.Q1)
	assert.Equal(t, 13.0, box.Median)
	assert.Equal(t, 14.5, box.Q3)
	assert.Equal(t, 10.0, box.LowerWhisker)
	assert.Equal(t, 15.0, box.UpperWhisker)
	assert.Equal(t, []float64{100}, box.Outliers)
	assert.Equal(t, 10.0, box.Min)
	assert.Equal(t, 100.0, box.Max)

	high := box.Q3 + WhiskerCoefficient*box.IQR()
	for _, o := range box.Outliers {
		assert.Greater(t, o, high)
	}
}

func TestBoxPlotInterpolatedQuartiles(t *testing.T) {
	da := NewDistributionAnalyzer()

	tests := []struct {
		name         string
		data         []float64
		q1, med, q3  float64
		upperWhisker float64
		outliers     []float64
	}{
		{"odd count with far value", []float64{1, 2, 3, 4, 100}, 2, 3, 4, 4, []float64{100}},
		{"even count", []float64{4, 3, 2, 1}, 1.75, 2.5, 3.25, 4, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box, err := da.BoxPlot("g", tt.data)
			require.NoError(t, err)

			assert.InDelta(t, tt.q1, box.Q1, 1e-12)
			assert.InDelta(t, tt.med, box.Median, 1e-12)
			assert.InDelta(t, tt.q3, box.Q3, 1e-12)
			assert.Equal(t, tt.upperWhisker, box.UpperWhisker)
			assert.Equal(t, tt.outliers, box.Outliers)
		})
	}
}

func TestQuantile(t *testing.T) {
	sorted := []float64{10, 20, 30, 40}
	assert.Equal(t, 10.0, quantile(sorted, 0))
	assert.Equal(t, 40.0, quantile(sorted, 1))
	assert.InDelta(t, 17.5, quantile(sorted, 0.25), 1e-12)
	assert.Equal(t, 7.0, quantile([]float64{7}, 0.75))
}

func TestBoxPlotSingleValue(t *testing.T) {
	box, err := NewDistributionAnalyzer().BoxPlot("Female", []float64{62})
	require.NoError(t, err)

	assert.Equal(t, 62.0, box.Q1)
	assert.Equal(t, 62.0, box.Q3)
	assert.Equal(t, 62.0, box.LowerWhisker)
	assert.Equal(t, 62.0, box.UpperWhisker)
	assert.Empty(t, box.Outliers)
}

func TestHistogram(t *testing.T) {
	da := NewDistributionAnalyzer()
	data := []float64{120, 135, 150, 110, 142, 128, 160, math.NaN()}

	bins, err := da.Histogram(data, 25)
	require.NoError(t, err)
	require.Len(t, bins, 25)

	total := 0
	for i, b := range bins {
		total += b.Count
		assert.Less(t, b.Min, b.Max)
		if i > 0 {
			assert.InDelta(t, bins[i-1].Max, b.Min, 1e-9)
		}
	}
	assert.Equal(t, 7, total)
	assert.Equal(t, 110.0, bins[0].Min)
	assert.Equal(t, 160.0, bins[24].Max)
	assert.Equal(t, 1, bins[0].Count)
	assert.Equal(t, 1, bins[24].Count, "max must land in the last bin")
}

func TestHistogramConstant(t *testing.T) {
	bins, err := NewDistributionAnalyzer().Histogram([]float64{5, 5, 5}, 4)
	require.NoError(t, err)

	assert.Equal(t, 4.5, bins[0].Min)
	assert.Equal(t, 5.5, bins[3].Max)
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, 3, total)
}

func TestHistogramInvalid(t *testing.T) {
	da := NewDistributionAnalyzer()

	_, err := da.Histogram([]float64{1}, 0)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = da.Histogram(nil, 10)
	assert.ErrorIs(t, err, core.ErrEmptyDataset)
}
