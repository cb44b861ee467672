package profiling

import (
	"fmt"

	"healthlab/domain/core"
	"healthlab/domain/health"
)

// DataProfiler orchestrates the column summaries of a dataset
type DataProfiler struct {
	distribution *DistributionAnalyzer
}

// NewDataProfiler creates a new data profiler
func NewDataProfiler() *DataProfiler {
	return &DataProfiler{
		distribution: NewDistributionAnalyzer(),
	}
}

// ProfileColumn summarises a single numeric column of ds
func (dp *DataProfiler) ProfileColumn(ds *health.Dataset, col health.Column) (health.FieldSummary, error) {
	values, err := ds.Values(col)
	if err != nil {
		return health.FieldSummary{Column: col}, err
	}
	return dp.distribution.Summarize(col, values)
}

// ProfileDataset summarises every numeric column of ds in health.NumericColumns order
func (dp *DataProfiler) ProfileDataset(ds *health.Dataset) (health.SummaryResult, error) {
	if ds.IsEmpty() {
		return health.SummaryResult{}, core.NewEmptyDatasetError("summary statistics")
	}

	result := health.SummaryResult{Fields: make([]health.FieldSummary, 0, len(health.NumericColumns))}
	for _, col := range health.NumericColumns {
		summary, err := dp.ProfileColumn(ds, col)
		if err != nil {
			return health.SummaryResult{}, fmt.Errorf("profile %s: %w", col, err)
		}
		result.Fields = append(result.Fields, summary)
	}

	return result, nil
}
