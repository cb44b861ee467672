package profiling

import (
	"sort"

	"healthlab/domain/core"
	"healthlab/domain/health"

	"github.com/montanaflynn/stats"
)

// Proportions computes the relative frequency of every observed category.
// Empty strings are missing and do not count toward the total.
func Proportions(col health.Column, values []string) (health.ProportionResult, error) {
	result := health.ProportionResult{Column: col}

	counts := make(map[string]int)
	for _, v := range values {
		if v == "" {
			continue
		}
		counts[v]++
		result.Total++
	}
	if result.Total == 0 {
		return result, core.NewNoValuesError(string(col))
	}

	for _, category := range sortedKeys(counts) {
		result.Values = append(result.Values, health.Proportion{
			Category: category,
			Count:    counts[category],
			Share:    float64(counts[category]) / float64(result.Total),
		})
	}
	sort.SliceStable(result.Values, func(i, j int) bool {
		return result.Values[i].Count > result.Values[j].Count
	})

	return result, nil
}

// GroupRates computes the mean of a 0/1 indicator per group, ordered by group name
func GroupRates(groupBy health.Column, groups map[string][]float64) (health.PrevalenceResult, error) {
	result := health.PrevalenceResult{GroupBy: groupBy}
	if len(groups) == 0 {
		return result, core.NewNoValuesError(string(groupBy))
	}

	for _, name := range sortedKeys(groups) {
		rate, err := stats.Mean(groups[name])
		if err != nil {
			return result, err
		}
		result.Groups = append(result.Groups, health.GroupRate{
			Group: name,
			Count: len(groups[name]),
			Rate:  rate,
		})
	}

	return result, nil
}
