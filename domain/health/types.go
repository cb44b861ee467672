package health

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"healthlab/domain/core"
)

// Column names a field of the health schema
type Column string

const (
	ColumnAge         Column = "age"
	ColumnHeight      Column = "height"
	ColumnWeight      Column = "weight"
	ColumnSystolicBP  Column = "systolic_bp"
	ColumnCholesterol Column = "cholesterol"
	ColumnSex         Column = "sex"
	ColumnSmoker      Column = "smoker"
	ColumnDisease     Column = "disease"
)

// NumericColumns lists the summarised fields in report order
var NumericColumns = []Column{
	ColumnAge,
	ColumnHeight,
	ColumnWeight,
	ColumnSystolicBP,
	ColumnCholesterol,
}

// SchemaColumns lists every column a dataset must provide
var SchemaColumns = []Column{
	ColumnAge,
	ColumnHeight,
	ColumnWeight,
	ColumnSystolicBP,
	ColumnCholesterol,
	ColumnSex,
	ColumnSmoker,
	ColumnDisease,
}

func (c Column) String() string { return string(c) }

// IsNumeric reports whether the column is one of the summarised measurements
func (c Column) IsNumeric() bool {
	for _, n := range NumericColumns {
		if n == c {
			return true
		}
	}
	return false
}

// Record is one person in the dataset.
// Missing measurements are NaN; missing categories are "".
type Record struct {
	Age         float64 `json:"age"`
	Height      float64 `json:"height"`
	Weight      float64 `json:"weight"`
	SystolicBP  float64 `json:"systolic_bp"`
	Cholesterol float64 `json:"cholesterol"`
	Sex         string  `json:"sex"`
	Smoker      string  `json:"smoker"`
	Disease     int     `json:"disease"` // 0 or 1
}

// Numeric returns the value of a numeric column
func (r Record) Numeric(col Column) (float64, error) {
	switch col {
	case ColumnAge:
		return r.Age, nil
	case ColumnHeight:
		return r.Height, nil
	case ColumnWeight:
		return r.Weight, nil
	case ColumnSystolicBP:
		return r.SystolicBP, nil
	case ColumnCholesterol:
		return r.Cholesterol, nil
	case ColumnDisease:
		return float64(r.Disease), nil
	default:
		return math.NaN(), core.NewColumnNotFoundError(string(col))
	}
}

// Category returns the value of a categorical column
func (r Record) Category(col Column) (string, error) {
	switch col {
	case ColumnSex:
		return r.Sex, nil
	case ColumnSmoker:
		return r.Smoker, nil
	default:
		return "", core.NewColumnNotFoundError(string(col))
	}
}

// Dataset is an ordered, read-only collection of records
type Dataset struct {
	Source  string   `json:"source,omitempty"`
	Records []Record `json:"records"`
}

// NewDataset validates records and wraps them in a Dataset
func NewDataset(source string, records []Record) (*Dataset, error) {
	for i, r := range records {
		if r.Disease != 0 && r.Disease != 1 {
			return nil, fmt.Errorf("%w: row %d disease must be 0 or 1, got %d", core.ErrSchemaMismatch, i, r.Disease)
		}
	}
	return &Dataset{Source: source, Records: records}, nil
}

// Len returns the number of rows
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// IsEmpty reports whether the dataset has no rows
func (d *Dataset) IsEmpty() bool {
	return d.Len() == 0
}

// Values returns the non-missing values of a numeric column in row order
func (d *Dataset) Values(col Column) ([]float64, error) {
	if !col.IsNumeric() && col != ColumnDisease {
		return nil, core.NewColumnNotFoundError(string(col))
	}
	values := make([]float64, 0, d.Len())
	for _, r := range d.Records {
		v, _ := r.Numeric(col)
		if math.IsNaN(v) {
			continue
		}
		values = append(values, v)
	}
	return values, nil
}

// Categories returns the categorical column in row order, missing entries included as ""
func (d *Dataset) Categories(col Column) ([]string, error) {
	if col != ColumnSex && col != ColumnSmoker {
		return nil, core.NewColumnNotFoundError(string(col))
	}
	values := make([]string, 0, d.Len())
	for _, r := range d.Records {
		v, _ := r.Category(col)
		values = append(values, v)
	}
	return values, nil
}

// GroupValues partitions a numeric column by a categorical one.
// Rows with a missing group or a missing value are skipped.
func (d *Dataset) GroupValues(groupBy Column, col Column) (map[string][]float64, error) {
	if _, err := d.Categories(groupBy); err != nil {
		return nil, err
	}
	if !col.IsNumeric() && col != ColumnDisease {
		return nil, core.NewColumnNotFoundError(string(col))
	}
	groups := make(map[string][]float64)
	for _, r := range d.Records {
		key, _ := r.Category(groupBy)
		if key == "" {
			continue
		}
		v, _ := r.Numeric(col)
		if math.IsNaN(v) {
			continue
		}
		groups[key] = append(groups[key], v)
	}
	return groups, nil
}

// Fingerprint hashes the canonical CSV form of the rows
func (d *Dataset) Fingerprint() core.Hash {
	var b strings.Builder
	for _, c := range SchemaColumns {
		b.WriteString(string(c))
		b.WriteByte(',')
	}
	b.WriteByte('\n')
	for _, r := range d.Records {
		for _, v := range []float64{r.Age, r.Height, r.Weight, r.SystolicBP, r.Cholesterol} {
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
			b.WriteByte(',')
		}
		b.WriteString(r.Sex)
		b.WriteByte(',')
		b.WriteString(r.Smoker)
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(r.Disease))
		b.WriteByte('\n')
	}
	return core.NewHash([]byte(b.String()))
}

// SortedGroups returns the group names of a GroupValues result in ascending order
func SortedGroups(groups map[string][]float64) []string {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
