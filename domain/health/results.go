package health

// FieldSummary holds the descriptive statistics of one numeric column
type FieldSummary struct {
	Column Column  `json:"column"`
	Count  int     `json:"count"` // non-missing values used
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// SummaryResult is the summary of every numeric column, in NumericColumns order
type SummaryResult struct {
	Fields []FieldSummary `json:"fields"`
}

// Field returns the summary of col
func (s SummaryResult) Field(col Column) (FieldSummary, bool) {
	for _, f := range s.Fields {
		if f.Column == col {
			return f, true
		}
	}
	return FieldSummary{}, false
}

// Proportion is the share of one category value
type Proportion struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Share    float64 `json:"share"`
}

// ProportionResult is ordered by descending share, ties broken by category name
type ProportionResult struct {
	Column Column       `json:"column"`
	Total  int          `json:"total"`
	Values []Proportion `json:"values"`
}

// AsMap returns category -> share
func (p ProportionResult) AsMap() map[string]float64 {
	m := make(map[string]float64, len(p.Values))
	for _, v := range p.Values {
		m[v.Category] = v.Share
	}
	return m
}

// GroupRate is the mean of a 0/1 indicator inside one group
type GroupRate struct {
	Group string  `json:"group"`
	Count int     `json:"count"`
	Rate  float64 `json:"rate"`
}

// PrevalenceResult holds per-group disease prevalence ordered by group name
type PrevalenceResult struct {
	GroupBy Column      `json:"group_by"`
	Groups  []GroupRate `json:"groups"`
}

// AsMap returns group -> rate
func (p PrevalenceResult) AsMap() map[string]float64 {
	m := make(map[string]float64, len(p.Groups))
	for _, g := range p.Groups {
		m[g.Group] = g.Rate
	}
	return m
}

// BoxSummary is the Tukey box of one group. Whiskers reach the most extreme
// values inside the 1.5×IQR fences; everything beyond is an outlier.
type BoxSummary struct {
	Group        string    `json:"group"`
	Count        int       `json:"count"`
	Min          float64   `json:"min"`
	Q1           float64   `json:"q1"`
	Median       float64   `json:"median"`
	Q3           float64   `json:"q3"`
	Max          float64   `json:"max"`
	LowerWhisker float64   `json:"lower_whisker"`
	UpperWhisker float64   `json:"upper_whisker"`
	Outliers     []float64 `json:"outliers,omitempty"`
}

// IQR returns the interquartile range
func (b BoxSummary) IQR() float64 {
	return b.Q3 - b.Q1
}

// HistogramBin counts the values in [Min, Max); the last bin also includes Max
type HistogramBin struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// SimulationResult compares real prevalence with a Bernoulli simulation of it
type SimulationResult struct {
	Real       float64 `json:"real"`
	Simulation float64 `json:"simulation"`
	Difference float64 `json:"difference"` // Real - Simulation
	N          int     `json:"n"`
	Seed       int64   `json:"seed"`
}
