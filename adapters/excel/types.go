package excel

// RawRowData represents a row of raw cells keyed by normalised header
type RawRowData map[string]string

// ExcelData represents the complete sheet before coercion
type ExcelData struct {
	Headers []string     // Normalised column headers
	Rows    []RawRowData // Data rows
}
