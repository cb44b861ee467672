package excel

import (
	"healthlab/adapters/coercer"
)

// DefaultSheet is read when no sheet name is configured
const DefaultSheet = "Sheet1"

// ExcelConfig holds configuration for the spreadsheet data source
type ExcelConfig struct {
	FilePath       string                 `json:"file_path"`
	Sheet          string                 `json:"sheet"`
	CoercionConfig coercer.CoercionConfig `json:"coercion_config"`
}

// DefaultExcelConfig returns sensible defaults for path
func DefaultExcelConfig(path string) ExcelConfig {
	return ExcelConfig{
		FilePath:       path,
		Sheet:          DefaultSheet,
		CoercionConfig: coercer.DefaultCoercionConfig(),
	}
}
