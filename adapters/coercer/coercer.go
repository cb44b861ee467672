package coercer

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"healthlab/domain/core"
)

// TypeCoercer converts raw spreadsheet cells into typed health values
type TypeCoercer struct {
	config  CoercionConfig
	missing map[string]bool
}

// CoercionConfig defines which tokens count as missing and how numbers are written
type CoercionConfig struct {
	MissingTokens []string `json:"missing_tokens"` // compared case-insensitively after trimming
	DecimalComma  bool     `json:"decimal_comma"`  // accept "72,5" as 72.5; "1,200" stays 1200
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		MissingTokens: []string{"", "na", "n/a", "nan", "null", "none", "-"},
		DecimalComma:  true,
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	missing := make(map[string]bool, len(config.MissingTokens))
	for _, tok := range config.MissingTokens {
		missing[strings.ToLower(strings.TrimSpace(tok))] = true
	}
	return &TypeCoercer{config: config, missing: missing}
}

// IsMissing reports whether raw is one of the configured missing tokens
func (c *TypeCoercer) IsMissing(raw string) bool {
	return c.missing[strings.ToLower(strings.TrimSpace(raw))]
}

// Numeric parses a measurement. Missing cells become NaN; anything else that
// does not parse to a finite number is an error.
func (c *TypeCoercer) Numeric(raw string) (float64, error) {
	if c.IsMissing(raw) {
		return math.NaN(), nil
	}

	cleanVal := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	switch {
	case c.isDecimalComma(cleanVal):
		cleanVal = strings.Replace(cleanVal, ",", ".", 1)
	case strings.Contains(cleanVal, ","):
		// Comma is a thousands separator
		cleanVal = strings.ReplaceAll(cleanVal, ",", "")
	}

	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return math.NaN(), fmt.Errorf("%w: %q is not a number", core.ErrSchemaMismatch, raw)
	}
	return val, nil
}

// isDecimalComma reports whether the single comma in s separates decimals.
// Exactly three digits after it read as thousands grouping ("1,200").
func (c *TypeCoercer) isDecimalComma(s string) bool {
	if !c.config.DecimalComma || strings.Count(s, ",") != 1 || strings.Contains(s, ".") {
		return false
	}
	return len(s)-strings.Index(s, ",")-1 != 3
}

// Indicator parses a 0/1 flag. It accepts 0/1 in integer or float form and
// boolean words. Missing or any other value is an error.
func (c *TypeCoercer) Indicator(raw string) (int, error) {
	if c.IsMissing(raw) {
		return 0, fmt.Errorf("%w: indicator value is missing", core.ErrSchemaMismatch)
	}

	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "y":
		return 1, nil
	case "0", "false", "no", "n":
		return 0, nil
	}

	val, err := c.Numeric(raw)
	if err == nil {
		switch val {
		case 0:
			return 0, nil
		case 1:
			return 1, nil
		}
	}
	return 0, fmt.Errorf("%w: indicator must be 0 or 1, got %q", core.ErrSchemaMismatch, raw)
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Category normalises a categorical cell. Case is preserved; missing becomes "".
func (c *TypeCoercer) Category(raw string) string {
	if c.IsMissing(raw) {
		return ""
	}

	s := strings.TrimSpace(raw)
	s = whitespaceRun.ReplaceAllString(s, " ")

	// Remove control characters
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
}
