package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"healthlab/adapters/coercer"
	"healthlab/domain/core"
	"healthlab/domain/health"
	"healthlab/internal"
	"healthlab/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader reads the health dataset from Excel or CSV files
type DataReader struct {
	config   ExcelConfig
	fileType string // "xlsx" or "csv"
	coercer  *coercer.TypeCoercer
	logger   *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(config ExcelConfig, logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.Discard
	}
	if config.Sheet == "" {
		config.Sheet = DefaultSheet
	}
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{
		config:   config,
		fileType: fileType,
		coercer:  coercer.NewTypeCoercer(config.CoercionConfig),
		logger:   logger.With("reader"),
	}
}

// ReadDataset reads and validates the file into a health.Dataset
func (r *DataReader) ReadDataset(ctx context.Context) (*health.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := r.ReadData()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return r.toDataset(data)
}

// ReadData reads the raw header and rows of the file
func (r *DataReader) ReadData() (*ExcelData, error) {
	r.logger.Info("Starting to read %s file: %s", r.fileType, r.config.FilePath)

	if _, err := os.Stat(r.config.FilePath); os.IsNotExist(err) {
		return nil, errors.ReadFailure(r.config.FilePath, err)
	}

	var (
		rows [][]string
		err  error
	)
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, errors.InvalidArgument(fmt.Sprintf("unsupported file type: %s", r.fileType))
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 1 {
		return nil, errors.SchemaMismatch(fmt.Sprintf("%s file has no header row", strings.ToUpper(r.fileType)))
	}

	return r.processRows(rows), nil
}

// readExcelRows reads every row of the configured sheet
func (r *DataReader) readExcelRows() ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.config.FilePath)
	if err != nil {
		return nil, errors.ReadFailure(r.config.FilePath, err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.config.Sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %s", r.config.Sheet)
	}
	r.logger.Debug("Sheet %s read in %.2fms (%d rows)", r.config.Sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return rows, nil
}

// readCSVRows reads every record of the CSV file
func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.config.FilePath)
	if err != nil {
		return nil, errors.ReadFailure(r.config.FilePath, err)
	}
	defer file.Close()

	startTime := time.Now()
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WithCode(errors.CodeSchemaMismatch, errors.Wrap(err, "failed to read CSV file"))
	}
	r.logger.Debug("CSV file read in %.2fms (%d rows)", float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return rows, nil
}

// processRows converts raw string rows into ExcelData keyed by normalised header
func (r *DataReader) processRows(rows [][]string) *ExcelData {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = normalizeHeader(header)
	}

	var dataRows []RawRowData
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}
		rowData := make(RawRowData, len(headers))
		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = cell
			}
		}
		dataRows = append(dataRows, rowData)
	}

	r.logger.Info("%s file processed (%d columns, %d rows)", strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &ExcelData{
		Headers: headers,
		Rows:    dataRows,
	}
}

// toDataset checks the schema and coerces every cell
func (r *DataReader) toDataset(data *ExcelData) (*health.Dataset, error) {
	present := make(map[string]bool, len(data.Headers))
	for _, h := range data.Headers {
		present[h] = true
	}
	var missing []string
	for _, col := range health.SchemaColumns {
		if !present[string(col)] {
			missing = append(missing, string(col))
		}
	}
	if len(missing) > 0 {
		return nil, errors.Wrapf(core.NewColumnNotFoundError(strings.Join(missing, ", ")), "%s does not match the health schema", r.config.FilePath)
	}

	records := make([]health.Record, 0, len(data.Rows))
	for i, row := range data.Rows {
		rec, err := r.toRecord(row)
		if err != nil {
			// +2: one for the header, one for 1-based numbering
			return nil, errors.Wrapf(err, "row %d", i+2)
		}
		records = append(records, rec)
	}

	ds, err := health.NewDataset(r.config.FilePath, records)
	if err != nil {
		return nil, errors.Wrap(err, "invalid dataset")
	}
	r.logger.Info("Loaded %d records from %s", ds.Len(), r.config.FilePath)
	return ds, nil
}

func (r *DataReader) toRecord(row RawRowData) (health.Record, error) {
	var rec health.Record
	numeric := []struct {
		col health.Column
		dst *float64
	}{
		{health.ColumnAge, &rec.Age},
		{health.ColumnHeight, &rec.Height},
		{health.ColumnWeight, &rec.Weight},
		{health.ColumnSystolicBP, &rec.SystolicBP},
		{health.ColumnCholesterol, &rec.Cholesterol},
	}
	for _, f := range numeric {
		v, err := r.coercer.Numeric(row[string(f.col)])
		if err != nil {
			return rec, fmt.Errorf("column %s: %w", f.col, err)
		}
		*f.dst = v
	}

	disease, err := r.coercer.Indicator(row[string(health.ColumnDisease)])
	if err != nil {
		return rec, fmt.Errorf("column %s: %w", health.ColumnDisease, err)
	}
	rec.Disease = disease
	rec.Sex = r.coercer.Category(row[string(health.ColumnSex)])
	rec.Smoker = r.coercer.Category(row[string(health.ColumnSmoker)])

	return rec, nil
}

// normalizeHeader lower-cases a header and joins words with underscores
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.Join(strings.Fields(h), "_")
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
