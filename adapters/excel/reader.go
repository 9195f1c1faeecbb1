package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"lifestat/domain/core"
	"lifestat/domain/lifedata"
	"lifestat/internal"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	config   ExcelConfig
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger
}

// NewDataReader creates a reader for config.FilePath; the type follows the extension
func NewDataReader(config ExcelConfig, logger *internal.Logger) *DataReader {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{config: config, fileType: fileType, logger: logger.Named("excel")}
}

// ReadData reads the raw rows of the configured sheet
func (r *DataReader) ReadData() (*ExcelData, error) {
	r.logger.Debug("reading %s file %s", r.fileType, r.config.FilePath)

	if _, err := os.Stat(r.config.FilePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.config.FilePath)
	}

	var (
		rows [][]string
		err  error
	)
	start := time.Now()
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, err
	}
	r.logger.Debug("%s file read in %.2fms (%d rows)", r.fileType, float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows), nil
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.config.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", core.ErrInsufficientData)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

// processRows trims cells and splits off a non-numeric header row
func (r *DataReader) processRows(rows [][]string) *ExcelData {
	data := &ExcelData{}
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, c := range row {
			cells[j] = strings.TrimSpace(c)
		}
		if i == 0 && !isNumericCell(cell(cells, r.config.ValueColumn)) {
			data.Headers = cells
			continue
		}
		data.Rows = append(data.Rows, cells)
	}
	return data
}

// ReadSample converts the configured columns into a sample. Rows with an
// empty value cell are ignored; a missing flag cell means an event.
func (r *DataReader) ReadSample() (lifedata.Sample, error) {
	data, err := r.ReadData()
	if err != nil {
		return lifedata.Sample{}, err
	}

	var (
		values []float64
		flags  []int
	)
	for i, row := range data.Rows {
		text := cell(row, r.config.ValueColumn)
		if text == "" {
			continue
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return lifedata.Sample{}, fmt.Errorf("%w: row %d value %q is not a number", core.ErrMalformedInput, i+1, text)
		}
		flag := 0
		if r.config.FlagColumn >= 0 {
			if ft := cell(row, r.config.FlagColumn); ft != "" {
				if flag, err = strconv.Atoi(ft); err != nil {
					return lifedata.Sample{}, fmt.Errorf("%w: row %d flag %q is not 0 or 1", core.ErrMalformedInput, i+1, ft)
				}
			}
		}
		values = append(values, v)
		flags = append(flags, flag)
	}

	r.logger.Debug("sample of %d values read from %s", len(values), r.config.FilePath)
	return lifedata.NewSample(values, flags)
}

// ReadSample reads column A values and optional column B flags from path.
func ReadSample(path string, logger *internal.Logger) (lifedata.Sample, error) {
	return NewDataReader(DefaultExcelConfig(path), logger).ReadSample()
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isNumericCell(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
