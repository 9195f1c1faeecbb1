package excel

// ExcelConfig selects where a sample lives in a spreadsheet or CSV file.
type ExcelConfig struct {
	FilePath string `json:"file_path"`
	// Sheet defaults to the first sheet of the workbook. Ignored for CSV.
	Sheet string `json:"sheet"`
	// ValueColumn and FlagColumn are zero-based column indexes. A negative
	// FlagColumn means the file carries no censoring flags.
	ValueColumn int `json:"value_column"`
	FlagColumn  int `json:"flag_column"`
}

// DefaultExcelConfig reads values from column A and flags from column B
func DefaultExcelConfig(path string) ExcelConfig {
	return ExcelConfig{
		FilePath:    path,
		ValueColumn: 0,
		FlagColumn:  1,
	}
}
