package excel

// ExcelData is the raw cell text of one sheet
type ExcelData struct {
	Headers []string   // First row when it is not numeric, else nil
	Rows    [][]string // Data rows
}
