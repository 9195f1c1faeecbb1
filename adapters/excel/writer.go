package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"lifestat/domain/lifedata"
)

// SampleSheet is the sheet name written by WriteSample.
const SampleSheet = "Sample"

// WriteSample stores a sample as an xlsx workbook with a header row and the
// columns Value and Censored.
func WriteSample(path string, sample lifedata.Sample) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SampleSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(SampleSheet, "A1", &[]interface{}{"Value", "Censored"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, o := range sample.Observations() {
		flag := 0
		if o.Censored {
			flag = 1
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SampleSheet, axis, &[]interface{}{o.Value, flag}); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
