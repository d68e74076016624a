package export

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"jobtrack-engine/internal/domain"
)

const sheetName = "Applications"

// XLSX returns a workbook with the same five columns as CSV.
func XLSX(jobs []domain.JobRecord) ([]byte, error) {
	if len(jobs) == 0 {
		return nil, ErrNothingToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheetName); err != nil {
		return nil, err
	}
	idx, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	write := func(col, r int, v string) error {
		cell, err := excelize.CoordinatesToCellName(col, r)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheetName, cell, v)
	}

	for i, h := range header {
		if err := write(i+1, 1, h); err != nil {
			return nil, err
		}
	}
	for n, j := range jobs {
		for i, v := range row(j) {
			if err := write(i+1, n+2, v); err != nil {
				return nil, err
			}
		}
	}

	_ = f.SetColWidth(sheetName, "A", "B", 28)
	_ = f.SetColWidth(sheetName, "C", "D", 14)
	_ = f.SetColWidth(sheetName, "E", "E", 60)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
