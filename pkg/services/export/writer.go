package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteCSV writes the dataset with a header row.
func WriteCSV(w io.Writer, ds Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.Headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(ds.Headers))
	for i, row := range ds.Rows {
		clear(record)
		for j := range min(len(row), len(record)) {
			record[j] = formatCell(row[j])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// maxSheetName is the spreadsheet limit on sheet name length.
const maxSheetName = 31

// WriteXLSX writes one sheet per dataset into a single workbook.
func WriteXLSX(w io.Writer, datasets ...Dataset) error {
	if len(datasets) == 0 {
		return errors.New("no datasets to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, ds := range datasets {
		sheet := ds.Name
		if len(sheet) > maxSheetName {
			sheet = sheet[:maxSheetName]
		}
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet, err)
		}

		for c, h := range ds.Headers {
			cell, _ := excelize.CoordinatesToCellName(c+1, 1)
			if err := f.SetCellValue(sheet, cell, h); err != nil {
				return fmt.Errorf("set header %s: %w", cell, err)
			}
		}
		for r, row := range ds.Rows {
			for c, v := range row {
				cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return fmt.Errorf("set cell %s: %w", cell, err)
				}
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
