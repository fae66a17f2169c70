package ledger

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"fiipulse/pkg/contracts/domain"
)

const xlsxSheet = "Ledger"

// WriteXLSX exports entries to an Excel workbook at path. The sheet mirrors
// the CSV column order; numeric cells are written as numbers so Excel can
// sort and chart them without conversion.
func WriteXLSX(path string, entries []domain.LedgerEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for col, name := range Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to name header cell: %w", err)
		}
		if err := f.SetCellValue(xlsxSheet, cell, name); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, entry := range entries {
		row := formatRow(entry)
		for col, raw := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to name cell: %w", err)
			}
			if err := f.SetCellValue(xlsxSheet, cell, cellValue(Header[col], raw)); err != nil {
				return fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// cellValue keeps dates, tickers, and text columns as strings and converts
// everything that parses as a number into a numeric cell.
func cellValue(column, raw string) interface{} {
	switch column {
	case "date", "ticker", "risk_class", "verdict", "source", "notes":
		return raw
	}
	if raw == "" {
		return ""
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	return raw
}
