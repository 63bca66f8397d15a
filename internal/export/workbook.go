package export

import (
	"fmt"
	"math"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the sheet name used when none is given
const DefaultSheet = "Selection"

// WriteWorkbook saves grid as the only sheet of a new xlsx file.
// Cells that parse as numbers are stored as numbers.
func WriteWorkbook(path, sheet string, grid [][]string) error {
	if sheet == "" {
		sheet = DefaultSheet
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for r, row := range grid {
		for c, text := range row {
			if text == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("failed to address cell (%d,%d): %w", r, c, err)
			}
			if err := f.SetCellValue(sheet, cell, cellValue(text)); err != nil {
				return fmt.Errorf("failed to set %s: %w", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func cellValue(text string) any {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return text
}
