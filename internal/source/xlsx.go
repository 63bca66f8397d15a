package source

import (
	"github.com/xuri/excelize/v2"

	"cellgrip/internal/domain"
)

// loadXLSX reads the first sheet; its first row is the header
func loadXLSX(path string) ([]string, []domain.Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, ErrNoHeader
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, ErrNoHeader
	}

	fields := headerFields(records[0])
	rows := make([]domain.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, recordRow(fields, record))
	}
	return fields, rows, nil
}
