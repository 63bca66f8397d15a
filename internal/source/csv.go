package source

import (
	"encoding/csv"
	"errors"
	"io"
	"os"

	"cellgrip/internal/domain"
)

func loadCSV(path string) ([]string, []domain.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, ErrNoHeader
	}
	if err != nil {
		return nil, nil, err
	}
	fields := headerFields(header)

	var rows []domain.Row
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, recordRow(fields, record))
	}
	return fields, rows, nil
}
