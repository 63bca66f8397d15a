package source

import (
	"errors"
	"os"

	"github.com/tidwall/gjson"

	"cellgrip/internal/domain"
)

var errNotArray = errors.New("expected a JSON array of objects")

// loadJSON reads an array of objects. Column order follows the key order of
// the first object; keys first seen in later objects are appended.
func loadJSON(path string) ([]string, []domain.Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, nil, errors.New("invalid JSON")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, nil, errNotArray
	}

	var fields []string
	known := make(map[string]bool)
	var rows []domain.Row
	var bad bool
	doc.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			bad = true
			return false
		}
		row := make(domain.Row)
		item.ForEach(func(key, value gjson.Result) bool {
			name := key.String()
			if !known[name] {
				known[name] = true
				fields = append(fields, name)
			}
			row[name] = jsonValue(value)
			return true
		})
		rows = append(rows, row)
		return true
	})
	if bad {
		return nil, nil, errNotArray
	}
	if len(fields) == 0 {
		return nil, nil, ErrNoHeader
	}
	return fields, rows, nil
}

func jsonValue(v gjson.Result) any {
	switch v.Type {
	case gjson.Null:
		return nil
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Number:
		return parseValue(v.Raw)
	case gjson.String:
		return v.Str
	default:
		// nested arrays and objects are shown as their JSON text
		return v.Raw
	}
}
