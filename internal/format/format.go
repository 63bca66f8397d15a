// Package format provides typed column formatters.
//
// Each formatter has two modes. Display mode decorates the value for the
// grid ("$5.00", "[x]", "25%"); plain mode flattens it into something a
// spreadsheet parses on paste ("5.00", "TRUE", "0.25").
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"cellgrip/internal/domain"
)

// Type names understood by ForType
const (
	TypeText       = "text"
	TypeUSD        = "usd"
	TypePercentage = "percentage"
	TypeInt        = "int"
	TypeNum        = "num"
	TypeFloat      = "float"
	TypeBool       = "bool"
)

// Types lists the supported type names
var Types = []string{TypeText, TypeUSD, TypePercentage, TypeInt, TypeNum, TypeFloat, TypeBool}

// ForType returns the formatter for a type name, or nil for raw values
func ForType(typ string) domain.Formatter {
	switch strings.ToLower(typ) {
	case TypeUSD:
		return usd
	case TypePercentage:
		return percentage
	case TypeInt:
		return integer
	case TypeNum, TypeFloat:
		return number
	case TypeBool:
		return boolean
	default:
		return nil
	}
}

// Apply fills in Formatter for every column with a known Type
func Apply(columns []domain.Column) []domain.Column {
	out := make([]domain.Column, len(columns))
	for i, col := range columns {
		if col.Formatter == nil {
			col.Formatter = ForType(col.Type)
		}
		out[i] = col
	}
	return out
}

func usd(value any, _ domain.Row, plain bool) any {
	f, ok := toFloat(value)
	if !ok {
		return value
	}
	if plain {
		return strconv.FormatFloat(f, 'f', 2, 64)
	}
	return fmt.Sprintf("$%.2f", f)
}

func percentage(value any, _ domain.Row, plain bool) any {
	f, ok := toFloat(value)
	if !ok {
		return value
	}
	if plain {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprintf("%.0f%%", f*100)
}

func integer(value any, _ domain.Row, _ bool) any {
	f, ok := toFloat(value)
	if !ok {
		return value
	}
	return strconv.FormatInt(int64(f), 10)
}

func number(value any, _ domain.Row, _ bool) any {
	f, ok := toFloat(value)
	if !ok {
		return value
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func boolean(value any, _ domain.Row, plain bool) any {
	b, ok := toBool(value)
	if !ok {
		return value
	}
	switch {
	case plain && b:
		return "TRUE"
	case plain:
		return "FALSE"
	case b:
		return "[x]"
	default:
		return "[ ]"
	}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case string:
		cleaned := strings.ReplaceAll(strings.TrimPrefix(strings.TrimSpace(v), "$"), ",", "")
		f, err := strconv.ParseFloat(cleaned, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes", "x":
			return true, true
		case "false", "0", "no", "":
			return false, true
		}
	case float64:
		return v != 0, true
	case int64:
		return v != 0, true
	}
	return false, false
}
