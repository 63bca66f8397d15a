package format

import (
	"testing"

	"cellgrip/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestUSD(t *testing.T) {
	f := ForType("usd")

	assert.Equal(t, "5.00", f(5.0, nil, true))
	assert.Equal(t, "$5.00", f(5.0, nil, false))
	assert.Equal(t, "$1234.50", f("1,234.5", nil, false))
	assert.Equal(t, "n/a", f("n/a", nil, true))
}

func TestPercentage(t *testing.T) {
	f := ForType("percentage")

	assert.Equal(t, "25%", f(0.25, nil, false))
	assert.Equal(t, "0.25", f(0.25, nil, true))
}

func TestNumbers(t *testing.T) {
	assert.Equal(t, "3", ForType("int")(3.7, nil, true))
	assert.Equal(t, "12", ForType("num")(12.0, nil, false))
	assert.Equal(t, "1.5", ForType("float")(1.5, nil, true))
	assert.Equal(t, "7", ForType("num")(int64(7), nil, true))
}

func TestBool(t *testing.T) {
	f := ForType("bool")

	assert.Equal(t, "[x]", f(true, nil, false))
	assert.Equal(t, "TRUE", f(true, nil, true))
	assert.Equal(t, "FALSE", f("no", nil, true))
	assert.Equal(t, "[ ]", f(false, nil, false))
}

func TestUnknownTypeHasNoFormatter(t *testing.T) {
	assert.Nil(t, ForType(""))
	assert.Nil(t, ForType("text"))
}

func TestApplyKeepsExplicitFormatter(t *testing.T) {
	custom := func(v any, _ domain.Row, _ bool) any { return "custom" }
	columns := Apply([]domain.Column{
		{Field: "a", Type: "usd"},
		{Field: "b", Type: "usd", Formatter: custom},
		{Field: "c"},
	})

	assert.Equal(t, "$1.00", columns[0].Formatter(1.0, nil, false))
	assert.Equal(t, "custom", columns[1].Formatter(1.0, nil, false))
	assert.Nil(t, columns[2].Formatter)
}
