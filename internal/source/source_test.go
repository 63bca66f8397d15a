package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"cellgrip/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func fields(columns []domain.Column) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.Field
	}
	return out
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "orders.csv", "name,qty,price\nwidget,3,2.5\n\"gadget, large\",10\n")

	table, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "orders", table.Name)
	assert.Equal(t, []string{"name", "qty", "price"}, fields(table.Columns))
	require.Len(t, table.Rows, 2)
	assert.Equal(t, domain.Row{"name": "widget", "qty": int64(3), "price": 2.5}, table.Rows[0])
	assert.Equal(t, "gadget, large", table.Rows[1]["name"])
	_, hasPrice := table.Rows[1]["price"]
	assert.False(t, hasPrice, "short record leaves trailing fields absent")
}

func TestLoadCSVHeaderNames(t *testing.T) {
	path := writeFile(t, "dupes.csv", "a,,a\n1,2,3\n")

	table, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "2", "a_2"}, fields(table.Columns))
}

func TestHeaderFieldsStayUnique(t *testing.T) {
	assert.Equal(t, []string{"a", "a_2", "a_2_2"}, headerFields([]string{"a", "a", "a_2"}))
	assert.Equal(t, []string{"a", "a_2", "a_3"}, headerFields([]string{"a", "a", "a"}))
}

func TestCopyKeepsSourceNumberText(t *testing.T) {
	path := writeFile(t, "ids.csv", "id,zip\n12345678901234567890,00501\n")

	table, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, domain.Row{"id": "12345678901234567890", "zip": "00501"}, table.Rows[0])
}

func TestLoadJSONKeepsKeyOrder(t *testing.T) {
	path := writeFile(t, "people.json", `[
		{"zeta": "z", "alpha": 1, "active": true},
		{"zeta": "y", "alpha": 1.5, "extra": null, "tags": ["a"]}
	]`)

	table, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "active", "extra", "tags"}, fields(table.Columns))
	assert.Equal(t, int64(1), table.Rows[0]["alpha"])
	assert.Equal(t, true, table.Rows[0]["active"])
	assert.Equal(t, 1.5, table.Rows[1]["alpha"])
	assert.Nil(t, table.Rows[1]["extra"])
	assert.Equal(t, `["a"]`, table.Rows[1]["tags"])
}

func TestLoadJSONRejectsNonArray(t *testing.T) {
	_, err := Load(writeFile(t, "obj.json", `{"a": 1}`))
	assert.ErrorIs(t, err, errNotArray)

	_, err = Load(writeFile(t, "mixed.json", `[{"a": 1}, 2]`))
	assert.ErrorIs(t, err, errNotArray)
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"sku", "count"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"A-1", 7}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"sku", "count"}, fields(table.Columns))
	require.Len(t, table.Rows, 1)
	assert.Equal(t, domain.Row{"sku": "A-1", "count": int64(7)}, table.Rows[0])
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("notes.txt")
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "txt", loadErr.Format)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "empty.csv", ""))
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, int64(42), parseValue("42"))
	assert.Equal(t, 0.25, parseValue("0.25"))
	assert.Equal(t, "NaN", parseValue("NaN"))
	assert.Equal(t, "", parseValue(""))
	assert.Equal(t, "abc", parseValue("abc"))
	assert.Equal(t, "00501", parseValue("00501"))
	assert.Equal(t, "+7", parseValue("+7"))
	assert.Equal(t, "12345678901234567890", parseValue("12345678901234567890"))
	assert.Equal(t, "1e3", parseValue("1e3"))
	assert.Equal(t, "0.50", parseValue("0.50"))
	assert.Equal(t, int64(-3), parseValue("-3"))
}

func TestTableSource(t *testing.T) {
	table := &domain.Table{Columns: []domain.Column{{Field: "a"}}, Rows: []domain.Row{{"a": 1}}}
	src := TableSource{Table: table}

	assert.Equal(t, table.Columns, src.Columns())
	table.Rows = append(table.Rows, domain.Row{"a": 2})
	assert.Len(t, src.Rows(), 2, "reads the live table")
}
