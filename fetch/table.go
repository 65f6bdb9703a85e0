package fetch

import (
	"fmt"
	"strconv"
)

//Table is a provider result: header row (usually Chinese) plus string
//cells. Adapters map it to typed records.
type Table struct {
	Cols []string
	Rows [][]string
}

//Empty reports whether the table carries no data rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

//ColIdx returns the index of the named column, -1 when absent.
func (t *Table) ColIdx(name string) int {
	for i, c := range t.Cols {
		if c == name {
			return i
		}
	}
	return -1
}

//Cell returns the named column of row i, empty when the column is
//absent or the row is ragged.
func (t *Table) Cell(i int, col string) string {
	ci := t.ColIdx(col)
	if i < 0 || i >= len(t.Rows) || ci < 0 || ci >= len(t.Rows[i]) {
		return ""
	}
	return t.Rows[i][ci]
}

//cellStr renders a decoded JSON value as a provider cell. The provider
//emits "-" for suspended values; that becomes an empty cell.
func cellStr(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		if x == "-" {
			return ""
		}
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
