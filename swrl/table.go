package swrl

import (
	"strings"

	"github.com/c360studio/semowl/rdf"
)

// Table holds variable bindings. Columns are variable IRIs; each row binds
// every column. Rows are unique.
type Table struct {
	Columns []string
	Rows    [][]rdf.Term

	pos  map[string]int
	seen map[string]bool
}

// NewTable returns an empty table with the given columns.
func NewTable(columns ...string) *Table {
	t := &Table{
		Columns: columns,
		pos:     make(map[string]int, len(columns)),
		seen:    make(map[string]bool),
	}
	for i, c := range columns {
		t.pos[c] = i
	}
	return t
}

// unit is the join identity: no columns and a single empty row.
func unit() *Table {
	t := NewTable()
	t.Add()
	return t
}

func rowKey(row []rdf.Term) string {
	var b strings.Builder
	for _, term := range row {
		b.WriteString(term.String())
		b.WriteByte(0)
	}
	return b.String()
}

// Add appends a row and reports whether it was new. The row must have one
// term per column.
func (t *Table) Add(row ...rdf.Term) bool {
	k := rowKey(row)
	if t.seen[k] {
		return false
	}
	t.seen[k] = true
	t.Rows = append(t.Rows, row)
	return true
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Column returns the position of a column, or -1.
func (t *Table) Column(name string) int {
	if i, ok := t.pos[name]; ok {
		return i
	}
	return -1
}

// Value returns the binding of a column in a row.
func (t *Table) Value(row int, column string) (rdf.Term, bool) {
	i := t.Column(column)
	if i < 0 || row < 0 || row >= len(t.Rows) {
		return rdf.Term{}, false
	}
	return t.Rows[row][i], true
}

// Join returns the natural join of two tables. Tables without shared columns
// produce their cross product.
func Join(a, b *Table) *Table {
	var shared []string
	var extra []int
	for i, c := range b.Columns {
		if a.Column(c) >= 0 {
			shared = append(shared, c)
		} else {
			extra = append(extra, i)
		}
	}
	columns := append([]string{}, a.Columns...)
	for _, i := range extra {
		columns = append(columns, b.Columns[i])
	}
	out := NewTable(columns...)

	key := func(t *Table, row []rdf.Term) string {
		var sb strings.Builder
		for _, c := range shared {
			sb.WriteString(row[t.Column(c)].String())
			sb.WriteByte(0)
		}
		return sb.String()
	}
	buckets := make(map[string][][]rdf.Term, len(b.Rows))
	for _, row := range b.Rows {
		k := key(b, row)
		buckets[k] = append(buckets[k], row)
	}
	for _, left := range a.Rows {
		for _, right := range buckets[key(a, left)] {
			row := make([]rdf.Term, 0, len(columns))
			row = append(row, left...)
			for _, i := range extra {
				row = append(row, right[i])
			}
			out.Add(row...)
		}
	}
	return out
}

// extend returns a copy of t with one more column, filled per row by fn.
// Rows for which fn reports false are dropped.
func (t *Table) extend(column string, fn func(row []rdf.Term) (rdf.Term, bool)) *Table {
	out := NewTable(append(append([]string{}, t.Columns...), column)...)
	for _, row := range t.Rows {
		v, ok := fn(row)
		if !ok {
			continue
		}
		next := make([]rdf.Term, 0, len(row)+1)
		next = append(next, row...)
		out.Add(append(next, v)...)
	}
	return out
}

// filter returns the rows of t for which keep reports true.
func (t *Table) filter(keep func(row []rdf.Term) bool) *Table {
	out := NewTable(t.Columns...)
	for _, row := range t.Rows {
		if keep(row) {
			out.Add(row...)
		}
	}
	return out
}
