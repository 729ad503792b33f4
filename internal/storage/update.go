package storage

import "strings"

// Assignments accumulates SET clauses for a partial update. Column names are
// always string literals supplied by the store methods, never caller input,
// so nothing caller-controlled reaches the query text.
type Assignments struct {
	cols []string
	args []any
}

// Set records a column assignment.
func (a *Assignments) Set(col string, value any) {
	a.cols = append(a.cols, col+" = ?")
	a.args = append(a.args, value)
}

// SetRaw records an assignment whose right-hand side is a SQL expression
// (e.g. CURRENT_TIMESTAMP) rather than a bound value.
func (a *Assignments) SetRaw(col, expr string) {
	a.cols = append(a.cols, col+" = "+expr)
}

// Empty reports whether any assignment was recorded.
func (a *Assignments) Empty() bool {
	return len(a.cols) == 0
}

// Clause returns the comma-joined SET body and its bound arguments.
func (a *Assignments) Clause() (string, []any) {
	return strings.Join(a.cols, ", "), a.args
}
