// Package boolexpr implements the small boolean formula the filter core
// evaluates against one action's per-filter results. Every formula the
// qualify DSL currently produces is a conjunction of filter indices, so
// Expr only exposes an AND-builder; a richer grammar would add an
// interface here without disturbing callers.
package boolexpr

// Expr is a boolean formula over filter indices into the parent
// action's filter list. The zero value is the empty conjunction, which
// evaluates true (an action with no filters always fires).
type Expr struct {
	indices []int
}

// New returns an empty expression.
func New() *Expr {
	return &Expr{}
}

// AddAND conjoins filter index idx with the existing expression.
func (e *Expr) AddAND(idx int) {
	e.indices = append(e.indices, idx)
}

// Len reports how many leaf indices this expression references.
func (e *Expr) Len() int {
	return len(e.indices)
}

// Evaluate tests the expression against vars, a per-filter boolean
// vector of length nfilters produced in filter-index order. An
// out-of-range index is treated as false.
func (e *Expr) Evaluate(vars []bool) bool {
	for _, idx := range e.indices {
		if idx < 0 || idx >= len(vars) || !vars[idx] {
			return false
		}
	}
	return true
}

// SetQualifyMode folds the newly appended filters into the expression
// as AND conjuncts. It is called after totalFilters reflects the
// action's filter count post-append; the last filtersLeft of those
// filters are the ones just added and are conjoined in index order.
func (e *Expr) SetQualifyMode(totalFilters, filtersLeft int) {
	for i := totalFilters - filtersLeft; i < totalFilters; i++ {
		e.AddAND(i)
	}
}
