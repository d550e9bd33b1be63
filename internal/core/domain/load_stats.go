package domain

// LoadStats counts source rows excluded while loading and indexing the four
// tables: malformed lines skipped by the loader plus rows the store dropped
// for failing validity rules or losing a duplicate-key conflict. Exposed for
// diagnostics only; it never fails a query.
type LoadStats struct {
	ActualsDropped int `json:"actualsDropped"`
	BudgetDropped  int `json:"budgetDropped"`
	FxDropped      int `json:"fxDropped"`
	CashDropped    int `json:"cashDropped"`
}

// Total is the number of dropped rows across all four tables.
func (s LoadStats) Total() int {
	return s.ActualsDropped + s.BudgetDropped + s.FxDropped + s.CashDropped
}
