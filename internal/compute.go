package internal

import (
	"fmt"
	"strings"
)

// DashboardResult is everything the presentation layer renders: the scalar
// cards, the five month-bucketed series, and the customer listing.
type DashboardResult struct {
	Metrics               Metrics
	CustomersPerMonth     []MonthCount
	ClosingPerMonth       []MonthAmount
	NetChange             []PctPoint
	RevenueVsExpense      []RevenueExpensePoint
	CancellationsPerMonth []MonthCount
	Customers             []CustomerInfo

	Warnings []string
}

// Empty reports whether no ledger rows survived the active filters.
// The presentation layer shows an informational message instead of charts.
func (r *DashboardResult) Empty() bool {
	return len(r.CustomersPerMonth) == 0
}

// Compute runs the whole pipeline: roster restriction, filtering, and
// aggregation. It is a pure function of its inputs — every filter change
// recomputes from the normalized tables, nothing is cached or mutated.
func Compute(tables Tables, params FilterParams, cfg *Config) (*DashboardResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	result := &DashboardResult{
		Warnings: append([]string(nil), tables.Warnings...),
	}

	ix := BuildCardIndex(tables.Customers)
	ledger := RestrictToRoster(tables.Ledger, ix)

	ws, unknownTokens := BuildWorkingSet(ledger, ix, params)
	if len(unknownTokens) > 0 && cfg.ReportUnknownCardTokens() {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("unknown card tokens ignored: %s", strings.Join(unknownTokens, ", ")))
	}

	result.Metrics = ComputeMetrics(ws, tables.Expenses, cfg.Basis())
	result.CustomersPerMonth = CustomersPerMonth(ws.Rows)
	closing := ClosingPerMonth(ws.Rows)
	result.ClosingPerMonth = closing
	result.NetChange = PctChange(closing)
	result.RevenueVsExpense = RevenueVsExpense(ws.Rows, tables.Expenses)
	result.CancellationsPerMonth = CancellationsPerMonth(ws.Rows)
	result.Customers = CustomerListing(ws, ix)

	return result, nil
}
