package internal

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// ClosingBasis selects the minuend of the post-expense closing metric.
// The workbook tool historically computed it from both bases; net is the
// default here and the choice is surfaced in the config file.
type ClosingBasis string

const (
	BasisNet   ClosingBasis = "net"
	BasisGross ClosingBasis = "gross"
)

// Metrics are the scalar summary cards.
type Metrics struct {
	GrossRevenue      decimal.Decimal
	TotalFees         decimal.Decimal
	NetRevenue        decimal.Decimal
	DistinctCustomers int
	AverageTicket     decimal.Decimal
	ExpensesPaid      decimal.Decimal
	ExpensesPending   decimal.Decimal
	Closing           decimal.Decimal
}

// MonthCount is one bucket of a count-per-month series.
type MonthCount struct {
	Month MonthKey
	Count int
}

// MonthAmount is one bucket of a sum-per-month series.
type MonthAmount struct {
	Month  MonthKey
	Amount decimal.Decimal
}

// PctPoint is one bucket of the month-over-month change series.
// The first bucket of a series is undefined (Defined=false) and renders
// blank. A zero previous month yields an infinite Change, never a crash.
type PctPoint struct {
	Month   MonthKey
	Change  float64
	Defined bool
}

// RevenueExpensePoint is one bucket of the revenue-vs-expense comparison.
type RevenueExpensePoint struct {
	Month   MonthKey
	Revenue decimal.Decimal
	Expense decimal.Decimal
}

// CustomerInfo is one row of the customer listing. Name and Phone are empty
// when the customer id has no roster match; the row is kept regardless.
type CustomerInfo struct {
	CustomerID string
	CardToken  string
	FullName   string
	Phone      string
}

// ComputeMetrics computes the scalar summary cards from the working set and
// the expense table. Average ticket is defined as 0 when there are no
// customers.
func ComputeMetrics(ws *WorkingSet, expenses []ExpenseRow, basis ClosingBasis) Metrics {
	var m Metrics
	customers := make(map[string]bool)
	for _, r := range ws.Rows {
		customers[r.CustomerID] = true
		if r.AmountPaid.Valid {
			m.GrossRevenue = m.GrossRevenue.Add(r.AmountPaid.Decimal)
		}
		if r.Fee.Valid {
			m.TotalFees = m.TotalFees.Add(r.Fee.Decimal)
		}
		if r.Net.Valid {
			m.NetRevenue = m.NetRevenue.Add(r.Net.Decimal)
		}
	}
	m.DistinctCustomers = len(customers)
	if m.DistinctCustomers > 0 {
		m.AverageTicket = m.GrossRevenue.Div(decimal.NewFromInt(int64(m.DistinctCustomers)))
	}

	for _, e := range expenses {
		if !e.Amount.Valid {
			continue
		}
		switch e.Status {
		case StatusPaid:
			m.ExpensesPaid = m.ExpensesPaid.Add(e.Amount.Decimal)
		case StatusPending:
			m.ExpensesPending = m.ExpensesPending.Add(e.Amount.Decimal)
		}
	}

	switch basis {
	case BasisGross:
		m.Closing = m.GrossRevenue.Sub(m.ExpensesPaid)
	default:
		m.Closing = m.NetRevenue.Sub(m.ExpensesPaid)
	}
	return m
}

// monthSpan returns every month from first to last inclusive, so series get
// a dense time axis with zero-filled gaps.
func monthSpan(first, last MonthKey) []MonthKey {
	if first.IsZero() || last.IsZero() || last.Before(first) {
		return nil
	}
	var span []MonthKey
	for m := first; !last.Before(m); m = m.Next() {
		span = append(span, m)
	}
	return span
}

// completionSpan is the dense month axis between the earliest and latest
// retained completion dates.
func completionSpan(rows []LedgerRow) []MonthKey {
	if len(rows) == 0 {
		return nil
	}
	first, last := rows[0].Month, rows[0].Month
	for _, r := range rows[1:] {
		if r.Month.Before(first) {
			first = r.Month
		}
		if last.Before(r.Month) {
			last = r.Month
		}
	}
	return monthSpan(first, last)
}

// CustomersPerMonth counts distinct customers per completion month over the
// dense axis.
func CustomersPerMonth(rows []LedgerRow) []MonthCount {
	byMonth := make(map[MonthKey]map[string]bool)
	for _, r := range rows {
		if byMonth[r.Month] == nil {
			byMonth[r.Month] = make(map[string]bool)
		}
		byMonth[r.Month][r.CustomerID] = true
	}

	var series []MonthCount
	for _, m := range completionSpan(rows) {
		series = append(series, MonthCount{Month: m, Count: len(byMonth[m])})
	}
	return series
}

// ClosingPerMonth sums net amounts per completion month over the dense axis.
func ClosingPerMonth(rows []LedgerRow) []MonthAmount {
	byMonth := make(map[MonthKey]decimal.Decimal)
	for _, r := range rows {
		if r.Net.Valid {
			byMonth[r.Month] = byMonth[r.Month].Add(r.Net.Decimal)
		}
	}

	var series []MonthAmount
	for _, m := range completionSpan(rows) {
		series = append(series, MonthAmount{Month: m, Amount: byMonth[m]})
	}
	return series
}

// PctChange derives the month-over-month percentage change of a sum series:
// (current − previous) / previous × 100. The first bucket is undefined; a
// zero previous value yields ±Inf (0 when the current value is also zero).
func PctChange(series []MonthAmount) []PctPoint {
	var out []PctPoint
	for i, p := range series {
		point := PctPoint{Month: p.Month}
		if i > 0 {
			prev := series[i-1].Amount.InexactFloat64()
			curr := p.Amount.InexactFloat64()
			point.Defined = true
			switch {
			case prev != 0:
				point.Change = (curr - prev) / prev * 100
			case curr > 0:
				point.Change = math.Inf(1)
			case curr < 0:
				point.Change = math.Inf(-1)
			}
		}
		out = append(out, point)
	}
	return out
}

// RevenueVsExpense outer-joins the per-month revenue sum with the per-month
// expense sum on the month key. The axis covers the union of both spans;
// a missing side fills with zero.
func RevenueVsExpense(rows []LedgerRow, expenses []ExpenseRow) []RevenueExpensePoint {
	revenue := make(map[MonthKey]decimal.Decimal)
	for _, r := range rows {
		if r.AmountPaid.Valid {
			revenue[r.Month] = revenue[r.Month].Add(r.AmountPaid.Decimal)
		}
	}

	expense := make(map[MonthKey]decimal.Decimal)
	for _, e := range expenses {
		if e.Month.IsZero() || !e.Amount.Valid {
			continue
		}
		expense[e.Month] = expense[e.Month].Add(e.Amount.Decimal)
	}

	var first, last MonthKey
	for m := range revenue {
		if first.IsZero() || m.Before(first) {
			first = m
		}
		if last.IsZero() || last.Before(m) {
			last = m
		}
	}
	for m := range expense {
		if first.IsZero() || m.Before(first) {
			first = m
		}
		if last.IsZero() || last.Before(m) {
			last = m
		}
	}

	var series []RevenueExpensePoint
	for _, m := range monthSpan(first, last) {
		series = append(series, RevenueExpensePoint{
			Month:   m,
			Revenue: revenue[m],
			Expense: expense[m],
		})
	}
	return series
}

// CancellationsPerMonth counts distinct cancelled customers per cancellation
// month (not completion month), dense over the cancellation span.
func CancellationsPerMonth(rows []LedgerRow) []MonthCount {
	byMonth := make(map[MonthKey]map[string]bool)
	var first, last MonthKey
	for _, r := range rows {
		if r.Cancellation.IsZero() {
			continue
		}
		m := MonthOf(r.Cancellation)
		if byMonth[m] == nil {
			byMonth[m] = make(map[string]bool)
		}
		byMonth[m][r.CustomerID] = true
		if first.IsZero() || m.Before(first) {
			first = m
		}
		if last.IsZero() || last.Before(m) {
			last = m
		}
	}

	var series []MonthCount
	for _, m := range monthSpan(first, last) {
		series = append(series, MonthCount{Month: m, Count: len(byMonth[m])})
	}
	return series
}

// CustomerListing lists the distinct customers of the working set,
// left-joined to the roster for name and phone.
func CustomerListing(ws *WorkingSet, ix *CardIndex) []CustomerInfo {
	seen := make(map[string]bool)
	var listing []CustomerInfo
	for _, r := range ws.Rows {
		if seen[r.CustomerID] {
			continue
		}
		seen[r.CustomerID] = true
		info := CustomerInfo{CustomerID: r.CustomerID}
		if row, ok := ix.Customer(r.CustomerID); ok {
			info.CardToken = row.CardToken
			info.FullName = row.FullName
			info.Phone = row.Phone
		}
		listing = append(listing, info)
	}
	sort.Slice(listing, func(i, j int) bool {
		return listing[i].CustomerID < listing[j].CustomerID
	})
	return listing
}

func sortMonths(months []MonthKey) {
	sort.Slice(months, func(i, j int) bool {
		return months[i].Before(months[j])
	})
}
