package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// JSONOutput is the root JSON output object
type JSONOutput struct {
	Metrics               JSONMetrics          `json:"metrics"`
	CustomersPerMonth     []JSONMonthCount     `json:"customers_per_month"`
	ClosingPerMonth       []JSONMonthAmount    `json:"closing_per_month"`
	NetChangePerMonth     []JSONPctPoint       `json:"net_change_per_month"`
	RevenueVsExpense      []JSONRevenueExpense `json:"revenue_vs_expense_per_month"`
	CancellationsPerMonth []JSONMonthCount     `json:"cancellations_per_month"`
	Customers             []JSONCustomer       `json:"customers"`
	Warnings              []string             `json:"warnings,omitempty"`
	Currency              string               `json:"currency"`
}

type JSONMetrics struct {
	GrossRevenue      float64 `json:"gross_revenue"`
	TotalFees         float64 `json:"total_fees"`
	NetRevenue        float64 `json:"net_revenue"`
	DistinctCustomers int     `json:"distinct_customers"`
	AverageTicket     float64 `json:"average_ticket"`
	ExpensesPaid      float64 `json:"expenses_paid"`
	ExpensesPending   float64 `json:"expenses_pending"`
	Closing           float64 `json:"closing"`
}

type JSONMonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type JSONMonthAmount struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// JSONPctPoint carries the change as a pointer: null for the undefined
// first bucket and for infinite changes, since JSON has no NaN/Inf.
type JSONPctPoint struct {
	Month  string   `json:"month"`
	Change *float64 `json:"change_pct"`
}

type JSONRevenueExpense struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Expense float64 `json:"expense"`
}

type JSONCustomer struct {
	CustomerID string `json:"customer_id"`
	CardToken  string `json:"card_token,omitempty"`
	FullName   string `json:"full_name,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// PrintDashboardJSON outputs the dashboard result in JSON format
func PrintDashboardJSON(w io.Writer, r *DashboardResult, cur Currency) error {
	out := JSONOutput{
		Metrics: JSONMetrics{
			GrossRevenue:      r.Metrics.GrossRevenue.InexactFloat64(),
			TotalFees:         r.Metrics.TotalFees.InexactFloat64(),
			NetRevenue:        r.Metrics.NetRevenue.InexactFloat64(),
			DistinctCustomers: r.Metrics.DistinctCustomers,
			AverageTicket:     r.Metrics.AverageTicket.InexactFloat64(),
			ExpensesPaid:      r.Metrics.ExpensesPaid.InexactFloat64(),
			ExpensesPending:   r.Metrics.ExpensesPending.InexactFloat64(),
			Closing:           r.Metrics.Closing.InexactFloat64(),
		},
		Warnings: r.Warnings,
		Currency: cur.Code,
	}

	for _, p := range r.CustomersPerMonth {
		out.CustomersPerMonth = append(out.CustomersPerMonth, JSONMonthCount{Month: p.Month.Label(), Count: p.Count})
	}
	for _, p := range r.ClosingPerMonth {
		out.ClosingPerMonth = append(out.ClosingPerMonth, JSONMonthAmount{Month: p.Month.Label(), Amount: p.Amount.InexactFloat64()})
	}
	for _, p := range r.NetChange {
		jp := JSONPctPoint{Month: p.Month.Label()}
		if p.Defined && !math.IsInf(p.Change, 0) {
			change := p.Change
			jp.Change = &change
		}
		out.NetChangePerMonth = append(out.NetChangePerMonth, jp)
	}
	for _, p := range r.RevenueVsExpense {
		out.RevenueVsExpense = append(out.RevenueVsExpense, JSONRevenueExpense{
			Month:   p.Month.Label(),
			Revenue: p.Revenue.InexactFloat64(),
			Expense: p.Expense.InexactFloat64(),
		})
	}
	for _, p := range r.CancellationsPerMonth {
		out.CancellationsPerMonth = append(out.CancellationsPerMonth, JSONMonthCount{Month: p.Month.Label(), Count: p.Count})
	}
	for _, c := range r.Customers {
		out.Customers = append(out.Customers, JSONCustomer{
			CustomerID: c.CustomerID,
			CardToken:  c.CardToken,
			FullName:   c.FullName,
			Phone:      c.Phone,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// PrintDashboardTable renders the summary cards, the five series, and the
// customer listing as formatted tables. An empty working set prints an
// informational message instead of the series tables.
func PrintDashboardTable(w io.Writer, r *DashboardResult, cur Currency) {
	printMetrics(w, r.Metrics, cur)

	if r.Empty() {
		fmt.Fprintln(w, "\nNo ledger rows match the selected filters.")
		return
	}

	printClosingSeries(w, r.ClosingPerMonth, r.NetChange, cur)
	printCountSeries(w, "Customers per month", "Customers", r.CustomersPerMonth)
	printRevenueVsExpense(w, r.RevenueVsExpense, cur)
	if len(r.CancellationsPerMonth) > 0 {
		printCountSeries(w, "Cancellations per month", "Cancelled", r.CancellationsPerMonth)
	}
	printCustomers(w, r.Customers)
}

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	return t
}

func printMetrics(w io.Writer, m Metrics, cur Currency) {
	t := newTable(w, "Summary")
	t.AppendRows([]table.Row{
		{"Gross revenue", cur.Format(m.GrossRevenue)},
		{"Total fees", cur.Format(m.TotalFees)},
		{"Net revenue", cur.Format(m.NetRevenue)},
		{"Distinct customers", m.DistinctCustomers},
		{"Average ticket", cur.Format(m.AverageTicket)},
		{"Expenses paid", cur.Format(m.ExpensesPaid)},
		{"Expenses pending", cur.Format(m.ExpensesPending)},
		{"Closing", cur.Format(m.Closing)},
	})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.Render()
}

func printClosingSeries(w io.Writer, closing []MonthAmount, change []PctPoint, cur Currency) {
	changeByMonth := make(map[MonthKey]PctPoint, len(change))
	for _, p := range change {
		changeByMonth[p.Month] = p
	}

	t := newTable(w, "Monthly closing")
	t.AppendHeader(table.Row{"Month", "Closing", "Δ%"})
	for _, p := range closing {
		t.AppendRow(table.Row{p.Month.Label(), cur.Format(p.Amount), formatChange(changeByMonth[p.Month])})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.Render()
}

// formatChange renders a pct-change cell: blank for the undefined first
// bucket, "∞" when the previous month was zero.
func formatChange(p PctPoint) string {
	if !p.Defined {
		return ""
	}
	if math.IsInf(p.Change, 1) {
		return "∞"
	}
	if math.IsInf(p.Change, -1) {
		return "-∞"
	}
	return fmt.Sprintf("%+.1f%%", p.Change)
}

func printCountSeries(w io.Writer, title, column string, series []MonthCount) {
	t := newTable(w, title)
	t.AppendHeader(table.Row{"Month", column})
	for _, p := range series {
		t.AppendRow(table.Row{p.Month.Label(), p.Count})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.Render()
}

func printRevenueVsExpense(w io.Writer, series []RevenueExpensePoint, cur Currency) {
	t := newTable(w, "Revenue vs expenses")
	t.AppendHeader(table.Row{"Month", "Revenue", "Expenses"})
	for _, p := range series {
		t.AppendRow(table.Row{p.Month.Label(), cur.Format(p.Revenue), cur.Format(p.Expense)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.Render()
}

func printCustomers(w io.Writer, customers []CustomerInfo) {
	t := newTable(w, "Customers")
	t.AppendHeader(table.Row{"Card", "Customer ID", "Name", "Phone"})
	for _, c := range customers {
		t.AppendRow(table.Row{c.CardToken, c.CustomerID, c.FullName, c.Phone})
	}
	t.Render()
}
