package internal

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func amt(s string) Amount {
	return NewAmount(dec(s))
}

// ledgerRow builds a test row with amount_paid, fee, and net all set to the
// same value unless overridden by the caller afterwards.
func ledgerRow(id, completion, paid string) LedgerRow {
	d := date(completion)
	return LedgerRow{
		CustomerID: id,
		Completion: d,
		AmountPaid: amt(paid),
		Fee:        Amount{},
		Net:        amt(paid),
		Month:      MonthOf(d),
	}
}

func workingSet(rows ...LedgerRow) *WorkingSet {
	allowed := make(map[string]bool)
	for _, r := range rows {
		allowed[r.CustomerID] = true
	}
	return &WorkingSet{Rows: rows, Allowed: allowed}
}

func TestComputeMetrics_Scenario(t *testing.T) {
	// Customer A: 100 + 50 in Jan, plus one more row; customer B: 200 in Jan.
	ws := workingSet(
		ledgerRow("A", "2025-01-10", "100"),
		ledgerRow("A", "2025-01-20", "50"),
		ledgerRow("B", "2025-01-15", "200"),
	)

	m := ComputeMetrics(ws, nil, BasisNet)

	if !m.GrossRevenue.Equal(dec("350")) {
		t.Errorf("gross revenue = %s, want 350", m.GrossRevenue)
	}
	if m.DistinctCustomers != 2 {
		t.Errorf("distinct customers = %d, want 2", m.DistinctCustomers)
	}
	if !m.AverageTicket.Equal(dec("175")) {
		t.Errorf("average ticket = %s, want 175", m.AverageTicket)
	}

	series := CustomersPerMonth(ws.Rows)
	if len(series) != 1 || series[0].Count != 2 {
		t.Errorf("customers per month = %v, want single Jan bucket with 2", series)
	}
}

func TestComputeMetrics_AverageTicketZeroGuard(t *testing.T) {
	m := ComputeMetrics(&WorkingSet{}, nil, BasisNet)

	if m.DistinctCustomers != 0 {
		t.Errorf("distinct customers = %d, want 0", m.DistinctCustomers)
	}
	if !m.AverageTicket.IsZero() {
		t.Errorf("average ticket = %s, want 0 when no customers", m.AverageTicket)
	}
}

func TestComputeMetrics_Expenses(t *testing.T) {
	expenses := []ExpenseRow{
		{Amount: amt("100"), Status: StatusPaid},
		{Amount: amt("30"), Status: StatusPaid},
		{Amount: amt("70"), Status: StatusPending},
		{Amount: amt("999"), Status: StatusOther},
		{Amount: Amount{}, Status: StatusPaid}, // invalid amount skipped
	}

	m := ComputeMetrics(&WorkingSet{}, expenses, BasisNet)

	if !m.ExpensesPaid.Equal(dec("130")) {
		t.Errorf("expenses paid = %s, want 130", m.ExpensesPaid)
	}
	if !m.ExpensesPending.Equal(dec("70")) {
		t.Errorf("expenses pending = %s, want 70", m.ExpensesPending)
	}
}

func TestComputeMetrics_ClosingBasis(t *testing.T) {
	row := ledgerRow("A", "2025-01-10", "100")
	row.Net = amt("90")
	ws := workingSet(row)
	expenses := []ExpenseRow{{Amount: amt("40"), Status: StatusPaid}}

	net := ComputeMetrics(ws, expenses, BasisNet)
	if !net.Closing.Equal(dec("50")) {
		t.Errorf("net-basis closing = %s, want 50", net.Closing)
	}

	gross := ComputeMetrics(ws, expenses, BasisGross)
	if !gross.Closing.Equal(dec("60")) {
		t.Errorf("gross-basis closing = %s, want 60", gross.Closing)
	}
}

func TestCustomersPerMonth_DenseAxis(t *testing.T) {
	// Jan and Mar rows only; Feb must still appear, valued 0.
	rows := []LedgerRow{
		ledgerRow("A", "2025-01-10", "100"),
		ledgerRow("B", "2025-03-20", "200"),
	}

	series := CustomersPerMonth(rows)

	if len(series) != 3 {
		t.Fatalf("expected 3 buckets (Jan..Mar), got %d", len(series))
	}
	wantLabels := []string{"Jan/2025", "Feb/2025", "Mar/2025"}
	wantCounts := []int{1, 0, 1}
	for i, p := range series {
		if p.Month.Label() != wantLabels[i] {
			t.Errorf("bucket %d label = %s, want %s", i, p.Month.Label(), wantLabels[i])
		}
		if p.Count != wantCounts[i] {
			t.Errorf("bucket %d count = %d, want %d", i, p.Count, wantCounts[i])
		}
	}
}

func TestClosingPerMonth_ZeroFill(t *testing.T) {
	rows := []LedgerRow{
		ledgerRow("A", "2025-01-10", "100"),
		ledgerRow("A", "2025-03-10", "40"),
	}

	series := ClosingPerMonth(rows)

	if len(series) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(series))
	}
	if !series[1].Amount.IsZero() {
		t.Errorf("Feb closing = %s, want 0", series[1].Amount)
	}
	if !series[2].Amount.Equal(dec("40")) {
		t.Errorf("Mar closing = %s, want 40", series[2].Amount)
	}
}

func TestPctChange(t *testing.T) {
	series := []MonthAmount{
		{Month: MonthKey{2025, time.January}, Amount: dec("100")},
		{Month: MonthKey{2025, time.February}, Amount: dec("150")},
		{Month: MonthKey{2025, time.March}, Amount: dec("75")},
	}

	change := PctChange(series)

	if change[0].Defined {
		t.Error("first bucket must be undefined")
	}
	if !change[1].Defined || change[1].Change != 50 {
		t.Errorf("Feb change = %+v, want +50%%", change[1])
	}
	if !change[2].Defined || change[2].Change != -50 {
		t.Errorf("Mar change = %+v, want -50%%", change[2])
	}
}

func TestPctChange_ZeroPrevious(t *testing.T) {
	series := []MonthAmount{
		{Month: MonthKey{2025, time.January}, Amount: decimal.Zero},
		{Month: MonthKey{2025, time.February}, Amount: dec("50")},
		{Month: MonthKey{2025, time.March}, Amount: decimal.Zero},
		{Month: MonthKey{2025, time.April}, Amount: dec("-20")},
	}

	change := PctChange(series)

	if !change[1].Defined || !math.IsInf(change[1].Change, 1) {
		t.Errorf("zero→positive change = %+v, want +Inf sentinel", change[1])
	}
	if !change[3].Defined || !math.IsInf(change[3].Change, -1) {
		t.Errorf("zero→negative change = %+v, want -Inf sentinel", change[3])
	}
}

func TestPctChange_Empty(t *testing.T) {
	if got := PctChange(nil); len(got) != 0 {
		t.Errorf("expected empty series, got %v", got)
	}
}

func TestRevenueVsExpense_OuterJoin(t *testing.T) {
	rows := []LedgerRow{ledgerRow("A", "2025-01-10", "100")}
	expenses := []ExpenseRow{
		{Amount: amt("60"), DueDate: date("2025-02-05"), Status: StatusPaid, Month: MonthKey{2025, time.February}},
	}

	series := RevenueVsExpense(rows, expenses)

	if len(series) != 2 {
		t.Fatalf("expected 2 buckets (Jan, Feb), got %d", len(series))
	}
	jan, feb := series[0], series[1]
	if !jan.Revenue.Equal(dec("100")) || !jan.Expense.IsZero() {
		t.Errorf("Jan = %s/%s, want 100/0", jan.Revenue, jan.Expense)
	}
	if !feb.Revenue.IsZero() || !feb.Expense.Equal(dec("60")) {
		t.Errorf("Feb = %s/%s, want 0/60", feb.Revenue, feb.Expense)
	}
}

func TestCancellationsPerMonth_BucketsByCancellationMonth(t *testing.T) {
	row := ledgerRow("A", "2025-01-10", "100")
	row.Cancellation = date("2025-02-18")
	other := ledgerRow("B", "2025-01-12", "50") // never cancelled

	series := CancellationsPerMonth([]LedgerRow{row, other})

	if len(series) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(series))
	}
	if series[0].Month.Label() != "Feb/2025" {
		t.Errorf("bucket = %s, want Feb/2025 (cancellation month, not completion)", series[0].Month.Label())
	}
	if series[0].Count != 1 {
		t.Errorf("count = %d, want 1", series[0].Count)
	}
}

func TestCancellationsPerMonth_DistinctCustomers(t *testing.T) {
	a1 := ledgerRow("A", "2025-01-10", "100")
	a1.Cancellation = date("2025-01-20")
	a2 := ledgerRow("A", "2025-01-11", "50")
	a2.Cancellation = date("2025-01-25")

	series := CancellationsPerMonth([]LedgerRow{a1, a2})

	if len(series) != 1 || series[0].Count != 1 {
		t.Errorf("series = %v, want one Jan bucket counting customer A once", series)
	}
}

func TestCustomerListing_LeftJoin(t *testing.T) {
	ix := BuildCardIndex([]CustomerRow{
		{CustomerID: "A", CardToken: "C-A", FullName: "Ana", Phone: "11 1111"},
	})
	ws := workingSet(
		ledgerRow("A", "2025-01-10", "100"),
		ledgerRow("A", "2025-01-11", "50"),
		ledgerRow("Z", "2025-01-12", "10"), // not in roster
	)

	listing := CustomerListing(ws, ix)

	if len(listing) != 2 {
		t.Fatalf("expected 2 distinct customers, got %d", len(listing))
	}
	if listing[0].CustomerID != "A" || listing[0].FullName != "Ana" {
		t.Errorf("matched row = %+v, want roster name joined", listing[0])
	}
	if listing[1].CustomerID != "Z" || listing[1].FullName != "" || listing[1].Phone != "" {
		t.Errorf("unmatched row = %+v, want kept with empty name/phone", listing[1])
	}
}
