package internal

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Amount is a money cell that may be missing or unparsable.
// Invalid amounts are skipped by every sum (they contribute 0).
type Amount struct {
	decimal.Decimal
	Valid bool
}

// NewAmount wraps a decimal as a valid Amount.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d, Valid: true}
}

// LedgerRow is one completed (or cancelled) transaction.
// After normalization Completion is always set and CustomerID is non-empty;
// Cancellation and Payment are zero when the source cell was empty or invalid.
type LedgerRow struct {
	CustomerID   string
	Completion   time.Time
	Cancellation time.Time
	Payment      time.Time
	AmountPaid   Amount
	Fee          Amount
	Net          Amount
	Month        MonthKey // derived from Completion
}

// CustomerRow is one roster entry. CardToken is the secondary identifier
// shown in the UI; CustomerID is the primary key the ledger uses.
type CustomerRow struct {
	CustomerID string
	CardToken  string
	FullName   string
	Phone      string
}

type ExpenseStatus string

const (
	StatusPaid    ExpenseStatus = "paid"
	StatusPending ExpenseStatus = "pending"
	StatusOther   ExpenseStatus = "other"
)

// ExpenseRow is one expense entry. Month is zero when DueDate was missing.
type ExpenseRow struct {
	Amount  Amount
	DueDate time.Time
	Status  ExpenseStatus
	Month   MonthKey
}

// Tables holds the normalized snapshot of one uploaded workbook.
// It is built once per upload and never mutated afterwards.
type Tables struct {
	Ledger    []LedgerRow
	Customers []CustomerRow
	Expenses  []ExpenseRow

	// Warnings collected while loading and normalizing (missing sheets,
	// missing columns). Degraded sections are empty, never nil-dereferenced.
	Warnings []string
}

// MonthKey identifies a calendar month. Keys order chronologically,
// not by label.
type MonthKey struct {
	Year  int
	Month time.Month
}

// MonthOf buckets a date into its calendar month.
func MonthOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

func (k MonthKey) IsZero() bool {
	return k.Year == 0 && k.Month == 0
}

func (k MonthKey) Time() time.Time {
	return time.Date(k.Year, k.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

func (k MonthKey) Next() MonthKey {
	return MonthOf(k.Time().AddDate(0, 1, 0))
}

// Label renders the display form, e.g. "Jan/2025".
func (k MonthKey) Label() string {
	return k.Time().Format("Jan/2006")
}

// ParseMonthLabel parses the display form back into a key.
func ParseMonthLabel(s string) (MonthKey, error) {
	t, err := time.Parse("Jan/2006", s)
	if err != nil {
		return MonthKey{}, fmt.Errorf("invalid month label %q (want e.g. Jan/2025): %w", s, err)
	}
	return MonthOf(t), nil
}

// DateRange is an inclusive completion-date window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the range, inclusive on both ends.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// WorkingSet is the ledger subset surviving all active filters plus the
// resolved customer-id allow-list. Each filter application builds a new set.
type WorkingSet struct {
	Rows    []LedgerRow
	Allowed map[string]bool
}
