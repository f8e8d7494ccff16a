package internal

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Date layouts accepted by the normalizer. Workbook exports use ISO dates,
// Brazilian day-first dates, or either with a time suffix.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02-01-2006",
	"01-02-06",
}

// Normalize coerces a raw workbook into typed tables.
//
// Ledger rows without a parsable completion date or a non-empty customer id
// are dropped entirely. Unparsable amounts become invalid (skipped by sums);
// unparsable secondary dates become zero. No row-level errors are raised.
func Normalize(raw *RawWorkbook) Tables {
	t := Tables{Warnings: append([]string(nil), raw.Warnings...)}

	for _, r := range raw.Ledger {
		id := strings.TrimSpace(r.CustomerID)
		completion := parseDate(r.Completion)
		if id == "" || completion.IsZero() {
			continue
		}
		t.Ledger = append(t.Ledger, LedgerRow{
			CustomerID:   id,
			Completion:   completion,
			Cancellation: parseDate(r.Cancellation),
			Payment:      parseDate(r.Payment),
			AmountPaid:   parseAmount(r.AmountPaid),
			Fee:          parseAmount(r.Fee),
			Net:          parseAmount(r.Net),
			Month:        MonthOf(completion),
		})
	}

	for _, r := range raw.Customers {
		id := strings.TrimSpace(r.CustomerID)
		token := strings.TrimSpace(r.CardToken)
		if id == "" {
			continue
		}
		t.Customers = append(t.Customers, CustomerRow{
			CustomerID: id,
			CardToken:  token,
			FullName:   strings.TrimSpace(r.FullName),
			Phone:      strings.TrimSpace(r.Phone),
		})
	}

	for _, r := range raw.Expenses {
		due := parseDate(r.DueDate)
		row := ExpenseRow{
			Amount:  parseAmount(r.Amount),
			DueDate: due,
			Status:  parseStatus(r.Status),
		}
		if !due.IsZero() {
			row.Month = MonthOf(due)
		}
		t.Expenses = append(t.Expenses, row)
	}

	return t
}

// parseDate tries the accepted layouts in order. Returns the zero time when
// no layout matches.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parseAmount coerces a money cell to a decimal. Handles plain numbers,
// "R$" prefixes, and both separator conventions ("1234.56" and "1.234,56").
// Returns an invalid Amount when the cell is empty or unparsable.
func parseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return Amount{}
	}

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		// The rightmost separator is the decimal mark.
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}
	}
	return NewAmount(d)
}

// parseStatus classifies an expense status cell, case-insensitive.
// Accepts both the Portuguese workbook values and their English forms.
func parseStatus(s string) ExpenseStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pago", "paga", "paid":
		return StatusPaid
	case "pendente", "pending":
		return StatusPending
	default:
		return StatusOther
	}
}
