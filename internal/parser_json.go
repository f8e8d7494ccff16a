package internal

import (
	"encoding/json"
	"fmt"
	"os"
)

// WorkbookJSONFormat is a minimal JSON mirror of the three workbook sheets.
// Example:
//
//	{
//	  "ledger": [
//	    {"customer_id": "1", "completion_date": "2025-01-15", "amount_paid": "100"}
//	  ],
//	  "customers": [
//	    {"customer_id": "1", "card_token": "C-001", "full_name": "Ana", "phone": "11 99999-0000"}
//	  ],
//	  "expenses": [
//	    {"amount": "50", "due_date": "2025-01-10", "status": "Pago"}
//	  ]
//	}
//
// All values are strings; coercion happens in the normalizer, exactly as for
// xlsx input. Easy to produce from any data source and used by test fixtures.
type WorkbookJSONFormat struct {
	Ledger    []WorkbookJSONLedgerRow   `json:"ledger"`
	Customers []WorkbookJSONCustomerRow `json:"customers"`
	Expenses  []WorkbookJSONExpenseRow  `json:"expenses"`
}

type WorkbookJSONLedgerRow struct {
	CustomerID   string `json:"customer_id"`
	Completion   string `json:"completion_date"`
	Cancellation string `json:"cancellation_date,omitempty"`
	Payment      string `json:"payment_date,omitempty"`
	AmountPaid   string `json:"amount_paid,omitempty"`
	Fee          string `json:"fee,omitempty"`
	Net          string `json:"net_amount,omitempty"`
}

type WorkbookJSONCustomerRow struct {
	CustomerID string `json:"customer_id"`
	CardToken  string `json:"card_token"`
	FullName   string `json:"full_name,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

type WorkbookJSONExpenseRow struct {
	Amount  string `json:"amount"`
	DueDate string `json:"due_date,omitempty"`
	Status  string `json:"status"`
}

// ParseWorkbookJSON parses a JSON file in the workbook JSON format.
// Sheet names do not apply to this source and are ignored.
func ParseWorkbookJSON(path string, _ SheetNames) (*RawWorkbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var jsonData WorkbookJSONFormat
	if err := json.Unmarshal(data, &jsonData); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	wb := &RawWorkbook{
		HasLedger:    jsonData.Ledger != nil,
		HasCustomers: jsonData.Customers != nil,
		HasExpenses:  jsonData.Expenses != nil,
	}
	if !wb.HasLedger {
		wb.Warnings = append(wb.Warnings, `missing "ledger" table`)
	}
	if !wb.HasCustomers {
		wb.Warnings = append(wb.Warnings, `missing "customers" table`)
	}
	if !wb.HasExpenses {
		wb.Warnings = append(wb.Warnings, `missing "expenses" table`)
	}

	for _, r := range jsonData.Ledger {
		wb.Ledger = append(wb.Ledger, RawLedgerRow{
			CustomerID:   r.CustomerID,
			Completion:   r.Completion,
			Cancellation: r.Cancellation,
			Payment:      r.Payment,
			AmountPaid:   r.AmountPaid,
			Fee:          r.Fee,
			Net:          r.Net,
		})
	}
	for _, r := range jsonData.Customers {
		wb.Customers = append(wb.Customers, RawCustomerRow{
			CustomerID: r.CustomerID,
			CardToken:  r.CardToken,
			FullName:   r.FullName,
			Phone:      r.Phone,
		})
	}
	for _, r := range jsonData.Expenses {
		wb.Expenses = append(wb.Expenses, RawExpenseRow{
			Amount:  r.Amount,
			DueDate: r.DueDate,
			Status:  r.Status,
		})
	}

	return wb, nil
}

func init() {
	RegisterParser("workbook-json", ParserFunc(ParseWorkbookJSON))
}
