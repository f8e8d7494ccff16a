package internal

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column aliases per logical field. The first alias is the canonical name;
// the rest are the headers used by the OnCard workbook exports.
var ledgerColumns = map[string][]string{
	"customer_id":       {"customer_id", "ID_Cliente"},
	"completion_date":   {"completion_date", "Data_Conclusao"},
	"cancellation_date": {"cancellation_date", "Data_Cancelamento"},
	"payment_date":      {"payment_date", "Data_Pagamento"},
	"amount_paid":       {"amount_paid", "Valor_Pago"},
	"fee":               {"fee", "Taxa"},
	"net_amount":        {"net_amount", "Valor_Liquido", "Valor_Total"},
}

var customerColumns = map[string][]string{
	"customer_id": {"customer_id", "ID_Cliente"},
	"card_token":  {"card_token", "Card_do_sistema"},
	"full_name":   {"full_name", "Nome"},
	"phone":       {"phone", "Telefone"},
}

var expenseColumns = map[string][]string{
	"amount":   {"amount", "Valor"},
	"due_date": {"due_date", "Data_Vencimento"},
	"status":   {"status", "Status"},
}

// ParseWorkbookXLSX reads the three dashboard tables from an Excel workbook.
// Sheets are located by name (case-insensitive); columns are located by
// header name within each sheet. A missing sheet or missing required column
// degrades that section with a warning instead of failing the whole file.
func ParseWorkbookXLSX(path string, sheets SheetNames) (*RawWorkbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	wb := &RawWorkbook{}

	ledger, warn := readSheet(f, sheets.Ledger, ledgerColumns, []string{"customer_id", "completion_date"})
	if warn != "" {
		wb.Warnings = append(wb.Warnings, warn)
	} else {
		wb.HasLedger = true
		for _, rec := range ledger {
			wb.Ledger = append(wb.Ledger, RawLedgerRow{
				CustomerID:   rec["customer_id"],
				Completion:   rec["completion_date"],
				Cancellation: rec["cancellation_date"],
				Payment:      rec["payment_date"],
				AmountPaid:   rec["amount_paid"],
				Fee:          rec["fee"],
				Net:          rec["net_amount"],
			})
		}
	}

	customers, warn := readSheet(f, sheets.Customers, customerColumns, []string{"customer_id", "card_token"})
	if warn != "" {
		wb.Warnings = append(wb.Warnings, warn)
	} else {
		wb.HasCustomers = true
		for _, rec := range customers {
			wb.Customers = append(wb.Customers, RawCustomerRow{
				CustomerID: rec["customer_id"],
				CardToken:  rec["card_token"],
				FullName:   rec["full_name"],
				Phone:      rec["phone"],
			})
		}
	}

	expenses, warn := readSheet(f, sheets.Expenses, expenseColumns, []string{"amount", "status"})
	if warn != "" {
		wb.Warnings = append(wb.Warnings, warn)
	} else {
		wb.HasExpenses = true
		for _, rec := range expenses {
			wb.Expenses = append(wb.Expenses, RawExpenseRow{
				Amount:  rec["amount"],
				DueDate: rec["due_date"],
				Status:  rec["status"],
			})
		}
	}

	return wb, nil
}

// readSheet reads one sheet into field→value records using the alias table.
// Returns a non-empty warning when the sheet or a required column is absent.
func readSheet(f *excelize.File, name string, columns map[string][]string, required []string) ([]map[string]string, string) {
	sheet := findSheet(f, name)
	if sheet == "" {
		return nil, fmt.Sprintf("sheet %q not found in workbook", name)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Sprintf("reading sheet %q: %v", name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Sprintf("sheet %q is empty", name)
	}

	// Header row is the first row that contains all required columns.
	var fieldCol map[string]int
	dataStart := -1
	for i, row := range rows {
		cols := matchHeader(row, columns)
		if containsAll(cols, required) {
			fieldCol = cols
			dataStart = i + 1
			break
		}
	}
	if fieldCol == nil {
		return nil, fmt.Sprintf("sheet %q is missing required columns %v", name, required)
	}

	var records []map[string]string
	for i := dataStart; i < len(rows); i++ {
		row := rows[i]
		rec := make(map[string]string, len(fieldCol))
		empty := true
		for field, col := range fieldCol {
			var cell string
			if col < len(row) {
				cell = strings.TrimSpace(row[col])
			}
			rec[field] = cell
			if cell != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		records = append(records, rec)
	}

	return records, ""
}

// findSheet locates a sheet by name, ignoring case and surrounding spaces.
func findSheet(f *excelize.File, name string) string {
	for _, s := range f.GetSheetList() {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return s
		}
	}
	return ""
}

// matchHeader maps logical field names to column indices for a header row.
func matchHeader(row []string, columns map[string][]string) map[string]int {
	cols := make(map[string]int)
	for j, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		for field, aliases := range columns {
			if _, taken := cols[field]; taken {
				continue
			}
			for _, alias := range aliases {
				if strings.EqualFold(cell, alias) {
					cols[field] = j
					break
				}
			}
		}
	}
	return cols
}

func containsAll(cols map[string]int, fields []string) bool {
	for _, f := range fields {
		if _, ok := cols[f]; !ok {
			return false
		}
	}
	return true
}

func init() {
	// Register built-in parsers
	RegisterParser("workbook-xlsx", ParserFunc(ParseWorkbookXLSX))
}
