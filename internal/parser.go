package internal

import (
	"fmt"
	"strings"
)

// RawLedgerRow is one ledger row as read from the workbook, before coercion.
type RawLedgerRow struct {
	CustomerID   string
	Completion   string
	Cancellation string
	Payment      string
	AmountPaid   string
	Fee          string
	Net          string
}

// RawCustomerRow is one roster row as read from the workbook.
type RawCustomerRow struct {
	CustomerID string
	CardToken  string
	FullName   string
	Phone      string
}

// RawExpenseRow is one expense row as read from the workbook.
type RawExpenseRow struct {
	Amount  string
	DueDate string
	Status  string
}

// RawWorkbook is the uncoerced content of one uploaded workbook.
// A section with its Has flag unset was missing or malformed; the
// matching warning explains why. Sections degrade independently.
type RawWorkbook struct {
	Ledger    []RawLedgerRow
	Customers []RawCustomerRow
	Expenses  []RawExpenseRow

	HasLedger    bool
	HasCustomers bool
	HasExpenses  bool

	Warnings []string
}

// Parser parses workbook files into raw tables
type Parser interface {
	Parse(path string, sheets SheetNames) (*RawWorkbook, error)
}

// ParserFunc is a function that implements Parser
type ParserFunc func(path string, sheets SheetNames) (*RawWorkbook, error)

func (f ParserFunc) Parse(path string, sheets SheetNames) (*RawWorkbook, error) {
	return f(path, sheets)
}

// parsers is the registry of available parsers
var parsers = map[string]Parser{}

// RegisterParser registers a parser with the given name
func RegisterParser(name string, p Parser) {
	parsers[name] = p
}

// GetParser returns the parser for the given source type
func GetParser(source string) (Parser, error) {
	p, ok := parsers[source]
	if !ok {
		return nil, fmt.Errorf("unknown source type: %s (available: %v)", source, AvailableSources())
	}
	return p, nil
}

// AvailableSources returns a list of registered source types
func AvailableSources() []string {
	var sources []string
	for name := range parsers {
		sources = append(sources, name)
	}
	return sources
}

// IsKnownParser returns true if the name is a registered parser
func IsKnownParser(name string) bool {
	_, ok := parsers[name]
	return ok
}

// ParseFileArg parses a file argument that may have a format prefix.
// Returns (format, path). If no valid prefix, format is empty.
// Example: "workbook-json:data.json" → ("workbook-json", "data.json")
// Example: "C:\path\file.xlsx" → ("", "C:\path\file.xlsx") // Windows path
func ParseFileArg(arg string) (format, path string) {
	idx := strings.Index(arg, ":")
	if idx == -1 {
		return "", arg
	}
	prefix := arg[:idx]
	if IsKnownParser(prefix) {
		return prefix, arg[idx+1:]
	}
	return "", arg
}
