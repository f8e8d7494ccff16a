package internal

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency formats money values for the dashboard cards and tables.
// The code comes from the config file; the report currency is a property of
// the uploaded workbook, not of the machine viewing it.
type Currency struct {
	Code    string // "BRL", "USD", "EUR"
	unit    currency.Unit
	printer *message.Printer
}

// symbolOverrides provides custom symbols where x/text defaults aren't ideal
var symbolOverrides = map[string]string{
	"BRL": "R$",
}

// localeForCurrency picks a "home" locale per currency so grouping and
// decimal marks come out right (1.234,56 for BRL, 1,234.56 for USD).
var localeForCurrency = map[string]language.Tag{
	"BRL": language.BrazilianPortuguese,
	"USD": language.AmericanEnglish,
	"EUR": language.German,
	"GBP": language.BritishEnglish,
	"ARS": language.LatinAmericanSpanish,
	"MXN": language.LatinAmericanSpanish,
	"PTE": language.EuropeanPortuguese,
}

// GetCurrency returns the Currency for a given code.
func GetCurrency(code string) Currency {
	code = strings.ToUpper(code)

	// Get the currency unit (validates the code)
	unit, err := currency.ParseISO(code)
	isUnknown := err != nil
	if isUnknown {
		unit = currency.USD // fallback unit for number formatting only
	}

	tag, ok := localeForCurrency[code]
	if !ok {
		tag = language.English
	}

	c := Currency{
		Code:    code,
		unit:    unit,
		printer: message.NewPrinter(tag),
	}

	// For unknown currencies, override the symbol to use the code
	if isUnknown {
		symbolOverrides[code] = code
	}

	return c
}

// getSymbol returns the currency symbol, using overrides where needed
func (c Currency) getSymbol() string {
	if sym, ok := symbolOverrides[c.Code]; ok {
		return sym
	}
	return c.printer.Sprint(currency.NarrowSymbol(c.unit))
}

// isPrefix returns true if this currency symbol should be placed before the
// amount. x/text doesn't implement symbol positioning from CLDR patterns,
// so the prefix currencies are listed manually.
func (c Currency) isPrefix() bool {
	switch c.Code {
	case "BRL", "USD", "GBP", "MXN", "ARS":
		return true
	default:
		return false
	}
}

// Format renders a money value with two fraction digits and the currency
// symbol, e.g. "R$1.234,56".
func (c Currency) Format(d decimal.Decimal) string {
	formatted := c.printer.Sprint(number.Decimal(d.InexactFloat64(),
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	symbol := c.getSymbol()

	if c.isPrefix() {
		return symbol + formatted
	}
	return formatted + " " + symbol
}
