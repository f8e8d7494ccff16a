package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
currency: USD
closing_basis: gross
report_unknown_cards: true
sheets:
  ledger: Transactions
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.CurrencyCode() != "USD" {
		t.Errorf("currency = %s, want USD", cfg.CurrencyCode())
	}
	if cfg.Basis() != BasisGross {
		t.Errorf("basis = %s, want gross", cfg.Basis())
	}
	if !cfg.ReportUnknownCardTokens() {
		t.Error("report_unknown_cards should be enabled")
	}

	sheets := cfg.SheetNames()
	if sheets.Ledger != "Transactions" {
		t.Errorf("ledger sheet = %s, want Transactions", sheets.Ledger)
	}
	// Unset names fall back to the export defaults.
	if sheets.Customers != "CLIENTES" || sheets.Expenses != "DESPESAS" {
		t.Errorf("default sheet names not applied: %+v", sheets)
	}
}

func TestLoadConfig_InvalidBasis(t *testing.T) {
	path := writeConfig(t, "closing_basis: sideways\n")
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for invalid closing_basis")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestConfig_NilDefaults(t *testing.T) {
	var cfg *Config

	if cfg.CurrencyCode() != "BRL" {
		t.Errorf("nil config currency = %s, want BRL", cfg.CurrencyCode())
	}
	if cfg.Basis() != BasisNet {
		t.Errorf("nil config basis = %s, want net", cfg.Basis())
	}
	if cfg.ReportUnknownCardTokens() {
		t.Error("nil config should not report unknown cards")
	}

	sheets := cfg.SheetNames()
	if sheets.Ledger != "LANCAMENTOS" || sheets.Customers != "CLIENTES" || sheets.Expenses != "DESPESAS" {
		t.Errorf("nil config sheets = %+v, want export defaults", sheets)
	}
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := &Config{Currency: "EUR", ClosingBasis: "gross"}

	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.CurrencyCode() != "EUR" || loaded.Basis() != BasisGross {
		t.Errorf("round trip = %+v", loaded)
	}
}
