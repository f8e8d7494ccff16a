package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SheetNames are the workbook sheet names for the three tables.
// Zero values fall back to the OnCard export defaults.
type SheetNames struct {
	Ledger    string `yaml:"ledger,omitempty"`
	Customers string `yaml:"customers,omitempty"`
	Expenses  string `yaml:"expenses,omitempty"`
}

// WithDefaults fills unset sheet names with the export defaults.
func (s SheetNames) WithDefaults() SheetNames {
	if s.Ledger == "" {
		s.Ledger = "LANCAMENTOS"
	}
	if s.Customers == "" {
		s.Customers = "CLIENTES"
	}
	if s.Expenses == "" {
		s.Expenses = "DESPESAS"
	}
	return s
}

type Config struct {
	// Currency is the ISO code used when formatting money. Defaults to BRL.
	Currency string `yaml:"currency,omitempty"`

	// ClosingBasis selects the minuend of the post-expense closing metric:
	// "net" (net revenue − paid expenses, the default) or "gross".
	ClosingBasis string `yaml:"closing_basis,omitempty"`

	// ReportUnknownCards surfaces a warning when a selected card token has
	// no roster mapping. Off by default: unknown tokens are silently absent
	// from the filter.
	ReportUnknownCards bool `yaml:"report_unknown_cards,omitempty"`

	// Sheets overrides the workbook sheet names.
	Sheets SheetNames `yaml:"sheets,omitempty"`
}

// DefaultConfigPath returns the default config file path
// (~/.finance-dashboard/config.yaml)
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".finance-dashboard", "config.yaml")
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	switch cfg.ClosingBasis {
	case "", string(BasisNet), string(BasisGross):
	default:
		return nil, fmt.Errorf("invalid closing_basis %q (want %q or %q)",
			cfg.ClosingBasis, BasisNet, BasisGross)
	}

	return &cfg, nil
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CurrencyCode returns the configured currency code, BRL by default.
func (c *Config) CurrencyCode() string {
	if c == nil || c.Currency == "" {
		return "BRL"
	}
	return c.Currency
}

// Basis returns the configured closing basis, net by default.
func (c *Config) Basis() ClosingBasis {
	if c == nil || c.ClosingBasis == "" {
		return BasisNet
	}
	return ClosingBasis(c.ClosingBasis)
}

// ReportUnknownCardTokens reports whether unmatched card tokens in the
// filter selection should produce a user-visible warning.
func (c *Config) ReportUnknownCardTokens() bool {
	return c != nil && c.ReportUnknownCards
}

// SheetNames returns the configured sheet names with defaults applied.
func (c *Config) SheetNames() SheetNames {
	if c == nil {
		return SheetNames{}.WithDefaults()
	}
	return c.Sheets.WithDefaults()
}
