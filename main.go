package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/oncard/finance-dashboard/internal"
)

type Params struct {
	Source string `descr:"Input format" alts:"workbook-xlsx,workbook-json" strict:"true" default:"workbook-xlsx"`
	File   string `descr:"Path to the workbook file" positional:"true"`
	Months string `descr:"Comma-separated month labels to include (e.g. Jan/2025,Feb/2025)"`
	From   string `descr:"Start of completion date range (YYYY-MM-DD)"`
	To     string `descr:"End of completion date range (YYYY-MM-DD)"`
	Cards  string `descr:"Comma-separated card tokens to include (empty = all)"`
	Output string `descr:"Output format" alts:"table,json" default:"table"`
	Config string `descr:"Path to config file"`
}

func main() {
	boa.NewCmdT[Params]("finance-dashboard").
		WithShort("Render the financial dashboard from an uploaded workbook").
		WithLong("Reads a workbook with ledger, customer, and expense sheets, applies month/date-range and card filters, and renders summary metrics, month-bucketed series, and the customer listing.").
		WithRunFunc(func(params *Params) {
			cfg := loadConfig(params.Config)

			source := params.Source
			format, path := internal.ParseFileArg(params.File)
			if format != "" {
				source = format
			}

			parser, err := internal.GetParser(source)
			if err != nil {
				fatal(err)
			}

			raw, err := parser.Parse(path, cfg.SheetNames())
			if err != nil {
				fatal(fmt.Errorf("parsing file: %w", err))
			}

			tables := internal.Normalize(raw)

			filterParams, err := buildFilterParams(params)
			if err != nil {
				fatal(err)
			}

			result, err := internal.Compute(tables, filterParams, cfg)
			if err != nil {
				fatal(err)
			}

			for _, w := range result.Warnings {
				fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
			}

			cur := internal.GetCurrency(cfg.CurrencyCode())
			if params.Output == "json" {
				if err := internal.PrintDashboardJSON(os.Stdout, result, cur); err != nil {
					fatal(err)
				}
				return
			}
			internal.PrintDashboardTable(os.Stdout, result, cur)
		}).
		Run()
}

// loadConfig loads the config file. An explicit --config path must load;
// a missing default config just falls back to defaults.
func loadConfig(path string) *internal.Config {
	explicit := path != ""
	if path == "" {
		path = internal.DefaultConfigPath()
	}
	if path == "" {
		return nil
	}
	cfg, err := internal.LoadConfig(path)
	if err != nil {
		if explicit {
			fatal(err)
		}
		return nil
	}
	return cfg
}

func buildFilterParams(params *Params) (internal.FilterParams, error) {
	fp := internal.FilterParams{
		Cards: splitList(params.Cards),
	}

	for _, label := range splitList(params.Months) {
		m, err := internal.ParseMonthLabel(label)
		if err != nil {
			return fp, err
		}
		fp.Months = append(fp.Months, m)
	}

	if params.From != "" || params.To != "" {
		if params.From == "" || params.To == "" {
			return fp, fmt.Errorf("date-range filter needs both --from and --to")
		}
		start, err := time.Parse("2006-01-02", params.From)
		if err != nil {
			return fp, fmt.Errorf("invalid --from date %q: %w", params.From, err)
		}
		end, err := time.Parse("2006-01-02", params.To)
		if err != nil {
			return fp, fmt.Errorf("invalid --to date %q: %w", params.To, err)
		}
		fp.Range = &internal.DateRange{Start: start, End: end}
	}

	return fp, fp.Validate()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
