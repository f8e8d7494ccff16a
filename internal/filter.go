package internal

import "fmt"

// FilterParams are the active filter inputs. Months and Range are mutually
// exclusive modes; Validate rejects setting both. An empty Cards selection
// means "all known customers", not "no customers".
type FilterParams struct {
	Months []MonthKey
	Range  *DateRange
	Cards  []string
}

// Validate checks that at most one bucket-or-date mode is active.
func (p FilterParams) Validate() error {
	if len(p.Months) > 0 && p.Range != nil {
		return fmt.Errorf("month filter and date-range filter are mutually exclusive")
	}
	if p.Range != nil && p.Range.End.Before(p.Range.Start) {
		return fmt.Errorf("date range end %s is before start %s",
			p.Range.End.Format("2006-01-02"), p.Range.Start.Format("2006-01-02"))
	}
	return nil
}

// BuildWorkingSet applies the filters to the roster-restricted ledger and
// returns a fresh working set. Card tokens are resolved to customer ids
// through the index; tokens with no mapping end up in unknownTokens and are
// simply absent from the allow-list.
func BuildWorkingSet(rows []LedgerRow, ix *CardIndex, p FilterParams) (ws *WorkingSet, unknownTokens []string) {
	allowed := make(map[string]bool)
	if len(p.Cards) == 0 {
		// No selection means no restriction.
		for _, id := range ix.KnownIDs() {
			allowed[id] = true
		}
	} else {
		for _, token := range p.Cards {
			id, ok := ix.ResolveToken(token)
			if !ok {
				unknownTokens = append(unknownTokens, token)
				continue
			}
			allowed[id] = true
		}
	}

	monthSet := make(map[MonthKey]bool, len(p.Months))
	for _, m := range p.Months {
		monthSet[m] = true
	}

	ws = &WorkingSet{Allowed: allowed}
	for _, r := range rows {
		if !allowed[r.CustomerID] {
			continue
		}
		if len(monthSet) > 0 && !monthSet[r.Month] {
			continue
		}
		if p.Range != nil && !p.Range.Contains(r.Completion) {
			continue
		}
		ws.Rows = append(ws.Rows, r)
	}
	return ws, unknownTokens
}

// AvailableMonths lists the distinct completion months present in the
// ledger, in chronological order. This is the option set for the month
// multi-select.
func AvailableMonths(rows []LedgerRow) []MonthKey {
	seen := make(map[MonthKey]bool)
	var months []MonthKey
	for _, r := range rows {
		if !seen[r.Month] {
			seen[r.Month] = true
			months = append(months, r.Month)
		}
	}
	sortMonths(months)
	return months
}
