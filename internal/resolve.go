package internal

import "sort"

// CardIndex resolves between the UI-facing card token and the primary
// customer id, and answers roster membership. Built once per upload.
type CardIndex struct {
	idByToken map[string]string
	tokenByID map[string]string
	rowByID   map[string]CustomerRow
}

// BuildCardIndex builds the lookup from the roster. Duplicate tokens and
// duplicate ids resolve last-write-wins, matching the upload order.
func BuildCardIndex(customers []CustomerRow) *CardIndex {
	ix := &CardIndex{
		idByToken: make(map[string]string),
		tokenByID: make(map[string]string),
		rowByID:   make(map[string]CustomerRow),
	}
	for _, c := range customers {
		if c.CardToken != "" {
			ix.idByToken[c.CardToken] = c.CustomerID
		}
		ix.tokenByID[c.CustomerID] = c.CardToken
		ix.rowByID[c.CustomerID] = c
	}
	return ix
}

// ResolveToken maps a card token to its customer id.
func (ix *CardIndex) ResolveToken(token string) (string, bool) {
	id, ok := ix.idByToken[token]
	return id, ok
}

// TokenFor maps a customer id back to its card token.
func (ix *CardIndex) TokenFor(id string) (string, bool) {
	token, ok := ix.tokenByID[id]
	return token, ok
}

// Customer returns the roster row for a customer id.
func (ix *CardIndex) Customer(id string) (CustomerRow, bool) {
	row, ok := ix.rowByID[id]
	return row, ok
}

// Has reports whether the customer id exists in the roster.
func (ix *CardIndex) Has(id string) bool {
	_, ok := ix.rowByID[id]
	return ok
}

// KnownIDs returns every roster customer id, sorted for stable iteration.
func (ix *CardIndex) KnownIDs() []string {
	ids := make([]string, 0, len(ix.rowByID))
	for id := range ix.rowByID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Tokens returns every known card token, sorted.
func (ix *CardIndex) Tokens() []string {
	tokens := make([]string, 0, len(ix.idByToken))
	for t := range ix.idByToken {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}

// RestrictToRoster keeps only ledger rows whose customer id exists in the
// roster. Unmatched rows are silently dropped, not an error.
func RestrictToRoster(rows []LedgerRow, ix *CardIndex) []LedgerRow {
	var kept []LedgerRow
	for _, r := range rows {
		if ix.Has(r.CustomerID) {
			kept = append(kept, r)
		}
	}
	return kept
}
