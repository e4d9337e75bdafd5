package domain

import "strings"

// CurrencyPair is an ordered (From, To) pair of ISO-4217-like codes.
// Codes are case-sensitive; uppercase is canonical. From == To is legal.
type CurrencyPair struct {
	From string
	To   string
}

func NewPair(from, to string) CurrencyPair { return CurrencyPair{From: from, To: to} }

// Key returns the "FROM-TO" form used by the fallback table and caches.
func (p CurrencyPair) Key() string { return p.From + "-" + p.To }

func (p CurrencyPair) String() string { return p.Key() }

// ParsePair splits a "FROM-TO" key. Both sides must be non-empty.
func ParsePair(key string) (CurrencyPair, bool) {
	from, to, ok := strings.Cut(strings.TrimSpace(key), "-")
	if !ok || from == "" || to == "" {
		return CurrencyPair{}, false
	}
	return CurrencyPair{From: from, To: to}, true
}
