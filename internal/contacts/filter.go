package contacts

import "strings"

// Filter reproduces the debtor list search semantics: a free-text query is a
// case-insensitive substring match on name, phone or email, and a status
// filter is an exact match. Empty parameters match everything.
type Filter struct {
	Query  string
	Status PaymentStatus
}

func (f Filter) Matches(c Contact) bool {
	if f.Status != "" && c.PaymentStatus != f.Status {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.PhoneNumber), q) ||
		strings.Contains(strings.ToLower(c.Email), q)
}

// Apply filters in place-order, preserving the input ordering.
func (f Filter) Apply(in []Contact) []Contact {
	out := make([]Contact, 0, len(in))
	for _, c := range in {
		if f.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}
