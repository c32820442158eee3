package core

// Period is an optional inclusive date range. Bounds are zero-padded
// YYYY-MM-DD strings compared lexicographically; an empty bound is open.
// Strings are treated as opaque, so a malformed date simply compares as a
// string. All range filtering in the system goes through this predicate or
// the equivalent `date >= ? AND date <= ?` SQL so the behavior never
// diverges between backends.
type Period struct {
	Start string
	End   string
}

// IsZero reports whether the period has no bounds at all.
func (p Period) IsZero() bool {
	return p.Start == "" && p.End == ""
}

// Contains reports whether date falls inside the period.
func (p Period) Contains(date string) bool {
	if p.Start != "" && date < p.Start {
		return false
	}
	if p.End != "" && date > p.End {
		return false
	}
	return true
}

// Filter returns the transactions whose date falls inside the period,
// preserving input order.
func (p Period) Filter(txs []Transaction) []Transaction {
	if p.IsZero() {
		return txs
	}
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if p.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out
}
