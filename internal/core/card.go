package core

// CardStatement is a card's totals for one calendar month.
type CardStatement struct {
	Total     float64 `json:"total"`
	Available float64 `json:"available"`
}

// FilterCardMonth returns the card transactions dated inside the literal
// calendar month (YYYY-MM prefix match). An empty month passes everything.
// Grouping is by calendar month of the transaction date, not by the card's
// closing-day billing cycle; closing_day and due_day are display fields.
func FilterCardMonth(txs []CardTransaction, month string) []CardTransaction {
	if month == "" {
		return txs
	}
	out := make([]CardTransaction, 0, len(txs))
	for _, t := range txs {
		if monthKey(t.Date) == month {
			out = append(out, t)
		}
	}
	return out
}

// Statement totals an already month-filtered transaction set against the
// card's limit. Available goes negative when the card is over limit; there
// is no clamping. No transactions means total 0 and the full limit
// available.
func Statement(card Card, txs []CardTransaction) CardStatement {
	var total float64
	for _, t := range txs {
		total += t.Amount
	}
	return CardStatement{
		Total:     total,
		Available: card.LimitAmount - total,
	}
}
