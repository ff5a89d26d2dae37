package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	feeFree    = decimal.NewFromInt(1)
	initialFee = decimal.RequireFromString("1.02")
	finalFee   = decimal.RequireFromString("1.05")
)

// sameDayFee returns the multiplier for the n-th same-day operation: the
// table drives both credit withdrawals and savings outgoing transfers.
// Counts 0-2 are free, count 3 pays the initial fee, everything after the
// final fee. The thresholds move real money; see the service tests.
func sameDayFee(count int64) decimal.Decimal {
	switch {
	case count <= 2:
		return feeFree
	case count == 3:
		return initialFee
	default:
		return finalFee
	}
}

// dateOf truncates t to its calendar day.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
