package ledger

import (
	"time"

	"github.com/harborbank/ledger-service/internal/models"
	"github.com/shopspring/decimal"
)

// incomeRate is the per-minute compounding rate applied to savings balances.
var incomeRate = decimal.RequireFromString("0.22")

type accrualResult struct {
	balance         decimal.Decimal
	lastTransaction time.Time
	statements      []models.Statement
}

// accrue compounds balance once per whole minute elapsed between
// lastTransaction and now, emitting one INCOME statement per minute. The
// watermark advances only by the minutes consumed, so sub-minute remainders
// carry into the next accrual instead of being lost.
//
// The loop is strict per-minute compounding on purpose: one statement per
// elapsed minute is part of the ledger contract, which also means an account
// left untouched for a long time produces a statement per minute of idleness.
func accrue(balance decimal.Decimal, lastTransaction, now time.Time) accrualResult {
	minutes := int64(now.Sub(lastTransaction) / time.Minute)

	res := accrualResult{balance: balance, lastTransaction: lastTransaction}
	for i := int64(0); i < minutes; i++ {
		income := res.balance.Mul(incomeRate)
		res.balance = res.balance.Add(income)
		res.lastTransaction = res.lastTransaction.Add(time.Minute)
		res.statements = append(res.statements, models.Statement{
			Date:   res.lastTransaction,
			Amount: income,
			Kind:   models.Income,
		})
	}
	return res
}
