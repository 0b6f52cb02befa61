package domain

import (
	"github.com/shopspring/decimal"
)

// SettlementTolerance is the largest net debt between two people that is
// still treated as settled. It is a fixed policy value, not configuration.
var SettlementTolerance = decimal.RequireFromString("0.01")

// NetBalance is the resultant debt between two people after cancelling their
// mutual pending debts.
type NetBalance struct {
	Debtor   string
	Creditor string
	Amount   decimal.Decimal
}

type pairKey struct {
	lo, hi string
}

func newPairKey(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// ComputeNetBalances reduces the pending entries to at most one net debt per
// unordered pair of people. Paid entries are ignored and entries is never
// modified.
//
// Results follow the order in which each pair first appears among the
// pending entries, not grouped by person: A→B, C→D, B→E yields the pairs
// A/B, C/D, B/E. Debts are not cancelled transitively across more than two
// people.
func ComputeNetBalances(entries []*Entry) []NetBalance {
	gross := make(map[string]map[string]decimal.Decimal)
	// first is the debtor of the first pending entry seen for each pair.
	first := make(map[pairKey]string)
	order := make([]pairKey, 0)

	for _, e := range entries {
		if e == nil || !e.IsPending() {
			continue
		}

		owed, ok := gross[e.Debtor]
		if !ok {
			owed = make(map[string]decimal.Decimal)
			gross[e.Debtor] = owed
		}
		owed[e.Creditor] = owed[e.Creditor].Add(e.Amount)

		key := newPairKey(e.Debtor, e.Creditor)
		if _, seen := first[key]; !seen {
			first[key] = e.Debtor
			order = append(order, key)
		}
	}

	balances := make([]NetBalance, 0, len(order))
	for _, key := range order {
		a := first[key]
		b := key.hi
		if a == key.hi {
			b = key.lo
		}

		net := grossDebt(gross, a, b).Sub(grossDebt(gross, b, a))
		if net.Abs().LessThanOrEqual(SettlementTolerance) {
			continue
		}

		if net.IsPositive() {
			balances = append(balances, NetBalance{Debtor: a, Creditor: b, Amount: net})
		} else {
			balances = append(balances, NetBalance{Debtor: b, Creditor: a, Amount: net.Neg()})
		}
	}

	return balances
}

func grossDebt(gross map[string]map[string]decimal.Decimal, debtor, creditor string) decimal.Decimal {
	owed, ok := gross[debtor]
	if !ok {
		return decimal.Zero
	}
	return owed[creditor]
}
