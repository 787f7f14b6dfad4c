package ledger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

type account struct {
	id        string
	remaining decimal.Decimal
}

// Settle runs the full pipeline and plans the settlement in one call.
func Settle(ev Event, txs []Transaction, mode Mode, opts Options) (Result, SettlementPlan) {
	res := Compute(ev, txs, opts)
	return res, Plan(res.Balances, res.Pot, mode)
}

// Plan turns computed balances into concrete settlement transfers.
//
// ModeParticipantsOnly ignores the pot and matches creditors against debtors
// directly. ModeUsePotPriority spends a pot surplus on creditors first, then
// settles whatever imbalance remains between participants; the pot is just
// another account fed through the same greedy matcher.
//
// A pot deficit or a global ledger imbalance is reported in Warning and never
// prevents producing the plan.
func Plan(balances map[string]Balance, pot PotBalance, mode Mode) SettlementPlan {
	var creditors, debtors []account
	for id, b := range balances {
		switch {
		case b.Solde.Cmp(epsilon) > 0:
			creditors = append(creditors, account{id: id, remaining: b.Solde})
		case b.Solde.Cmp(epsilon.Neg()) < 0:
			debtors = append(debtors, account{id: id, remaining: b.Solde.Neg()})
		}
	}
	sortAccounts(creditors)
	sortAccounts(debtors)

	var plan SettlementPlan
	var warnings []string

	if pot.Solde.Cmp(epsilon.Neg()) < 0 {
		warnings = append(warnings, fmt.Sprintf("pot deficit: %s short of covering recorded spending", pot.Solde.Neg().StringFixed(2)))
	}
	if balanced, drift := CheckConsistency(balances, pot); !balanced {
		warnings = append(warnings, fmt.Sprintf("ledger does not sum to zero: drift %s", drift.StringFixed(2)))
	}

	if mode != ModeParticipantsOnly && pot.Solde.Cmp(epsilon) > 0 {
		potTransfers, rest := matchGreedy(creditors, []account{{id: PotID, remaining: pot.Solde}})
		plan.PotTransfers = potTransfers
		// The first remaining creditor may be partially paid, so the
		// descending order must be restored before the next pass.
		creditors = rest
		sortAccounts(creditors)
	}
	plan.Transfers, _ = matchGreedy(creditors, debtors)

	plan.Warning = strings.Join(warnings, "; ")
	return plan
}

// matchGreedy repeatedly matches the largest outstanding creditor against
// the largest outstanding debtor, transferring the smaller of the two
// remainders, until one side is exhausted. Deterministic, and bounded by
// len(creditors)+len(debtors)-1 transfers; not guaranteed minimal for every
// input. Returns the transfers and the creditors still owed money.
func matchGreedy(creditors, debtors []account) ([]Transfer, []account) {
	var transfers []Transfer
	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		c, d := creditors[i], debtors[j]
		amt := decimal.Min(c.remaining, d.remaining)
		transfers = append(transfers, Transfer{From: d.id, To: c.id, Amount: amt})
		c.remaining = c.remaining.Sub(amt)
		d.remaining = d.remaining.Sub(amt)
		creditors[i], debtors[j] = c, d
		if c.remaining.Cmp(epsilon) <= 0 {
			i++
		}
		if d.remaining.Cmp(epsilon) <= 0 {
			j++
		}
	}
	return transfers, creditors[i:]
}

// sortAccounts orders by outstanding amount, largest first, then by id so
// equal amounts settle in a stable order.
func sortAccounts(accs []account) {
	sort.Slice(accs, func(i, j int) bool {
		if c := accs[i].remaining.Cmp(accs[j].remaining); c != 0 {
			return c > 0
		}
		return accs[i].id < accs[j].id
	})
}
