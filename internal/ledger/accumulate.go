package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Accumulate folds a transaction list into per-participant balances and the
// pot balance. Malformed records (unknown participant references,
// non-positive amounts, expenses nobody is concerned by) are skipped with a
// diagnostic; they never abort the rest of the ledger.
func Accumulate(txs []Transaction, ev Event, opts Options) (map[string]Balance, PotBalance, []Diagnostic) {
	known := participantSet(ev)
	balances := make(map[string]Balance, len(ev.Participants))
	for _, p := range ev.Participants {
		balances[p.ID] = Balance{}
	}

	var pot PotBalance
	var diags []Diagnostic

	skip := func(code, txID, format string, args ...any) {
		diags = append(diags, Diagnostic{
			Code:          code,
			TransactionID: txID,
			Message:       fmt.Sprintf(format, args...),
		})
	}

	for _, tx := range txs {
		if !tx.Amount.IsPositive() {
			skip(DiagNonPositiveAmount, tx.ID, "amount %s is not positive", tx.Amount)
			continue
		}

		switch e := Classify(tx, ev).(type) {
		case Contribution:
			if !known[e.From] {
				skip(DiagUnknownParticipant, tx.ID, "contributor %q is not a participant", e.From)
				continue
			}
			b := balances[e.From]
			b.Contribution = b.Contribution.Add(e.Amount)
			balances[e.From] = b
			pot.Contributions = pot.Contributions.Add(e.Amount)

		case Expense:
			if !e.PotPaid && e.Payer != "" && !known[e.Payer] {
				skip(DiagUnknownParticipant, tx.ID, "payer %q is not a participant", e.Payer)
				continue
			}
			concerned := resolveConcerned(e, ev, opts)
			if len(concerned) == 0 {
				skip(DiagEmptyConcernedSet, tx.ID, "expense concerns no participant")
				continue
			}
			share := e.Amount.Div(decimal.NewFromInt(int64(len(concerned))))
			for _, id := range concerned {
				b := balances[id]
				b.Consomme = b.Consomme.Add(share)
				balances[id] = b
			}
			switch {
			case e.PotPaid:
				pot.ExpensesPaid = pot.ExpensesPaid.Add(e.Amount)
			case e.Payer != "":
				// The payer advanced the whole amount; their own
				// share comes back through Consomme above.
				b := balances[e.Payer]
				b.Avance = b.Avance.Add(e.Amount)
				balances[e.Payer] = b
			}
			// No identifiable payer means the expense was already
			// equitably pre-split; only consumption is recorded.

		case DirectTransfer:
			if !known[e.From] || !known[e.To] {
				skip(DiagUnknownParticipant, tx.ID, "transfer %q -> %q references unknown participant", e.From, e.To)
				continue
			}
			from, to := balances[e.From], balances[e.To]
			from.PaidOut = from.PaidOut.Add(e.Amount)
			to.Received = to.Received.Add(e.Amount)
			balances[e.From] = from
			balances[e.To] = to

		case PotPayout:
			if !known[e.To] {
				skip(DiagUnknownParticipant, tx.ID, "payout target %q is not a participant", e.To)
				continue
			}
			b := balances[e.To]
			b.RembPot = b.RembPot.Add(e.Amount)
			balances[e.To] = b
			pot.Payouts = pot.Payouts.Add(e.Amount)

		case Rejected:
			skip(e.Code, tx.ID, "%s", e.Reason)
		}
	}

	for id, b := range balances {
		b.Mise = b.Contribution.Add(b.Avance).Add(b.PaidOut).Sub(b.Received).Sub(b.RembPot)
		b.Solde = b.Mise.Sub(b.Consomme)
		balances[id] = b
	}
	pot.Solde = pot.Contributions.Sub(pot.ExpensesPaid).Sub(pot.Payouts)

	return balances, pot, diags
}

// CheckConsistency verifies the closed-ledger invariant: the soldes of all
// participants plus the pot must sum to zero. A non-zero drift is evidence
// of malformed input, reported but never fatal.
func CheckConsistency(balances map[string]Balance, pot PotBalance) (bool, decimal.Decimal) {
	drift := pot.Solde
	for _, b := range balances {
		drift = drift.Add(b.Solde)
	}
	return drift.Abs().Cmp(epsilon) <= 0, drift
}

// Compute runs the full pipeline on an immutable snapshot of the event's
// transactions: classification, concerned-set resolution, accumulation and
// the consistency check. It is pure and safe for concurrent callers.
func Compute(ev Event, txs []Transaction, opts Options) Result {
	balances, pot, diags := Accumulate(txs, ev, opts)
	balanced, drift := CheckConsistency(balances, pot)
	return Result{
		Balances:    balances,
		Pot:         pot,
		IsBalanced:  balanced,
		TotalDrift:  drift,
		Diagnostics: diags,
	}
}
