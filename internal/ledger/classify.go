package ledger

import "github.com/shopspring/decimal"

// Pot is the resolved identity of an event's shared fund. A transaction may
// point at the pot either via the PotID sentinel or via the event's own id,
// so the alias is resolved once here instead of compared ad hoc downstream.
type Pot struct {
	eventID string
}

// PotFor resolves the pot identity for an event.
func PotFor(ev Event) Pot {
	return Pot{eventID: ev.ID}
}

// Is reports whether id references the pot.
func (p Pot) Is(id string) bool {
	return id != "" && (id == PotID || id == p.eventID)
}

// Entry is the classified form of a transaction. Exactly one concrete type
// is produced per transaction; downstream stages switch over the union
// instead of re-deriving the category from the raw record.
type Entry interface {
	entry()
}

// Contribution is money moved from a participant into the pot.
type Contribution struct {
	From   string
	Amount decimal.Decimal
	Tx     Transaction
}

// Expense is money advanced by a participant, or by the pot, on behalf of a
// concerned subset of participants. Payer is empty when the pot paid.
type Expense struct {
	Payer   string
	PotPaid bool
	Amount  decimal.Decimal
	Tx      Transaction
}

// DirectTransfer is money moved between two participants outside the pot.
type DirectTransfer struct {
	From   string
	To     string
	Amount decimal.Decimal
	Tx     Transaction
}

// PotPayout is money moved from the pot to a participant.
type PotPayout struct {
	To     string
	Amount decimal.Decimal
	Tx     Transaction
}

// Rejected marks a transaction that fits no category. It is a data-quality
// signal, not an error.
type Rejected struct {
	Code   string
	Reason string
	Tx     Transaction
}

func (Contribution) entry()   {}
func (Expense) entry()        {}
func (DirectTransfer) entry() {}
func (PotPayout) entry()      {}
func (Rejected) entry()       {}

// Classify labels a raw transaction. The decision order below is the policy:
// the same "payment" tag is reused for contributions and participant-facing
// payments in recorded data, so the target (pot vs participant) combined with
// the presence of a beneficiary list is the only reliable discriminator.
func Classify(tx Transaction, ev Event) Entry {
	pot := PotFor(ev)
	known := participantSet(ev)

	switch {
	case pot.Is(tx.FromID):
		// Money leaving the pot. With a beneficiary list this is an
		// expense the pot advanced; without one it is a payout.
		if len(tx.Participants) > 0 {
			return Expense{PotPaid: true, Amount: tx.Amount, Tx: tx}
		}
		return PotPayout{To: tx.ToID, Amount: tx.Amount, Tx: tx}

	case tx.FromID == "":
		return Rejected{
			Code:   DiagMissingOrigin,
			Reason: "transaction has no origin",
			Tx:     tx,
		}

	case pot.Is(tx.ToID) && (len(tx.Participants) == 0 || paymentTagged(tx)):
		return Contribution{From: tx.FromID, Amount: tx.Amount, Tx: tx}

	case len(tx.Participants) > 0:
		payer := tx.PayerID
		if payer == "" {
			payer = tx.FromID
		}
		if pot.Is(payer) {
			return Expense{PotPaid: true, Amount: tx.Amount, Tx: tx}
		}
		return Expense{Payer: payer, Amount: tx.Amount, Tx: tx}

	case known[tx.FromID] && known[tx.ToID]:
		return DirectTransfer{From: tx.FromID, To: tx.ToID, Amount: tx.Amount, Tx: tx}

	default:
		return Rejected{
			Code:   DiagUnclassifiable,
			Reason: "transaction fits no category",
			Tx:     tx,
		}
	}
}

func paymentTagged(tx Transaction) bool {
	return tx.Type == TypePayment || tx.Type == TypeContribution || tx.Source == SourcePayment
}

func participantSet(ev Event) map[string]bool {
	known := make(map[string]bool, len(ev.Participants))
	for _, p := range ev.Participants {
		known[p.ID] = true
	}
	return known
}
