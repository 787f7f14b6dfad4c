package ledger

import "github.com/shopspring/decimal"

// Status is the three-state display label for a signed solde.
type Status string

const (
	StatusOwed    Status = "doit_recevoir"
	StatusOwes    Status = "doit_verser"
	StatusSettled Status = "equilibre"
)

// StatusOf maps a solde to its display status. Soldes within one cent of
// zero count as settled.
func StatusOf(solde decimal.Decimal) Status {
	switch {
	case solde.Cmp(epsilon) > 0:
		return StatusOwed
	case solde.Cmp(epsilon.Neg()) < 0:
		return StatusOwes
	default:
		return StatusSettled
	}
}

// FormatSigned renders an amount with an explicit sign and two decimals.
func FormatSigned(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.StringFixed(2)
	}
	return d.StringFixed(2)
}

// BalanceView is a display-ready participant balance.
type BalanceView struct {
	ParticipantID string          `json:"participantId"`
	Name          string          `json:"name"`
	Solde         decimal.Decimal `json:"solde"`
	Display       string          `json:"display"`
	Status        Status          `json:"status"`
}

// PotView is a display-ready pot balance.
type PotView struct {
	Solde   decimal.Decimal `json:"solde"`
	Display string          `json:"display"`
	Status  Status          `json:"status"`
}

// FormatBalances renders balances in event participant order.
func FormatBalances(ev Event, balances map[string]Balance) []BalanceView {
	views := make([]BalanceView, 0, len(ev.Participants))
	for _, p := range ev.Participants {
		b := balances[p.ID]
		views = append(views, BalanceView{
			ParticipantID: p.ID,
			Name:          p.Name,
			Solde:         b.Solde,
			Display:       FormatSigned(b.Solde),
			Status:        StatusOf(b.Solde),
		})
	}
	return views
}

// FormatPot renders the pot balance.
func FormatPot(pot PotBalance) PotView {
	return PotView{
		Solde:   pot.Solde,
		Display: FormatSigned(pot.Solde),
		Status:  StatusOf(pot.Solde),
	}
}
