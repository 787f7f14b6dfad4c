package ledger

import "github.com/shopspring/decimal"

// PotID is the reserved identifier of the event's shared fund. Transactions
// may also reference the pot through the event's own id.
const PotID = "POT"

// Transaction type tags as recorded by the transaction store.
const (
	TypePayment      = "payment"
	TypeContribution = "CONTRIBUTION"
	TypePotPayout    = "POT_PAYOUT"
)

// Transaction source tags. Free-form in the store; only SourcePayment
// influences classification.
const (
	SourcePayment       = "payment"
	SourceScannedTicket = "scanned_ticket"
	SourceManual        = "manual"
)

// epsilon is the tolerance for all balance comparisons: soldes within one
// cent of zero are considered settled.
var epsilon = decimal.RequireFromString("0.01")

// Participant identifies one member of an event. Identity is by ID; Name is
// display-only and may collide.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Event is the shared-expense event the ledger is computed for. The engine
// only reads it; ownership stays with the event store.
type Event struct {
	ID           string          `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	Participants []Participant   `json:"participants"`
}

// Transaction is one recorded money movement. Records are immutable once
// stored; the engine never mutates them.
type Transaction struct {
	ID              string          `json:"id"`
	FromID          string          `json:"fromId,omitempty"`
	ToID            string          `json:"toId,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Type            string          `json:"type,omitempty"`
	Source          string          `json:"source,omitempty"`
	PayerID         string          `json:"payerId,omitempty"`
	Participants    []string        `json:"participants,omitempty"`
	ValidatedBy     []string        `json:"validatedBy,omitempty"`
	ValidationCount int             `json:"validationCount,omitempty"`
	TotalValidators int             `json:"totalValidators,omitempty"`
}

// Balance is one participant's derived position. All fields are recomputed
// from scratch on every call; nothing is persisted or updated incrementally.
type Balance struct {
	Contribution decimal.Decimal `json:"contribution"` // paid into the pot
	Avance       decimal.Decimal `json:"avance"`       // expenses advanced
	PaidOut      decimal.Decimal `json:"paidOut"`      // direct transfers sent
	Received     decimal.Decimal `json:"received"`     // direct transfers received
	RembPot      decimal.Decimal `json:"rembPot"`      // reimbursed by the pot
	Mise         decimal.Decimal `json:"mise"`         // contribution + avance + paidOut - received - rembPot
	Consomme     decimal.Decimal `json:"consomme"`     // accumulated share of expenses
	Solde        decimal.Decimal `json:"solde"`        // mise - consomme
}

// PotBalance is the derived position of the event's shared fund.
type PotBalance struct {
	Contributions decimal.Decimal `json:"contributions"`
	ExpensesPaid  decimal.Decimal `json:"expensesPaid"`
	Payouts       decimal.Decimal `json:"payouts"`
	Solde         decimal.Decimal `json:"solde"`
}

// Diagnostic codes for records the accumulator had to skip.
const (
	DiagUnclassifiable     = "unclassifiable"
	DiagMissingOrigin      = "missing_origin"
	DiagUnknownParticipant = "unknown_participant"
	DiagNonPositiveAmount  = "non_positive_amount"
	DiagEmptyConcernedSet  = "empty_concerned_set"
)

// Diagnostic reports a data-quality issue on a single transaction. Malformed
// records are skipped, never fatal; callers decide whether to surface them.
type Diagnostic struct {
	Code          string `json:"code"`
	TransactionID string `json:"transactionId,omitempty"`
	Message       string `json:"message"`
}

// Options tunes the engine's data-repair policy.
type Options struct {
	// LonePayerExpansion controls the correction for expenses whose
	// concerned set resolves to the payer alone: when enabled the cost is
	// split across all event participants instead of being treated as a
	// 100% self-funded expense. Legacy records frequently lack split
	// information, so this is on in DefaultOptions.
	LonePayerExpansion bool
}

// DefaultOptions returns the recommended engine settings.
func DefaultOptions() Options {
	return Options{LonePayerExpansion: true}
}

// Result is the full output of one ledger computation.
type Result struct {
	Balances    map[string]Balance `json:"balances"`
	Pot         PotBalance         `json:"pot"`
	IsBalanced  bool               `json:"isBalanced"`
	TotalDrift  decimal.Decimal    `json:"totalDrift"`
	Diagnostics []Diagnostic       `json:"diagnostics,omitempty"`
}

// Transfer is a single settlement instruction: From pays To.
type Transfer struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// Mode selects the settlement policy.
type Mode string

const (
	// ModeParticipantsOnly settles debts strictly between participants,
	// ignoring the pot.
	ModeParticipantsOnly Mode = "participants_only"
	// ModeUsePotPriority spends a pot surplus on creditors first, then
	// settles the remainder between participants. This is the default.
	ModeUsePotPriority Mode = "use_pot_priority"
)

// SettlementPlan is the output of the planner. Warning is non-empty when the
// pot is in deficit or the ledger does not sum to zero; neither condition
// blocks the plan.
type SettlementPlan struct {
	Transfers    []Transfer `json:"transfers"`
	PotTransfers []Transfer `json:"potTransfers"`
	Warning      string     `json:"warning,omitempty"`
}
