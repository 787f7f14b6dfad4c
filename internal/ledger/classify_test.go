package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
)

func testEvent() Event {
	return Event{
		ID:     "ev1",
		Amount: decimal.RequireFromString("100"),
		Participants: []Participant{
			{ID: "p1", Name: "Alice"},
			{ID: "p2", Name: "Bruno"},
			{ID: "p3", Name: "Chloé"},
		},
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestClassify(t *testing.T) {
	ev := testEvent()

	tests := []struct {
		name string
		tx   Transaction
		want string
	}{
		{
			name: "payout from pot sentinel",
			tx:   Transaction{ID: "t1", FromID: PotID, ToID: "p1", Amount: dec("10")},
			want: "PotPayout",
		},
		{
			name: "payout from event id alias",
			tx:   Transaction{ID: "t2", FromID: "ev1", ToID: "p2", Amount: dec("10")},
			want: "PotPayout",
		},
		{
			name: "pot paid expense with beneficiaries",
			tx:   Transaction{ID: "t3", FromID: PotID, Amount: dec("30"), Participants: []string{"p1", "p2"}},
			want: "Expense",
		},
		{
			name: "no origin",
			tx:   Transaction{ID: "t4", ToID: "p1", Amount: dec("10")},
			want: "Rejected",
		},
		{
			name: "contribution to pot via event id",
			tx:   Transaction{ID: "t5", FromID: "p1", ToID: "ev1", Amount: dec("50"), Type: TypePayment},
			want: "Contribution",
		},
		{
			name: "contribution without beneficiaries needs no tag",
			tx:   Transaction{ID: "t6", FromID: "p1", ToID: PotID, Amount: dec("50")},
			want: "Contribution",
		},
		{
			name: "payment tagged to pot with beneficiaries is still a contribution",
			tx:   Transaction{ID: "t7", FromID: "p1", ToID: "ev1", Amount: dec("50"), Source: SourcePayment, Participants: []string{"p1", "p2"}},
			want: "Contribution",
		},
		{
			name: "expense to pot with beneficiaries and no payment tag",
			tx:   Transaction{ID: "t8", FromID: "p1", ToID: "ev1", Amount: dec("20"), Source: SourceScannedTicket, Participants: []string{"p1", "p2"}},
			want: "Expense",
		},
		{
			name: "expense with beneficiaries",
			tx:   Transaction{ID: "t9", FromID: "p1", Amount: dec("20"), Participants: []string{"p2", "p3"}},
			want: "Expense",
		},
		{
			name: "expense payer from payerId over fromId",
			tx:   Transaction{ID: "t10", FromID: "p1", PayerID: "p2", Amount: dec("20"), Participants: []string{"p3"}},
			want: "Expense",
		},
		{
			name: "direct transfer between participants",
			tx:   Transaction{ID: "t11", FromID: "p1", ToID: "p2", Amount: dec("15")},
			want: "DirectTransfer",
		},
		{
			name: "transfer to unknown target",
			tx:   Transaction{ID: "t12", FromID: "p1", ToID: "ghost", Amount: dec("15")},
			want: "Rejected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kindOf(Classify(tt.tx, ev))
			if got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyExpensePayer(t *testing.T) {
	ev := testEvent()

	tx := Transaction{ID: "t1", FromID: "p1", PayerID: "p2", Amount: dec("20"), Participants: []string{"p1", "p2"}}
	e, ok := Classify(tx, ev).(Expense)
	if !ok {
		t.Fatalf("Classify() = %T, want Expense", Classify(tx, ev))
	}
	if e.Payer != "p2" {
		t.Errorf("Payer = %q, want p2", e.Payer)
	}
	if e.PotPaid {
		t.Error("PotPaid = true, want false")
	}

	tx = Transaction{ID: "t2", FromID: "p1", PayerID: PotID, Amount: dec("20"), Participants: []string{"p1", "p2"}}
	e, ok = Classify(tx, ev).(Expense)
	if !ok {
		t.Fatalf("Classify() = %T, want Expense", Classify(tx, ev))
	}
	if !e.PotPaid {
		t.Error("PotPaid = false, want true for pot payer")
	}
}

// Every transaction lands in exactly one category; kindOf mirrors the
// exhaustive switch downstream stages use.
func kindOf(e Entry) string {
	switch e.(type) {
	case Contribution:
		return "Contribution"
	case Expense:
		return "Expense"
	case DirectTransfer:
		return "DirectTransfer"
	case PotPayout:
		return "PotPayout"
	case Rejected:
		return "Rejected"
	default:
		return "unknown"
	}
}

func TestPotIdentity(t *testing.T) {
	pot := PotFor(testEvent())

	tests := []struct {
		id   string
		want bool
	}{
		{PotID, true},
		{"ev1", true},
		{"p1", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := pot.Is(tt.id); got != tt.want {
			t.Errorf("Pot.Is(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
