package ledger

import "testing"

func TestStatusOf(t *testing.T) {
	tests := []struct {
		solde string
		want  Status
	}{
		{"6.10", StatusOwed},
		{"0.02", StatusOwed},
		{"0.01", StatusSettled},
		{"0", StatusSettled},
		{"-0.01", StatusSettled},
		{"-0.02", StatusOwes},
		{"-6.10", StatusOwes},
	}
	for _, tt := range tests {
		if got := StatusOf(dec(tt.solde)); got != tt.want {
			t.Errorf("StatusOf(%s) = %s, want %s", tt.solde, got, tt.want)
		}
	}
}

func TestFormatSigned(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"6.1", "+6.10"},
		{"-6.1", "-6.10"},
		{"0", "0.00"},
	}
	for _, tt := range tests {
		if got := FormatSigned(dec(tt.in)); got != tt.want {
			t.Errorf("FormatSigned(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatBalances(t *testing.T) {
	ev := pairEvent()
	balances := map[string]Balance{
		"p1": {Solde: dec("6.10")},
		"p2": {Solde: dec("-6.10")},
	}

	views := FormatBalances(ev, balances)
	if len(views) != 2 {
		t.Fatalf("views = %v, want 2 entries", views)
	}
	if views[0].ParticipantID != "p1" || views[0].Status != StatusOwed || views[0].Display != "+6.10" {
		t.Errorf("views[0] = %+v", views[0])
	}
	if views[1].ParticipantID != "p2" || views[1].Status != StatusOwes || views[1].Display != "-6.10" {
		t.Errorf("views[1] = %+v", views[1])
	}

	potView := FormatPot(PotBalance{Solde: dec("0")})
	if potView.Status != StatusSettled || potView.Display != "0.00" {
		t.Errorf("potView = %+v", potView)
	}
}
