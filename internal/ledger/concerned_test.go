package ledger

import (
	"reflect"
	"testing"
)

func TestResolveConcerned(t *testing.T) {
	ev := testEvent()

	tests := []struct {
		name string
		tx   Transaction
		want []string
	}{
		{
			name: "fully validated by explicit membership",
			tx:   Transaction{FromID: "p1", PayerID: "p1", Participants: []string{"p1"}, ValidatedBy: []string{"p2", "p3"}},
			want: []string{"p1", "p2", "p3"},
		},
		{
			name: "fully validated by count",
			tx:   Transaction{FromID: "p1", PayerID: "p1", ValidationCount: 2, Participants: []string{"p1"}},
			want: []string{"p1", "p2", "p3"},
		},
		{
			name: "fully validated by total validators",
			tx:   Transaction{FromID: "p1", PayerID: "p1", ValidationCount: 1, TotalValidators: 1, Participants: []string{"p1"}},
			want: []string{"p1", "p2", "p3"},
		},
		{
			name: "partially validated keeps payer plus validators",
			tx:   Transaction{FromID: "p1", PayerID: "p1", ValidatedBy: []string{"p2"}, Participants: []string{"p1", "p2", "p3"}},
			want: []string{"p1", "p2"},
		},
		{
			name: "no validation falls back to raw beneficiaries",
			tx:   Transaction{FromID: "p1", PayerID: "p1", Participants: []string{"p2", "p3"}},
			want: []string{"p1", "p2", "p3"},
		},
		{
			name: "unknown ids are dropped from raw beneficiaries",
			tx:   Transaction{FromID: "p1", PayerID: "p1", Participants: []string{"p2", "ghost"}},
			want: []string{"p1", "p2"},
		},
		{
			name: "unknown validator ids are dropped",
			tx:   Transaction{FromID: "p1", PayerID: "p1", Participants: []string{"p1"}, ValidatedBy: []string{"p3", "ghost"}},
			want: []string{"p1", "p3"},
		},
		{
			name: "lone payer expands to all participants",
			tx:   Transaction{FromID: "p1", PayerID: "p1", Participants: []string{"p1"}},
			want: []string{"p1", "p2", "p3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := Classify(tt.tx, ev).(Expense)
			got := resolveConcerned(exp, ev, DefaultOptions())
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("resolveConcerned() = %v, want %v", got, tt.want)
			}
		})
	}
}

// The lone-payer correction changes financial outcomes, so it is an explicit
// option: with LonePayerExpansion off, a payer-only expense stays fully
// self-funded.
func TestResolveConcernedLonePayerOptional(t *testing.T) {
	ev := testEvent()
	tx := Transaction{FromID: "p1", PayerID: "p1", Participants: []string{"p1"}}
	exp := Classify(tx, ev).(Expense)

	got := resolveConcerned(exp, ev, Options{LonePayerExpansion: false})
	want := []string{"p1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("resolveConcerned() = %v, want %v", got, want)
	}
}

func TestResolveConcernedPotPaid(t *testing.T) {
	ev := testEvent()

	tests := []struct {
		name string
		tx   Transaction
		want []string
	}{
		{
			name: "pot expense uses literal beneficiaries",
			tx:   Transaction{FromID: PotID, Participants: []string{"p1", "p3"}},
			want: []string{"p1", "p3"},
		},
		{
			name: "pot expense validated by everyone covers all",
			tx:   Transaction{FromID: PotID, Participants: []string{"p1"}, ValidatedBy: []string{"p1", "p2", "p3"}},
			want: []string{"p1", "p2", "p3"},
		},
		{
			name: "pot expense keeps unknown ids out",
			tx:   Transaction{FromID: PotID, Participants: []string{"p2", "ghost"}},
			want: []string{"p2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := Classify(tt.tx, ev).(Expense)
			if !exp.PotPaid {
				t.Fatal("expected pot-paid expense")
			}
			got := resolveConcerned(exp, ev, DefaultOptions())
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("resolveConcerned() = %v, want %v", got, tt.want)
			}
		})
	}
}
