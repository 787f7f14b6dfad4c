package ledger

// resolveConcerned determines which participants share the cost of an
// expense. The payer always takes a share of what they advance; beyond that,
// validation state decides:
//
//  1. fully validated (every other participant confirmed, by explicit
//     membership or by count) — all event participants;
//  2. partially validated — the payer plus whoever validated;
//  3. no validation recorded — the transaction's raw beneficiary list, kept
//     for records predating validation.
//
// Pot-paid expenses follow the same ladder without an implicit payer.
//
// The result is in event participant order and contains only known ids; it
// is empty only when nothing resolves, which the accumulator reports as a
// skipped record.
func resolveConcerned(exp Expense, ev Event, opts Options) []string {
	known := participantSet(ev)

	payer := ""
	if !exp.PotPaid && known[exp.Payer] {
		payer = exp.Payer
	}

	if fullyValidated(exp.Tx, ev, payer) {
		return allParticipantIDs(ev)
	}

	pick := make(map[string]bool)
	if len(exp.Tx.ValidatedBy) > 0 {
		for _, id := range exp.Tx.ValidatedBy {
			if known[id] {
				pick[id] = true
			}
		}
	} else {
		for _, id := range exp.Tx.Participants {
			if known[id] {
				pick[id] = true
			}
		}
	}
	if payer != "" {
		pick[payer] = true
	}

	// A set of just the payer carries no real split information: legacy
	// records were written before beneficiary tracking existed. Treating
	// them as fully self-funded would zero out the expense, so the
	// recommended policy spreads the cost across everyone instead.
	if opts.LonePayerExpansion && payer != "" && len(pick) == 1 && pick[payer] {
		return allParticipantIDs(ev)
	}

	concerned := make([]string, 0, len(pick))
	for _, p := range ev.Participants {
		if pick[p.ID] {
			concerned = append(concerned, p.ID)
		}
	}
	return concerned
}

// fullyValidated reports whether every participant other than the payer has
// confirmed the expense, either by explicit membership in ValidatedBy or by
// the recorded validation count reaching the number of other participants.
func fullyValidated(tx Transaction, ev Event, payer string) bool {
	var others []string
	for _, p := range ev.Participants {
		if p.ID != payer {
			others = append(others, p.ID)
		}
	}
	if len(others) == 0 {
		return false
	}

	if tx.ValidationCount >= len(others) {
		return true
	}
	if tx.TotalValidators > 0 && tx.ValidationCount >= tx.TotalValidators {
		return true
	}

	if len(tx.ValidatedBy) == 0 {
		return false
	}
	validated := make(map[string]bool, len(tx.ValidatedBy))
	for _, id := range tx.ValidatedBy {
		validated[id] = true
	}
	for _, id := range others {
		if !validated[id] {
			return false
		}
	}
	return true
}

func allParticipantIDs(ev Event) []string {
	ids := make([]string, len(ev.Participants))
	for i, p := range ev.Participants {
		ids[i] = p.ID
	}
	return ids
}
