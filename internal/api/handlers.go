package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/mgarnier/splitpot/internal/ledger"
	"github.com/mgarnier/splitpot/internal/store"
)

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var ev ledger.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		respondError(w, http.StatusBadRequest, "invalid event payload")
		return
	}

	id, err := a.store.CreateEvent(r.Context(), ev)
	if err != nil {
		a.log.WithError(err).Error("failed to create event")
		respondError(w, http.StatusInternalServerError, "failed to create event")
		return
	}

	if claims := claimsFrom(r); claims != nil {
		a.log.WithFields(logrus.Fields{
			"event_id": id,
			"user_id":  claims.UserID,
		}).Info("event created")
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (a *API) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	ev, ok := a.loadEvent(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, ev)
}

func (a *API) handleAddParticipant(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["event_id"]

	var p ledger.Participant
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "invalid participant payload")
		return
	}

	if err := a.store.AddParticipant(r.Context(), eventID, p); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "event not found")
			return
		}
		a.log.WithError(err).WithField("event_id", eventID).Error("failed to add participant")
		respondError(w, http.StatusInternalServerError, "failed to add participant")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": p.ID})
}

func (a *API) handleRecordTransaction(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["event_id"]

	var tx ledger.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		respondError(w, http.StatusBadRequest, "invalid transaction payload")
		return
	}
	if tx.Amount.IsNegative() {
		respondError(w, http.StatusBadRequest, "amount must not be negative")
		return
	}

	id, err := a.store.RecordTransaction(r.Context(), eventID, tx)
	if err != nil {
		a.log.WithError(err).WithField("event_id", eventID).Error("failed to record transaction")
		respondError(w, http.StatusInternalServerError, "failed to record transaction")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (a *API) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["event_id"]

	txs, err := a.store.ListTransactions(r.Context(), eventID)
	if err != nil {
		a.log.WithError(err).WithField("event_id", eventID).Error("failed to list transactions")
		respondError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	if txs == nil {
		txs = []ledger.Transaction{}
	}
	respondJSON(w, http.StatusOK, txs)
}

type balancesResponse struct {
	Balances    map[string]ledger.Balance `json:"balances"`
	Pot         ledger.PotBalance         `json:"pot"`
	IsBalanced  bool                      `json:"isBalanced"`
	TotalDrift  decimal.Decimal           `json:"totalDrift"`
	Diagnostics []ledger.Diagnostic       `json:"diagnostics,omitempty"`
	Views       []ledger.BalanceView      `json:"views"`
	PotView     ledger.PotView            `json:"potView"`
}

func (a *API) handleBalances(w http.ResponseWriter, r *http.Request) {
	ev, txs, ok := a.loadLedger(w, r)
	if !ok {
		return
	}

	res := ledger.Compute(ev, txs, ledger.DefaultOptions())
	if len(res.Diagnostics) > 0 {
		a.log.WithFields(logrus.Fields{
			"event_id":    ev.ID,
			"diagnostics": len(res.Diagnostics),
		}).Warn("ledger computed with skipped transactions")
	}

	respondJSON(w, http.StatusOK, balancesResponse{
		Balances:    res.Balances,
		Pot:         res.Pot,
		IsBalanced:  res.IsBalanced,
		TotalDrift:  res.TotalDrift,
		Diagnostics: res.Diagnostics,
		Views:       ledger.FormatBalances(ev, res.Balances),
		PotView:     ledger.FormatPot(res.Pot),
	})
}

func (a *API) handleSettlement(w http.ResponseWriter, r *http.Request) {
	mode := ledger.ModeUsePotPriority
	switch q := r.URL.Query().Get("mode"); q {
	case "", string(ledger.ModeUsePotPriority):
	case string(ledger.ModeParticipantsOnly):
		mode = ledger.ModeParticipantsOnly
	default:
		respondError(w, http.StatusBadRequest, "unknown settlement mode")
		return
	}

	ev, txs, ok := a.loadLedger(w, r)
	if !ok {
		return
	}

	_, plan := ledger.Settle(ev, txs, mode, ledger.DefaultOptions())
	if plan.Warning != "" {
		a.log.WithFields(logrus.Fields{
			"event_id": ev.ID,
			"warning":  plan.Warning,
		}).Warn("settlement plan produced with warning")
	}
	if plan.Transfers == nil {
		plan.Transfers = []ledger.Transfer{}
	}
	if plan.PotTransfers == nil {
		plan.PotTransfers = []ledger.Transfer{}
	}
	respondJSON(w, http.StatusOK, plan)
}

func (a *API) loadEvent(w http.ResponseWriter, r *http.Request) (ledger.Event, bool) {
	eventID := mux.Vars(r)["event_id"]

	ev, err := a.store.GetEvent(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "event not found")
			return ledger.Event{}, false
		}
		a.log.WithError(err).WithField("event_id", eventID).Error("failed to load event")
		respondError(w, http.StatusInternalServerError, "failed to load event")
		return ledger.Event{}, false
	}
	return ev, true
}

func (a *API) loadLedger(w http.ResponseWriter, r *http.Request) (ledger.Event, []ledger.Transaction, bool) {
	ev, ok := a.loadEvent(w, r)
	if !ok {
		return ledger.Event{}, nil, false
	}
	txs, err := a.store.ListTransactions(r.Context(), ev.ID)
	if err != nil {
		a.log.WithError(err).WithField("event_id", ev.ID).Error("failed to list transactions")
		respondError(w, http.StatusInternalServerError, "failed to list transactions")
		return ledger.Event{}, nil, false
	}
	return ev, txs, true
}
