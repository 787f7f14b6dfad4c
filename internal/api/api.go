package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/mgarnier/splitpot/internal/config"
	"github.com/mgarnier/splitpot/internal/ledger"
)

// Store is the persistence the API needs. *store.Store satisfies it; tests
// supply a fake.
type Store interface {
	CreateEvent(ctx context.Context, ev ledger.Event) (string, error)
	GetEvent(ctx context.Context, eventID string) (ledger.Event, error)
	AddParticipant(ctx context.Context, eventID string, p ledger.Participant) error
	RecordTransaction(ctx context.Context, eventID string, tx ledger.Transaction) (string, error)
	ListTransactions(ctx context.Context, eventID string) ([]ledger.Transaction, error)
}

type API struct {
	router    *mux.Router
	store     Store
	config    *config.Config
	log       *logrus.Logger
	jwtSecret []byte
}

func New(cfg *config.Config, st Store, log *logrus.Logger) *API {
	api := &API{
		router:    mux.NewRouter(),
		store:     st,
		config:    cfg,
		log:       log,
		jwtSecret: []byte(cfg.JWTSecret),
	}

	api.setupRoutes()
	return api
}

func (a *API) setupRoutes() {
	// Public endpoints
	a.router.HandleFunc("/api/public/health", a.handleHealth).Methods("GET")
	a.router.HandleFunc("/api/events/{event_id}", a.handleGetEvent).Methods("GET")
	a.router.HandleFunc("/api/events/{event_id}/transactions", a.handleListTransactions).Methods("GET")
	a.router.HandleFunc("/api/events/{event_id}/balances", a.handleBalances).Methods("GET")
	a.router.HandleFunc("/api/events/{event_id}/settlement", a.handleSettlement).Methods("GET")

	// Protected endpoints
	protected := a.router.PathPrefix("/api").Subrouter()
	protected.Use(a.authMiddleware)

	protected.HandleFunc("/events", a.handleCreateEvent).Methods("POST")
	protected.HandleFunc("/events/{event_id}/participants", a.handleAddParticipant).Methods("POST")
	protected.HandleFunc("/events/{event_id}/transactions", a.handleRecordTransaction).Methods("POST")
}

func (a *API) Start() error {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}

	handler := cors.New(corsOptions).Handler(a.router)

	a.log.WithField("bind", a.config.WebBind).Info("API server listening")
	return http.ListenAndServe(a.config.WebBind, handler)
}
