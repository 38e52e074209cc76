// Package daemon provides the long-running finance monitor service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/finboard/internal/gateway"
	"github.com/theirongolddev/finboard/internal/log"
	"github.com/theirongolddev/finboard/internal/model"
	"github.com/theirongolddev/finboard/internal/pipeline"
)

// Config controls the daemon runtime behavior.
type Config struct {
	Backend      string
	Interval     time.Duration
	Addr         string
	EventsBuffer int
	// Month pins the snapshot to one month. Zero follows the current month.
	Month time.Time
}

// Snapshot is a compact finance state for status/event payloads.
type Snapshot struct {
	At              time.Time       `json:"at"`
	Month           string          `json:"month"`
	Transactions    int             `json:"transactions"`
	Pending         int             `json:"pending"`
	Income          decimal.Decimal `json:"income"`
	Expense         decimal.Decimal `json:"expense"`
	Balance         decimal.Decimal `json:"balance"`
	AccountsTotal   decimal.Decimal `json:"accounts_total"`
	OpenInvoices    decimal.Decimal `json:"open_invoices"`
	CardsAvailable  decimal.Decimal `json:"cards_available"`
	BudgetsExceeded int             `json:"budgets_exceeded"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	Transactions    int             `json:"transactions"`
	Pending         int             `json:"pending"`
	Income          decimal.Decimal `json:"income"`
	Expense         decimal.Decimal `json:"expense"`
	Balance         decimal.Decimal `json:"balance"`
	AccountsTotal   decimal.Decimal `json:"accounts_total"`
	OpenInvoices    decimal.Decimal `json:"open_invoices"`
	BudgetsExceeded int             `json:"budgets_exceeded"`
}

func (d Delta) isZero() bool {
	return d.Transactions == 0 &&
		d.Pending == 0 &&
		d.Income.IsZero() &&
		d.Expense.IsZero() &&
		d.Balance.IsZero() &&
		d.AccountsTotal.IsZero() &&
		d.OpenInvoices.IsZero() &&
		d.BudgetsExceeded == 0
}

// Event types.
const (
	EventSnapshot     = "snapshot"
	EventFinanceDelta = "finance_delta"
)

// Event is emitted whenever the finance snapshot updates.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt        time.Time         `json:"started_at"`
	LastPollAt       time.Time         `json:"last_poll_at"`
	PollIntervalSec  int               `json:"poll_interval_sec"`
	PollCount        int64             `json:"poll_count"`
	Backend          string            `json:"backend"`
	Summary          Snapshot          `json:"summary"`
	LastError        string            `json:"last_error,omitempty"`
	CollectionErrors map[string]string `json:"collection_errors,omitempty"`
	EventCount       int               `json:"event_count"`
	SubscriberCount  int               `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg    Config
	gw     gateway.Gateway
	logger *log.Logger
	now    func() time.Time

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	collErrors  map[string]string
	hasSnapshot bool
	snapshot    Snapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service reading from gw.
func New(cfg Config, gw gateway.Gateway, logger *log.Logger) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 30 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if logger == nil {
		logger = log.Discard()
	}

	return &Service{
		cfg:       cfg,
		gw:        gw,
		logger:    logger.WithComponent(log.ComponentDaemon),
		now:       time.Now,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)
	mux.HandleFunc("GET /v1/collections/{name}", s.handleCollection)
	return log.Middleware(s.logger.WithComponent(log.ComponentHTTP))(mux)
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.logger.InfoContext(ctx, "daemon listening", log.FieldAddr, s.cfg.Addr, log.FieldBackend, s.cfg.Backend)

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce(ctx)
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) anchor() time.Time {
	if !s.cfg.Month.IsZero() {
		return s.cfg.Month
	}
	return s.now()
}

func (s *Service) pollOnce(ctx context.Context) {
	now := s.now()
	ds := pipeline.Load(ctx, s.gw, nil)
	snap := buildSnapshot(ds, s.anchor(), now)

	collErrors := make(map[string]string, len(ds.Errors))
	for name, err := range ds.Errors {
		collErrors[name] = gateway.Info(err).Message
	}
	lastError := ""
	if err := ds.Err(); err != nil {
		lastError = err.Error()
		s.logger.WarnContext(ctx, "poll incomplete",
			log.NewFields().WithOperation(log.OpPoll).WithError(err, log.ErrorTypeDatabase).Args()...)
	}

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.lastPollAt = now
	s.pollCount++
	s.lastError = lastError
	s.collErrors = collErrors

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      EventSnapshot,
			Timestamp: now,
			Snapshot:  snap,
		}
		publish = true
	} else {
		delta := diffSnapshots(prev, snap)
		if !delta.isZero() {
			s.nextEventID++
			ev = Event{
				ID:        s.nextEventID,
				Type:      EventFinanceDelta,
				Timestamp: now,
				Snapshot:  snap,
				Delta:     delta,
			}
			publish = true
		}
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
	}
}

func buildSnapshot(ds *pipeline.Dataset, anchor, now time.Time) Snapshot {
	month := pipeline.InMonth(ds.Transactions, anchor)
	totals := pipeline.TotalsByType(month)
	accts := pipeline.AccountTotals(ds.Accounts)
	cards := pipeline.CardTotals(ds.Cards, now)
	budgets := pipeline.BudgetTotals(ds.Budgets)

	pending := 0
	for _, t := range month {
		if t.Status == model.Pending {
			pending++
		}
	}

	return Snapshot{
		At:              now,
		Month:           anchor.Format("2006-01"),
		Transactions:    len(month),
		Pending:         pending,
		Income:          totals.Income,
		Expense:         totals.Expense,
		Balance:         totals.Balance,
		AccountsTotal:   accts.Total,
		OpenInvoices:    cards.OpenInvoices,
		CardsAvailable:  cards.Available,
		BudgetsExceeded: budgets.Exceeded,
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Transactions:    curr.Transactions - prev.Transactions,
		Pending:         curr.Pending - prev.Pending,
		Income:          curr.Income.Sub(prev.Income),
		Expense:         curr.Expense.Sub(prev.Expense),
		Balance:         curr.Balance.Sub(prev.Balance),
		AccountsTotal:   curr.AccountsTotal.Sub(prev.AccountsTotal),
		OpenInvoices:    curr.OpenInvoices.Sub(prev.OpenInvoices),
		BudgetsExceeded: curr.BudgetsExceeded - prev.BudgetsExceeded,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:        s.startedAt,
		LastPollAt:       s.lastPollAt,
		PollIntervalSec:  int(s.cfg.Interval.Seconds()),
		PollCount:        s.pollCount,
		Backend:          s.cfg.Backend,
		Summary:          s.snapshot,
		LastError:        s.lastError,
		CollectionErrors: s.collErrors,
		EventCount:       len(s.events),
		SubscriberCount:  len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

// handleCollection serves one collection in the {data, error} shape.
// Backend failures still answer 200 with the error populated.
func (s *Service) handleCollection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var res any

	switch name := r.PathValue("name"); name {
	case pipeline.CollTransactions:
		data, err := s.gw.ListTransactions(ctx)
		res = gateway.NewResult(data, err)
	case pipeline.CollBudgets:
		data, err := s.gw.ListBudgets(ctx)
		res = gateway.NewResult(data, err)
	case pipeline.CollAccounts:
		data, err := s.gw.ListAccounts(ctx)
		res = gateway.NewResult(data, err)
	case pipeline.CollCards:
		data, err := s.gw.ListCards(ctx)
		res = gateway.NewResult(data, err)
	case pipeline.CollCategories:
		kind, err := model.ParseCategoryKind(r.URL.Query().Get("kind"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, gateway.NewResult([]model.Category{}, err))
			return
		}
		data, err := s.gw.ListCategories(ctx, kind)
		res = gateway.NewResult(data, err)
	default:
		writeJSON(w, http.StatusNotFound, gateway.NewResult[any](nil, fmt.Errorf("unknown collection %q", name)))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      EventSnapshot,
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
