// Package daemon serves one in-memory ledger over HTTP with an SSE event
// stream. The service is the ledger's only concurrent caller, so every
// ledger access goes through its mutex.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/allowance"
	"github.com/theirongolddev/tally/internal/clock"
	"github.com/theirongolddev/tally/internal/ledger"
	"github.com/theirongolddev/tally/internal/log"
	"github.com/theirongolddev/tally/internal/model"
)

// Event types.
const (
	EventSnapshot    = "snapshot"
	EventEntryAdded  = "entry_added"
	EventDayRollover = "day_rollover"
)

// Config controls the daemon runtime behavior.
type Config struct {
	Addr         string
	Mode         string
	Policy       allowance.Policy
	EventsBuffer int
	// Interval is how often the service checks for a calendar day change.
	Interval time.Duration
	Logger   *log.Logger
}

// EntryView is the JSON form of an entry.
type EntryView struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
	Note   string          `json:"note,omitempty"`
}

// ReportView is the JSON form of a remaining-allowance report.
type ReportView struct {
	Status  allowance.Status `json:"status"`
	Value   *decimal.Decimal `json:"value,omitempty"`
	Unit    string           `json:"unit"`
	Message string           `json:"message"`
}

// Snapshot is the ledger state carried by status and event payloads.
type Snapshot struct {
	At        time.Time       `json:"at"`
	Date      string          `json:"date"`
	Limit     decimal.Decimal `json:"limit"`
	Today     decimal.Decimal `json:"today"`
	Week      decimal.Decimal `json:"week"`
	Entries   int             `json:"entries"`
	Remaining *ReportView     `json:"remaining,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// Event is emitted whenever the ledger changes or the day rolls over.
type Event struct {
	ID        int64      `json:"id"`
	Type      string     `json:"type"`
	Timestamp time.Time  `json:"timestamp"`
	Snapshot  Snapshot   `json:"snapshot"`
	Entry     *EntryView `json:"entry,omitempty"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	Mode            string    `json:"mode"`
	Unit            string    `json:"unit,omitempty"`
	Summary         Snapshot  `json:"summary"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// EntryRequest is the body of POST /v1/entries. Amount is a decimal
// string; Date is dd.mm.yyyy and defaults to today.
type EntryRequest struct {
	Amount string `json:"amount"`
	Note   string `json:"note"`
	Date   string `json:"date"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg Config
	log *log.Logger

	mu          sync.RWMutex
	ledger      *ledger.Ledger
	startedAt   time.Time
	currentDay  time.Time
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a daemon service over l.
func New(l *ledger.Ledger, cfg Config) *Service {
	if cfg.Interval < time.Second {
		cfg.Interval = time.Minute
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8788"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Discard()
	}

	return &Service{
		cfg:        cfg,
		log:        logger.WithComponent(log.ComponentDaemon),
		ledger:     l,
		startedAt:  l.Now(),
		currentDay: clock.Today(l.Clock()),
		subs:       make(map[int]chan Event),
	}
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/status", s.handleStatus)
	mux.HandleFunc("GET /v1/entries", s.handleListEntries)
	mux.HandleFunc("POST /v1/entries", s.handleAddEntry)
	mux.HandleFunc("GET /v1/remaining", s.handleRemaining)
	mux.HandleFunc("GET /v1/events", s.handleEvents)
	mux.HandleFunc("GET /v1/stream", s.handleStream)
	return s.logRequests(mux)
}

// Run serves HTTP until ctx is canceled, checking for day rollover on
// every tick.
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

	s.log.Info("daemon started", log.FieldAddr, s.cfg.Addr, log.FieldMode, s.cfg.Mode)
	s.publish(EventSnapshot, nil)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("daemon stopping")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.checkRollover()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

// AddEntry validates req, appends the entry and publishes it.
func (s *Service) AddEntry(req EntryRequest) (EntryView, error) {
	amount, err := model.ParseAmount(req.Amount)
	if err != nil {
		return EntryView{}, err
	}

	s.mu.Lock()
	e, err := model.NewEntry(amount, req.Note, req.Date, s.ledger.Clock())
	if err != nil {
		s.mu.Unlock()
		return EntryView{}, err
	}
	s.ledger.Append(e)
	s.mu.Unlock()

	view := entryView(e)
	s.log.Debug("entry added", log.FieldEntryID, view.ID, log.FieldAmount, view.Amount.String(), log.FieldDate, view.Date)
	s.publish(EventEntryAdded, &view)
	return view, nil
}

// ErrUnitNeedsCash is returned when a report unit is requested from a
// daemon that is not tracking cash.
var ErrUnitNeedsCash = errors.New("unit selection requires cash mode")

// Remaining computes the report for unit; an empty unit uses the
// configured one.
func (s *Service) Remaining(unit string) (allowance.Report, error) {
	policy := s.cfg.Policy
	if unit != "" {
		if !policy.Currency {
			return allowance.Report{}, fmt.Errorf("unit %q: %w", unit, ErrUnitNeedsCash)
		}
		policy = policy.WithUnit(unit)
	}

	s.mu.RLock()
	limit, today := s.ledger.Limit(), s.ledger.TodayTotal()
	s.mu.RUnlock()

	return policy.Report(limit, today)
}

func (s *Service) checkRollover() {
	s.mu.Lock()
	today := clock.Today(s.ledger.Clock())
	changed := !today.Equal(s.currentDay)
	s.currentDay = today
	s.mu.Unlock()

	if changed {
		s.log.Info("day rollover", log.FieldDate, model.FormatDate(today))
		s.publish(EventDayRollover, nil)
	}
}

// snapshot must be called with s.mu held.
func (s *Service) snapshot() Snapshot {
	now := s.ledger.Now()
	snap := Snapshot{
		At:      now,
		Date:    model.FormatDate(now),
		Limit:   s.ledger.Limit(),
		Today:   s.ledger.TodayTotal(),
		Week:    s.ledger.WeekTotal(),
		Entries: s.ledger.Len(),
	}

	r, err := s.cfg.Policy.Report(snap.Limit, snap.Today)
	if err != nil {
		snap.Error = err.Error()
	} else {
		view := reportView(r)
		snap.Remaining = &view
	}
	return snap
}

func (s *Service) publish(typ string, entry *EntryView) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextEventID++
	s.appendEvent(Event{
		ID:        s.nextEventID,
		Type:      typ,
		Timestamp: s.ledger.Now(),
		Snapshot:  s.snapshot(),
		Entry:     entry,
	})
}

// appendEvent must be called with s.mu held.
func (s *Service) appendEvent(ev Event) {
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
}

func (s *Service) status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		StartedAt:       s.startedAt,
		Mode:            s.cfg.Mode,
		Summary:         s.snapshot(),
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
	if s.cfg.Policy.Currency {
		st.Unit = s.cfg.Policy.Unit
	}
	return st
}

func entryView(e model.Entry) EntryView {
	return EntryView{
		ID:     e.ID().String(),
		Amount: e.Amount(),
		Date:   model.FormatDate(e.OccurredOn()),
		Note:   e.Note(),
	}
}

func reportView(r allowance.Report) ReportView {
	view := ReportView{
		Status:  r.Status,
		Unit:    r.Unit,
		Message: r.Message(),
	}
	if r.HasValue {
		v := r.Value
		view.Value = &v
	}
	return view
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
