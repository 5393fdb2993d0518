// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
	"golang.org/x/sync/errgroup"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/config"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/db"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/export"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/logger"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/models"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/services/demo"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/services/supabase"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/usage"
)

type (
	// DataChangedEvent is emitted when the underlying data may have changed
	// and the UI should refetch.
	DataChangedEvent struct {
		Reason string
	}

	// ErrorEvent is emitted when an error occurs in a background service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (DataChangedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()       {}

// FetchResult is one completed load of clients and usage records.
// Records honours Criteria; AllRecords is the unfiltered set that
// dashboard totals are computed from.
type FetchResult struct {
	Seq        uint64
	Criteria   models.FilterCriteria
	Clients    []models.Client
	Records    []models.UsageRecord
	AllRecords []models.UsageRecord
	FetchedAt  time.Time
}

// notifier is swapped out in tests.
var notifier = beeep.Notify

// Manager orchestrates the data source, background refresh and event routing.
type Manager struct {
	mu          sync.RWMutex
	cfg         *config.Config
	source      Source
	database    *db.DB
	watcher     *Watcher
	seq         atomic.Uint64
	stopChan    chan struct{}
	stopOnce    sync.Once
	subscribers []chan ServiceEvent
	notified    map[string]bool
	now         func() time.Time
}

// NewManager creates a manager for the source selected in cfg.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		cfg:      cfg,
		stopChan: make(chan struct{}),
		notified: make(map[string]bool),
		now:      time.Now,
	}

	switch cfg.Source {
	case config.SourceDemo:
		m.source = demo.NewSource()

	case config.SourceSupabase:
		m.source = supabase.New(cfg.SupabaseURL, cfg.SupabaseAnonKey)

	case config.SourcePostgres:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
		defer cancel()
		database, err := db.OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		m.database = database
		m.source = database

	case config.SourceSQLite:
		database, err := db.New(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		m.database = database
		m.source = database

		w, err := NewWatcher(cfg.DatabasePath, m.onDatabaseChange)
		if err != nil {
			// The dashboard still works without live reload.
			logger.Warn("file watcher unavailable", logger.KeyPath, cfg.DatabasePath, logger.KeyError, err)
		} else {
			m.watcher = w
		}

	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.Source)
	}

	if cfg.RefreshInterval > 0 {
		go m.pollLoop(cfg.RefreshInterval)
	}

	logger.Info("data source ready", logger.KeySource, m.source.Name())
	return m, nil
}

// newManagerWithSource builds a manager around an existing source, without
// background goroutines.
func newManagerWithSource(cfg *config.Config, src Source) *Manager {
	return &Manager{
		cfg:      cfg,
		source:   src,
		stopChan: make(chan struct{}),
		notified: make(map[string]bool),
		now:      time.Now,
	}
}

// SourceName returns the name of the active data source.
func (m *Manager) SourceName() string {
	if m.source == nil {
		return ""
	}
	return m.source.Name()
}

// IsDemo reports whether the demo dataset is being served.
func (m *Manager) IsDemo() bool {
	return m.cfg != nil && m.cfg.IsDemo()
}

// NextSeq reserves the sequence number for a new fetch. Callers compare it
// against the latest dispatched number to drop stale responses.
func (m *Manager) NextSeq() uint64 {
	return m.seq.Add(1)
}

// LatestSeq returns the most recently reserved sequence number.
func (m *Manager) LatestSeq() uint64 {
	return m.seq.Load()
}

// Refresh reserves a sequence number and loads clients and usage records.
func (m *Manager) Refresh(ctx context.Context, criteria models.FilterCriteria) (FetchResult, error) {
	return m.Fetch(ctx, m.NextSeq(), criteria)
}

// Fetch loads clients, the full usage set and, when criteria is not
// empty, the filtered usage set concurrently under the given sequence
// number.
func (m *Manager) Fetch(ctx context.Context, seq uint64, criteria models.FilterCriteria) (FetchResult, error) {
	if m.source == nil {
		return FetchResult{Seq: seq}, &FetchError{Op: "load data", Source: "none", Err: errors.New("no data source configured")}
	}

	if m.cfg != nil && m.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.FetchTimeout)
		defer cancel()
	}

	start := time.Now()
	result := FetchResult{Seq: seq, Criteria: criteria}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		clients, err := m.source.ListClients(gctx)
		if err != nil {
			return &FetchError{Op: "list clients", Source: m.source.Name(), Err: err}
		}
		result.Clients = clients
		return nil
	})
	g.Go(func() error {
		records, err := m.source.ListUsage(gctx, models.FilterCriteria{})
		if err != nil {
			return &FetchError{Op: "list usage", Source: m.source.Name(), Err: err}
		}
		result.AllRecords = records
		return nil
	})
	if !criteria.IsEmpty() {
		g.Go(func() error {
			records, err := m.source.ListUsage(gctx, criteria)
			if err != nil {
				return &FetchError{Op: "filter usage", Source: m.source.Name(), Err: err}
			}
			result.Records = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("fetch failed", logger.KeySeq, seq, logger.KeySource, m.source.Name(), logger.KeyError, err)
		return FetchResult{Seq: seq, Criteria: criteria}, err
	}
	if criteria.IsEmpty() {
		result.Records = result.AllRecords
	}

	result.FetchedAt = m.now()
	logger.Debug("fetch complete",
		logger.KeySeq, seq,
		logger.KeySource, m.source.Name(),
		logger.KeyClients, len(result.Clients),
		logger.KeyRecords, len(result.Records),
		logger.KeyTotalRecords, len(result.AllRecords),
		logger.KeyDuration, time.Since(start),
	)

	m.checkNotifications(result.AllRecords)
	return result, nil
}

// checkNotifications raises a desktop notification for high-usage records
// in the current month that have not been reported before.
func (m *Manager) checkNotifications(records []models.UsageRecord) {
	month := usage.CurrentMonth(m.now())

	m.mu.Lock()
	var fresh []models.UsageRecord
	for _, r := range usage.HighUsage(records) {
		if len(r.Date) < len(month) || r.Date[:len(month)] != month || m.notified[r.ID] {
			continue
		}
		m.notified[r.ID] = true
		fresh = append(fresh, r)
	}
	m.mu.Unlock()

	if len(fresh) == 0 || m.cfg == nil || !m.cfg.Notifications {
		return
	}

	title := "High usage: " + fresh[0].DisplayClient()
	body := fmt.Sprintf("%s GB on %s", models.FormatGB(fresh[0].TotalUsage), fresh[0].Date)
	if len(fresh) > 1 {
		title = fmt.Sprintf("High usage: %d new records", len(fresh))
		body = fmt.Sprintf("Records above %s GB this month", models.FormatGB(models.MediumUsageCeilingGB))
	}
	if err := notifier(title, body, ""); err != nil {
		logger.Debug("notification failed", logger.KeyError, err)
	}
}

// Export writes records as CSV into the configured export directory and
// returns the file path.
func (m *Manager) Export(records []models.UsageRecord, now time.Time) (string, error) {
	dir := "."
	if m.cfg != nil && m.cfg.ExportDir != "" {
		dir = m.cfg.ExportDir
	}

	path, err := export.WriteFile(dir, records, now, m.IsDemo())
	if err != nil {
		return "", err
	}
	logger.Info("exported usage", logger.KeyPath, path, logger.KeyRecords, len(records))

	if m.cfg != nil && m.cfg.Notifications {
		if err := notifier("Export complete", path, ""); err != nil {
			logger.Debug("notification failed", logger.KeyError, err)
		}
	}
	return path, nil
}

// SeedDemo loads the demo dataset into the local database.
func (m *Manager) SeedDemo(ctx context.Context) (int, error) {
	if m.database == nil {
		return 0, errors.New("seeding requires a database source")
	}
	if err := m.database.ImportDataset(ctx, demo.Clients(), demo.Records()); err != nil {
		return 0, err
	}
	return m.database.CountUsage(ctx)
}

// Database returns the database backing the source, or nil for remote and
// demo sources.
func (m *Manager) Database() *db.DB {
	return m.database
}

func (m *Manager) onDatabaseChange() {
	m.broadcast(DataChangedEvent{Reason: "database file changed"})
}

// pollLoop asks subscribers to refetch on every tick.
func (m *Manager) pollLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.broadcast(DataChangedEvent{Reason: "scheduled refresh"})
		case <-m.stopChan:
			return
		}
	}
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, WaitForEvent(ch)
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return event
	}
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Close stops background work and closes the data source.
func (m *Manager) Close() error {
	m.stopOnce.Do(func() {
		if m.stopChan != nil {
			close(m.stopChan)
		}
	})

	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	var errs []error
	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if m.database != nil {
		if err := m.database.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
