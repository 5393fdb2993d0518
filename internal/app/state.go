// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"sync"
	"time"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/models"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/services"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/usage"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"

	maxNotifications = 10
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	case NotificationLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// Snapshot is one fully derived view of a fetch result. It is never
// mutated after construction; a new fetch replaces it wholesale.
//
// Records, Monthly and Daily follow the active filters. Stats, Projection
// and Summaries always cover every record.
type Snapshot struct {
	Seq        uint64
	Criteria   models.FilterCriteria
	Clients    []models.Client
	Records    []models.UsageRecord
	AllRecords []models.UsageRecord
	Stats      models.UsageStats
	Monthly    []models.MonthlyBucket
	Daily      []models.DailyPoint
	Projection models.MonthProjection
	Summaries  []models.ClientSummary
	FetchedAt  time.Time
}

// NewSnapshot derives every dashboard figure from a fetch result.
func NewSnapshot(res services.FetchResult, now time.Time) *Snapshot {
	return &Snapshot{
		Seq:        res.Seq,
		Criteria:   res.Criteria,
		Clients:    res.Clients,
		Records:    res.Records,
		AllRecords: res.AllRecords,
		Stats:      usage.ComputeStats(res.AllRecords, len(res.Clients), usage.CurrentMonth(now)),
		Monthly:    usage.BucketByMonth(res.Records),
		Daily:      usage.DailySeries(res.Records, usage.DailySeriesLimit),
		Projection: usage.ProjectMonth(res.AllRecords, now),
		Summaries:  usage.SummarizeClients(res.Clients, res.AllRecords),
		FetchedAt:  res.FetchedAt,
	}
}

// ClientName returns the roster name for id, or id itself when unknown.
func (s *Snapshot) ClientName(id string) string {
	for _, c := range s.Clients {
		if c.ID == id {
			return c.DisplayName()
		}
	}
	return id
}

// State is the shared application state read by every tab.
type State struct {
	mu sync.RWMutex

	snapshot  *Snapshot
	criteria  models.FilterCriteria
	latestSeq uint64
	loading   bool
	initial   bool
	lastError error

	notifications   []Notification
	notificationSeq int
}

// NewState creates an empty state waiting for its first load.
func NewState() *State {
	return &State{
		notifications: make([]Notification, 0),
		initial:       true,
	}
}

// BeginFetch records seq as the newest dispatched fetch for criteria.
func (s *State) BeginFetch(seq uint64, criteria models.FilterCriteria) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq > s.latestSeq {
		s.latestSeq = seq
	}
	s.criteria = criteria
	s.loading = true
}

// LatestSeq returns the sequence number of the newest dispatched fetch.
func (s *State) LatestSeq() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latestSeq
}

// IsCurrent reports whether seq belongs to the newest dispatched fetch.
func (s *State) IsCurrent(seq uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return seq >= s.latestSeq
}

// SetSnapshot installs snap unless a newer fetch has been dispatched since.
// It reports whether the snapshot was accepted.
func (s *State) SetSnapshot(snap *Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap == nil || snap.Seq < s.latestSeq {
		return false
	}
	s.snapshot = snap
	s.latestSeq = snap.Seq
	s.loading = false
	s.initial = false
	s.lastError = nil
	return true
}

// FailFetch records err for seq if it is the newest fetch, leaving the
// previous snapshot in place. It reports whether the failure was current.
func (s *State) FailFetch(seq uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.latestSeq {
		return false
	}
	s.loading = false
	s.initial = false
	s.lastError = err
	return true
}

// Snapshot returns the current snapshot, or nil before the first load.
func (s *State) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Criteria returns the filter criteria of the newest dispatched fetch.
func (s *State) Criteria() models.FilterCriteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

// IsLoading returns true while a fetch is in flight.
func (s *State) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// IsInitialLoading returns true if initial data is still loading.
func (s *State) IsInitialLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initial
}

// LastError returns the error of the latest failed fetch, if any.
func (s *State) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

// LastUpdated returns when the current snapshot was fetched.
func (s *State) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return time.Time{}
	}
	return s.snapshot.FetchedAt
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}

// ClearAllNotifications removes all notifications.
func (s *State) ClearAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = make([]Notification, 0)
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.RemoveNotification(LoadingNotificationID)
}
