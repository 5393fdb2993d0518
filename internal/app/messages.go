package app

import (
	"time"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/models"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/services"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// UsageLoadedMsg carries a completed fetch. It may be stale by the time it
// arrives; the model compares its sequence number before applying it.
type UsageLoadedMsg struct {
	Result services.FetchResult
}

// FetchFailedMsg reports a failed fetch.
type FetchFailedMsg struct {
	Seq uint64
	Err error
}

// SnapshotUpdatedMsg is delivered to every tab after a new snapshot is
// installed in the shared state.
type SnapshotUpdatedMsg struct {
	Snapshot *Snapshot
}

// FiltersChangedMsg requests a refetch with new filter criteria.
type FiltersChangedMsg struct {
	Criteria models.FilterCriteria
}

// RefreshMsg requests a refetch with the current criteria.
type RefreshMsg struct{}

// ExportRequestedMsg asks for the currently displayed records to be
// written to CSV.
type ExportRequestedMsg struct{}

// ExportDoneMsg contains the result of an export.
type ExportDoneMsg struct {
	Path  string
	Count int
	Err   error
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}
