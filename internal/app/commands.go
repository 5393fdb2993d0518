package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/models"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/services"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second
)

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// fetchCmd loads clients and usage under seq.
func fetchCmd(mgr *services.Manager, seq uint64, criteria models.FilterCriteria) tea.Cmd {
	return func() tea.Msg {
		res, err := mgr.Fetch(context.Background(), seq, criteria)
		if err != nil {
			return FetchFailedMsg{Seq: seq, Err: err}
		}
		return UsageLoadedMsg{Result: res}
	}
}

// exportCmd writes records to CSV.
func exportCmd(mgr *services.Manager, records []models.UsageRecord, now time.Time) tea.Cmd {
	return func() tea.Msg {
		path, err := mgr.Export(records, now)
		return ExportDoneMsg{Path: path, Count: len(records), Err: err}
	}
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationSuccess,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationError,
			Message:  message,
			Duration: LongNotificationDuration,
		}
	}
}

// notifyWarningCmd returns a command that adds a warning notification.
func notifyWarningCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationWarning,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationInfo,
			Message:  message,
			Duration: QuickNotificationDuration,
		}
	}
}

// Notify returns a command that shows a toast. Tabs use it to report
// outcomes without reaching into the model.
func Notify(t NotificationType, message string) tea.Cmd {
	switch t {
	case NotificationError:
		return notifyErrorCmd(message)
	case NotificationSuccess:
		return notifySuccessCmd(message)
	default:
		return notifyInfoCmd(message)
	}
}

// ChangeFilters returns a command requesting a refetch with criteria.
func ChangeFilters(criteria models.FilterCriteria) tea.Cmd {
	return func() tea.Msg {
		return FiltersChangedMsg{Criteria: criteria}
	}
}

// RequestExport returns a command requesting a CSV export.
func RequestExport() tea.Cmd {
	return func() tea.Msg {
		return ExportRequestedMsg{}
	}
}
