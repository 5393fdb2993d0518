package app

import (
	"testing"
	"time"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/models"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/services"
)

func TestTickCmd(t *testing.T) {
	if tickCmd(time.Millisecond) == nil {
		t.Error("tickCmd returned nil")
	}
	if defaultTickCmd() == nil {
		t.Error("defaultTickCmd returned nil")
	}
}

func TestNotify(t *testing.T) {
	tests := []struct {
		name string
		in   NotificationType
		want NotificationType
	}{
		{"Success", NotificationSuccess, NotificationSuccess},
		{"Error", NotificationError, NotificationError},
		{"Info", NotificationInfo, NotificationInfo},
		{"WarningFallsBackToInfo", NotificationWarning, NotificationInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Notify(tt.in, "msg")()

			addMsg, ok := msg.(AddNotificationMsg)
			if !ok {
				t.Fatalf("Expected AddNotificationMsg, got %T", msg)
			}
			if addMsg.Type != tt.want {
				t.Errorf("Type = %v, want %v", addMsg.Type, tt.want)
			}
			if addMsg.Message != "msg" {
				t.Errorf("Message = %q, want msg", addMsg.Message)
			}
			if addMsg.Duration <= 0 {
				t.Error("notification should expire")
			}
		})
	}
}

func TestChangeFilters(t *testing.T) {
	criteria := models.FilterCriteria{ClientID: "1"}
	msg := ChangeFilters(criteria)()

	fc, ok := msg.(FiltersChangedMsg)
	if !ok {
		t.Fatalf("Expected FiltersChangedMsg, got %T", msg)
	}
	if fc.Criteria.ClientID != "1" {
		t.Errorf("Criteria = %+v", fc.Criteria)
	}
}

func TestRequestExport(t *testing.T) {
	if _, ok := RequestExport()().(ExportRequestedMsg); !ok {
		t.Error("RequestExport should produce ExportRequestedMsg")
	}
}

func TestWaitForServiceEventCmd(t *testing.T) {
	ch := make(chan services.ServiceEvent, 1)
	ch <- services.DataChangedEvent{Reason: "test"}

	msg := waitForServiceEventCmd(ch)()
	ev, ok := msg.(ServiceEventMsg)
	if !ok {
		t.Fatalf("Expected ServiceEventMsg, got %T", msg)
	}
	if _, ok := ev.Event.(services.DataChangedEvent); !ok {
		t.Errorf("Event = %T, want DataChangedEvent", ev.Event)
	}

	close(ch)
	if msg := waitForServiceEventCmd(ch)(); msg != nil {
		t.Errorf("closed channel should yield nil, got %v", msg)
	}
}
