package notify

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHub_FanOut(t *testing.T) {
	hub := NewHub()

	var got []Event
	hub.Subscribe(SubscriberFunc(func(e Event) {
		got = append(got, e)
	}))

	hub.Info("created")
	hub.Warn("vanished")

	if len(got) != 2 {
		t.Fatalf("received %d events, want 2", len(got))
	}
	if got[0].Severity != SeverityInfo || got[0].Message != "created" {
		t.Errorf("first event = %+v", got[0])
	}
	if got[1].Severity != SeverityWarning || got[1].Message != "vanished" {
		t.Errorf("second event = %+v", got[1])
	}
	if got[0].ID == got[1].ID {
		t.Error("events must carry distinct IDs")
	}
}

func TestHub_RecentNewestFirst(t *testing.T) {
	hub := NewHub()
	for i := 0; i < 5; i++ {
		hub.Info(fmt.Sprintf("event %d", i))
	}

	recent := hub.Recent(3)
	if len(recent) != 3 {
		t.Fatalf("len(Recent(3)) = %d, want 3", len(recent))
	}
	if recent[0].Message != "event 4" || recent[2].Message != "event 2" {
		t.Errorf("recent = [%s, %s, %s], want newest first", recent[0].Message, recent[1].Message, recent[2].Message)
	}
}

func TestHub_HistoryBounded(t *testing.T) {
	hub := NewHub()
	for i := 0; i < defaultHistory+50; i++ {
		hub.Info(fmt.Sprintf("event %d", i))
	}

	all := hub.Recent(0)
	if len(all) != defaultHistory {
		t.Errorf("history holds %d events, want %d", len(all), defaultHistory)
	}
	if all[0].Message != fmt.Sprintf("event %d", defaultHistory+49) {
		t.Errorf("newest retained = %q", all[0].Message)
	}
}

func TestHandler_ListNotifications(t *testing.T) {
	hub := NewHub()
	hub.Info("first")
	hub.Info("second")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications?limit=1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHandler(hub)
	if err := h.ListNotifications(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var events []Event
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(events) != 1 || events[0].Message != "second" {
		t.Errorf("events = %v, want just the newest", events)
	}
}
