// Package notify is the in-process side channel for user-facing success
// notices ("toasts"). The scheduling engine publishes a human-readable event
// after each successful mutation; the hub fans the event out to subscribers
// and keeps a bounded history the UI can poll. Delivery beyond the process
// boundary is someone else's problem.
package notify

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Severity distinguishes routine confirmations from non-fatal notices.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Event is a single user-facing notice.
type Event struct {
	ID        string    `json:"id"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Subscriber receives every published event. Publish calls subscribers
// synchronously; a slow subscriber slows the publisher.
type Subscriber interface {
	Notify(Event)
}

// SubscriberFunc adapts a function to the Subscriber interface.
type SubscriberFunc func(Event)

// Notify implements Subscriber.
func (f SubscriberFunc) Notify(e Event) { f(e) }

const defaultHistory = 100

// Hub collects and fans out notification events.
type Hub struct {
	mu      sync.RWMutex
	subs    []Subscriber
	history []Event
	max     int
}

// NewHub creates a hub retaining the default number of recent events.
func NewHub() *Hub {
	return &Hub{max: defaultHistory}
}

// Subscribe registers a subscriber for all future events.
func (h *Hub) Subscribe(s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs = append(h.subs, s)
}

// Info publishes a routine confirmation.
func (h *Hub) Info(message string) { h.publish(SeverityInfo, message) }

// Warn publishes a non-fatal notice.
func (h *Hub) Warn(message string) { h.publish(SeverityWarning, message) }

func (h *Hub) publish(sev Severity, message string) {
	evt := Event{
		ID:        uuid.New().String(),
		Severity:  sev,
		Message:   message,
		CreatedAt: time.Now(),
	}

	h.mu.Lock()
	h.history = append(h.history, evt)
	if len(h.history) > h.max {
		h.history = h.history[len(h.history)-h.max:]
	}
	subs := make([]Subscriber, len(h.subs))
	copy(subs, h.subs)
	h.mu.Unlock()

	for _, s := range subs {
		s.Notify(evt)
	}
}

// Recent returns up to limit most recent events, newest first.
func (h *Hub) Recent(limit int) []Event {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := len(h.history)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]Event, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, h.history[i])
	}
	return out
}

// Handler exposes the hub's history over HTTP.
type Handler struct {
	hub *Hub
}

// NewHandler creates a read-only HTTP handler for the hub.
func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// RegisterRoutes registers the notification routes on the given group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/notifications", h.ListNotifications)
}

// ListNotifications handles GET /notifications.
func (h *Handler) ListNotifications(c echo.Context) error {
	limit := 20
	if l := c.QueryParam("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err == nil && parsed > 0 {
			limit = parsed
		}
	}
	return c.JSON(http.StatusOK, h.hub.Recent(limit))
}
