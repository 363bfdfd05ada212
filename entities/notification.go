package entities

import "time"

// NotificationKind identifies which rule produced a notification.
type NotificationKind string

const (
	KindReminder NotificationKind = "reminder"
	KindLowStock NotificationKind = "low_stock"
	KindExpiry   NotificationKind = "expiry"
)

// Severity mirrors how the notification is rendered: a plain reminder or an
// urgent alert.
type Severity string

const (
	SeverityReminder Severity = "reminder"
	SeverityUrgent   Severity = "urgent"
)

// AlertTitle is the title of every stock and expiry alert.
const AlertTitle = "Medicine Alert"

// Notification is one reminder or alert emitted by a tick.
type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	Severity  Severity         `json:"severity"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Period    string           `json:"period,omitempty"`
	Medicines []string         `json:"medicines,omitempty"`
	Medicine  string           `json:"medicine,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// BoardEventType describes a change on the notification board.
type BoardEventType string

const (
	BoardEventAdded     BoardEventType = "added"
	BoardEventDismissed BoardEventType = "dismissed"
	BoardEventExpired   BoardEventType = "expired"
)

// BoardEvent is streamed to board subscribers.
type BoardEvent struct {
	Type         BoardEventType `json:"type"`
	Notification Notification   `json:"notification"`
}
