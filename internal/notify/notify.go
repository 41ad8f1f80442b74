// Package notify defines the notification service's wire types and the
// client used by other services to reach it. The sink is treated as a black
// box: each call results in a record whose status is "sent" or "failed".
package notify

// Notification priorities.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// Delivery statuses reported by the sink.
const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Request asks the notification service to send one notification.
// Priority defaults to "normal" when empty.
type Request struct {
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Priority string `json:"priority,omitempty"`
}

// Notification is one delivery record: the sink's response to a Request and
// the entry kept in its history.
type Notification struct {
	ID             int    `json:"id"`
	Email          string `json:"email"`
	Subject        string `json:"subject"`
	Message        string `json:"message"`
	Priority       string `json:"priority"`
	Status         string `json:"status"`
	Timestamp      string `json:"timestamp"`
	DeliveryTimeMs int    `json:"delivery_time_ms"`
}
