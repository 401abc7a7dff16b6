// Package notify delivers evaluation results to the configured output
// channels: push services via shoutrrr and an optional MQTT mirror.
package notify

import (
	"time"

	"github.com/google/uuid"
)

// Type represents the category of a notification
type Type string

const (
	// TypeAlert indicates a fishing window alert
	TypeAlert Type = "alert"
	// TypeInfo indicates an informational notification
	TypeInfo Type = "info"
	// TypeError indicates a system error notification
	TypeError Type = "error"
)

// Priority represents the urgency level of a notification
type Priority string

const (
	// PriorityHigh indicates important but not urgent
	PriorityHigh Priority = "high"
	// PriorityMedium indicates normal priority
	PriorityMedium Priority = "medium"
	// PriorityLow indicates low priority/informational
	PriorityLow Priority = "low"
)

// Notification represents a single notification event
type Notification struct {
	// ID is the unique identifier for the notification
	ID string `json:"id"`
	// Type categorizes the notification
	Type Type `json:"type"`
	// Priority indicates the urgency level
	Priority Priority `json:"priority"`
	// Title is a short summary of the notification
	Title string `json:"title"`
	// Message provides detailed information
	Message string `json:"message"`
	// Timestamp indicates when the notification was created
	Timestamp time.Time `json:"timestamp"`
	// Metadata contains additional context-specific data
	Metadata map[string]any `json:"metadata,omitempty"`
}

// NewNotification creates a new notification with a unique ID and timestamp
func NewNotification(notifType Type, priority Priority, title, message string) *Notification {
	return &Notification{
		ID:        uuid.New().String(),
		Type:      notifType,
		Priority:  priority,
		Title:     title,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]any),
	}
}

// WithMetadata adds metadata and returns the notification for chaining
func (n *Notification) WithMetadata(key string, value any) *Notification {
	if n.Metadata == nil {
		n.Metadata = make(map[string]any)
	}
	n.Metadata[key] = value
	return n
}
