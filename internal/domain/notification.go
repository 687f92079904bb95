package domain

import "time"

// Notification types are free-form strings produced by the backend.
// Classification into customer/professional relevance happens by
// prefix matching, see modules/notification.
type Notification struct {
	ID          int64          `json:"id"`
	Type        string         `json:"type"`
	MessageEN   string         `json:"message_en"`
	MessageNP   string         `json:"message_np"`
	IsRead      bool           `json:"is_read"`
	ActionRoute string         `json:"action_route,omitempty"`
	CustomData  map[string]any `json:"custom_data,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
