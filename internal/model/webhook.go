package model

import "time"

// WebhookConfig represents a configured webhook destination. The ID is a
// logical name ("n8n_main", "ecommerce", ...) referenced by the routing table.
type WebhookConfig struct {
	ID        string
	Name      string
	URL       *string
	Category  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InitMeta initializes the webhook config timestamps.
func (w *WebhookConfig) InitMeta() {
	now := time.Now()
	w.CreatedAt = now
	w.UpdatedAt = now
}

// Dispatchable reports whether the config can receive deliveries: it must be
// active and carry a destination URL.
func (w *WebhookConfig) Dispatchable() bool {
	return w.IsActive && w.URL != nil && *w.URL != ""
}
