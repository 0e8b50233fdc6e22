// Package routing maps event types to the webhook destinations that should
// receive them. The fan-out topology is a fixed design decision, not
// configuration.
package routing

import "strings"

// Webhook IDs referenced by the routing table. They must match the logical
// IDs of rows in the webhook_configs table.
const (
	WebhookMain             = "n8n_main"
	WebhookFacebook         = "facebook"
	WebhookWhatsapp         = "whatsapp"
	WebhookInstagram        = "instagram"
	WebhookUserEvents       = "user_events"
	WebhookSubscription     = "subscription"
	WebhookPayment          = "payment"
	WebhookEcommerce        = "ecommerce"
	WebhookAutomationEvents = "automation_events"
)

// RouteEvent returns the webhook IDs that should receive an event of the
// given type. The main n8n webhook always receives every event; additional
// destinations are selected by event-type prefix. The returned order is
// deterministic.
func RouteEvent(eventType string) []string {
	ids := []string{WebhookMain}

	switch {
	case strings.HasPrefix(eventType, "facebook."):
		ids = append(ids, WebhookFacebook)
	case strings.HasPrefix(eventType, "whatsapp."):
		ids = append(ids, WebhookWhatsapp)
	case strings.HasPrefix(eventType, "instagram."):
		ids = append(ids, WebhookInstagram)
	case strings.HasPrefix(eventType, "user."),
		strings.HasPrefix(eventType, "subscription."),
		strings.HasPrefix(eventType, "plan."),
		strings.HasPrefix(eventType, "trial."):
		ids = append(ids, WebhookUserEvents, WebhookSubscription)
	case strings.HasPrefix(eventType, "billing."):
		ids = append(ids, WebhookPayment)
	case strings.HasPrefix(eventType, "order."):
		ids = append(ids, WebhookEcommerce)
	case strings.HasPrefix(eventType, "automation."):
		ids = append(ids, WebhookAutomationEvents)
	}

	return ids
}
