package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/model"
	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/repository"
	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EventController handles the action-dispatched webhook-events endpoint.
type EventController struct {
	eventService *service.EventService
}

// NewEventController creates a new EventController with the given event service.
func NewEventController(eventService *service.EventService) *EventController {
	return &EventController{
		eventService: eventService,
	}
}

// CreateEventRequest represents the request body for creating an event.
type CreateEventRequest struct {
	EventType string                 `json:"event_type"`
	UserID    *string                `json:"user_id"`
	AccountID *string                `json:"account_id"`
	Payload   map[string]interface{} `json:"payload"`
}

// RetryEventRequest represents the request body for re-queueing an event.
type RetryEventRequest struct {
	EventID string `json:"event_id" binding:"required"`
}

// TestWebhooksRequest represents the request body for a test dispatch.
type TestWebhooksRequest struct {
	WebhookID string `json:"webhook_id"`
}

// ListEventsRequest represents the query parameters for listing events.
type ListEventsRequest struct {
	Status    string `form:"status"`
	EventType string `form:"event_type"`
	Limit     int    `form:"limit"`
	Offset    int    `form:"offset"`
}

// EventResponse represents the response body for an event.
type EventResponse struct {
	ID         string          `json:"id"`
	EventType  string          `json:"event_type"`
	UserID     *string         `json:"user_id"`
	AccountID  *string         `json:"account_id"`
	Payload    json.RawMessage `json:"payload"`
	Status     string          `json:"status"`
	RetryCount int             `json:"retry_count"`
	LastError  *string         `json:"last_error"`
	CreatedAt  string          `json:"created_at"`
	SentAt     *string         `json:"sent_at"`
}

// ListEventsResponse represents the response body for listing events.
type ListEventsResponse struct {
	Events []EventResponse `json:"events"`
	Total  int             `json:"total"`
}

// Handle routes a webhook-events request to the operation named by the action
// query parameter. An absent action means create.
func (ec *EventController) Handle(c *gin.Context) {
	switch action := c.Query("action"); action {
	case "create", "":
		ec.create(c)
	case "dispatch":
		ec.dispatch(c)
	case "retry":
		ec.retry(c)
	case "list":
		ec.list(c)
	case "test":
		ec.test(c)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action: " + action})
	}
}

func (ec *EventController) create(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := ec.eventService.Create(c.Request.Context(), req.EventType, req.UserID, req.AccountID, req.Payload)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"event_id": event.ID.String(),
	})
}

func (ec *EventController) dispatch(c *gin.Context) {
	summary, err := ec.eventService.DispatchPending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to dispatch pending events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"processed": summary.Processed,
		"sent":      summary.Sent,
		"errors":    summary.Errors,
	})
}

func (ec *EventController) retry(c *gin.Context) {
	var req RetryEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	if err := ec.eventService.Retry(c.Request.Context(), eventID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retry event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "event queued for retry",
	})
}

func (ec *EventController) list(c *gin.Context) {
	var req ListEventsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := repository.NewQuery().
		With(repository.StatusField, req.Status).
		With(repository.EventTypeField, req.EventType)
	query.ApplyPagination(req.Limit, req.Offset)

	events, total, err := ec.eventService.List(c.Request.Context(), *query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}

	eventResponses := make([]EventResponse, 0, len(events))
	for _, event := range events {
		eventResponses = append(eventResponses, toEventResponse(event))
	}

	c.JSON(http.StatusOK, ListEventsResponse{
		Events: eventResponses,
		Total:  total,
	})
}

func (ec *EventController) test(c *gin.Context) {
	var req TestWebhooksRequest
	// An empty body means "test every dispatchable webhook".
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := ec.eventService.TestWebhooks(c.Request.Context(), req.WebhookID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "webhook config not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to test webhooks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"results": results,
	})
}

func toEventResponse(event *model.Event) EventResponse {
	resp := EventResponse{
		ID:         event.ID.String(),
		EventType:  event.EventType,
		UserID:     event.UserID,
		AccountID:  event.AccountID,
		Payload:    event.Payload,
		Status:     string(event.Status),
		RetryCount: event.RetryCount,
		LastError:  event.LastError,
		CreatedAt:  event.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if event.SentAt != nil {
		sentAt := event.SentAt.Format("2006-01-02T15:04:05Z07:00")
		resp.SentAt = &sentAt
	}
	return resp
}
