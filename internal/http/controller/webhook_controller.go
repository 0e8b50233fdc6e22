package controller

import (
	"errors"
	"net/http"

	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/model"
	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/repository"
	"github.com/gin-gonic/gin"
)

// WebhookController handles HTTP requests for webhook config administration.
type WebhookController struct {
	webhooks repository.WebhookStore
}

// NewWebhookController creates a new WebhookController with the given store.
func NewWebhookController(webhooks repository.WebhookStore) *WebhookController {
	return &WebhookController{
		webhooks: webhooks,
	}
}

// CreateWebhookRequest represents the request body for creating a webhook config.
type CreateWebhookRequest struct {
	ID       string  `json:"id" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	URL      *string `json:"url"`
	Category string  `json:"category"`
	IsActive *bool   `json:"is_active"`
}

// UpdateWebhookRequest represents the request body for updating a webhook config.
type UpdateWebhookRequest struct {
	Name     string  `json:"name" binding:"required"`
	URL      *string `json:"url"`
	Category string  `json:"category"`
	IsActive *bool   `json:"is_active"`
}

// WebhookResponse represents the response body for a webhook config.
type WebhookResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	URL       *string `json:"url"`
	Category  string  `json:"category"`
	IsActive  bool    `json:"is_active"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// CreateWebhook handles the HTTP POST request for creating a webhook config.
func (wc *WebhookController) CreateWebhook(c *gin.Context) {
	var req CreateWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	config := &model.WebhookConfig{
		ID:       req.ID,
		Name:     req.Name,
		URL:      req.URL,
		Category: req.Category,
		IsActive: req.IsActive == nil || *req.IsActive,
	}

	if err := wc.webhooks.Create(c.Request.Context(), config); err != nil {
		var uniqueErr *repository.UniqueConstraintError
		if errors.As(err, &uniqueErr) {
			c.JSON(http.StatusConflict, gin.H{"error": "webhook config already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create webhook config"})
		return
	}

	c.JSON(http.StatusCreated, toWebhookResponse(config))
}

// ListWebhooks handles the HTTP GET request for listing webhook configs.
func (wc *WebhookController) ListWebhooks(c *gin.Context) {
	configs, err := wc.webhooks.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list webhook configs"})
		return
	}

	responses := make([]WebhookResponse, 0, len(configs))
	for _, config := range configs {
		responses = append(responses, toWebhookResponse(config))
	}

	c.JSON(http.StatusOK, gin.H{"webhooks": responses})
}

// GetWebhook handles the HTTP GET request for a single webhook config.
func (wc *WebhookController) GetWebhook(c *gin.Context) {
	config, err := wc.webhooks.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "webhook config not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load webhook config"})
		return
	}

	c.JSON(http.StatusOK, toWebhookResponse(config))
}

// UpdateWebhook handles the HTTP PUT request for updating a webhook config.
func (wc *WebhookController) UpdateWebhook(c *gin.Context) {
	var req UpdateWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	config, err := wc.webhooks.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "webhook config not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load webhook config"})
		return
	}

	config.Name = req.Name
	config.URL = req.URL
	config.Category = req.Category
	if req.IsActive != nil {
		config.IsActive = *req.IsActive
	}

	if err := wc.webhooks.Update(c.Request.Context(), config); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update webhook config"})
		return
	}

	c.JSON(http.StatusOK, toWebhookResponse(config))
}

// DeleteWebhook handles the HTTP DELETE request for deleting a webhook config.
func (wc *WebhookController) DeleteWebhook(c *gin.Context) {
	if err := wc.webhooks.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "webhook config not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete webhook config"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "webhook config deleted successfully"})
}

func toWebhookResponse(config *model.WebhookConfig) WebhookResponse {
	return WebhookResponse{
		ID:        config.ID,
		Name:      config.Name,
		URL:       config.URL,
		Category:  config.Category,
		IsActive:  config.IsActive,
		CreatedAt: config.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: config.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
