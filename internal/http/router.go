package http

import (
	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/config"
	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/http/controller"
	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/http/middleware"
	"github.com/gin-gonic/gin"
)

func InitRouter(_ *config.Config, server *gin.Engine, ctr *controller.Controller, eventCtr *controller.EventController, webhookCtr *controller.WebhookController) *gin.Engine {
	// Apply recovery middleware globally to prevent panics from crashing the server
	server.Use(middleware.Recovery())
	server.Use(middleware.CORS())
	server.Use(middleware.Logger())

	server.GET("/ping", ctr.Ping)

	// Single action-dispatched endpoint for the event pipeline
	server.POST("/webhook-events", eventCtr.Handle)
	server.GET("/webhook-events", eventCtr.Handle)

	// Webhook config administration
	webhooks := server.Group("/webhook-configs")
	{
		webhooks.POST("", webhookCtr.CreateWebhook)
		webhooks.GET("", webhookCtr.ListWebhooks)
		webhooks.GET("/:id", webhookCtr.GetWebhook)
		webhooks.PUT("/:id", webhookCtr.UpdateWebhook)
		webhooks.DELETE("/:id", webhookCtr.DeleteWebhook)
	}

	return server
}
