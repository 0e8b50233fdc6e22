package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/config"
	httpAPI "github.com/creativeworkssakib-source/autofloy4-sub005/internal/http"
	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/http/controller"
	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/logger"
	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/metrics"
	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/repository/sql"
	"github.com/creativeworkssakib-source/autofloy4-sub005/internal/service"
	sqspkg "github.com/creativeworkssakib-source/autofloy4-sub005/internal/sqs"
	"github.com/gin-gonic/gin"
)

func main() {
	conf, err := config.LoadFromEnv()
	handleErr("loading config", err)

	logger.InitJSONLogger(conf.DebugMode)

	ctx := context.Background()
	db, err := sql.StartDB(ctx, conf.Database)
	handleErr("starting database", err)

	// Create repositories
	eventRepository := sql.NewEventRepository(db)
	webhookRepository := sql.NewWebhookRepository(db)
	userRepository := sql.NewUserRepository(db)
	settingsRepository := sql.NewSettingsRepository(db)

	// Dead-letter publishing is optional: without a queue URL, exhausted
	// events only stay in the database with status=error.
	var deadLetter *sqspkg.DeadLetterPublisher
	if conf.AWS.SQSDLQURL != "" {
		sqsClient, err := sqspkg.NewClient(ctx, conf.AWS.Region, conf.AWS.Endpoint)
		handleErr("initializing SQS client", err)
		deadLetter = sqspkg.NewDeadLetterPublisher(sqsClient, conf.AWS.SQSDLQURL)
	}

	// Create services
	signer := service.NewSigner(conf.Webhook.SigningSecret)
	enricher := service.NewEnricher(userRepository, settingsRepository)
	dispatcher := service.NewDispatcher(eventRepository, webhookRepository, signer, deadLetter, conf.Webhook.DLQRetryThreshold)
	eventService := service.NewEventService(eventRepository, webhookRepository, enricher, dispatcher)

	// Start sweep worker to re-dispatch stuck pending events, unless the
	// deployment drives dispatch from an external cron instead.
	if conf.Webhook.DispatchIntervalSeconds > 0 {
		sweepWorker := service.NewSweepWorker(dispatcher, time.Duration(conf.Webhook.DispatchIntervalSeconds)*time.Second)
		go sweepWorker.Start(ctx)
	}

	// Start HTTP server
	ctr := controller.New(conf)
	eventCtr := controller.NewEventController(eventService)
	webhookCtr := controller.NewWebhookController(webhookRepository)
	httpServer := gin.New()
	httpServer = httpAPI.InitRouter(conf, httpServer, ctr, eventCtr, webhookCtr)

	go func() {
		err = httpServer.Run(":" + conf.HTTPServer.Port)
		if err != nil {
			handleErr("listening to HTTP requests", err)
		}
	}()

	// Start metrics server
	metrics.StartMetricsServer(conf)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutting down gracefully...")
	// TODO: stop httpServer gracefully
}

func handleErr(msg string, err error) {
	if err != nil {
		log.Fatalf("error while %s: %v", msg, err)
	}
}
