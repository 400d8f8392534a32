package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/summitpeak/outreach-agent/internal/config"
	"github.com/summitpeak/outreach-agent/internal/entity"
	"github.com/summitpeak/outreach-agent/internal/infra/http/handlers"
	"github.com/summitpeak/outreach-agent/internal/infra/http/middleware"
	"github.com/summitpeak/outreach-agent/internal/infra/mail"
	"github.com/summitpeak/outreach-agent/internal/infra/queue"
	"github.com/summitpeak/outreach-agent/internal/infra/store/airtable"
	"github.com/summitpeak/outreach-agent/internal/infra/store/postgres"
	"github.com/summitpeak/outreach-agent/internal/infra/worker"
	"github.com/summitpeak/outreach-agent/internal/sequence"
	"github.com/summitpeak/outreach-agent/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// 1. Store
	var leadRepo entity.LeadRepositoryInterface
	var taskRepo entity.TaskRepositoryInterface
	var db *sql.DB

	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		db, err = postgres.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		leadRepo = postgres.NewLeadRepository(db)
		taskRepo = postgres.NewTaskRepository(db)
	default:
		client := airtable.NewClient(cfg.AirtableAPIToken, cfg.AirtableBaseID)
		leadRepo = airtable.NewLeadRepository(client, cfg.AirtableTableLeads)
		taskRepo = airtable.NewTaskRepository(client, cfg.AirtableTableTasks)
	}

	// 2. Event producer (optional)
	var producer *queue.Producer
	var amqpConn *amqp.Connection
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Fatal(err)
		}
		defer rabbitMQ.Close()
		producer = queue.NewProducer(rabbitMQ.Ch)
		amqpConn = rabbitMQ.Conn
	}

	// 3. Catalog + mail
	catalog := sequence.NewCatalog(cfg.CalendlyLink)
	mailSender := mail.NewEmailSender(mail.SMTPConfig{
		Host:              cfg.SMTPHost,
		Port:              cfg.SMTPPort,
		User:              cfg.SMTPUser,
		Password:          cfg.SMTPPass,
		FromEmail:         cfg.FromEmail,
		FromName:          cfg.FromName,
		AppURL:            cfg.AppURL,
		UnsubscribeSecret: cfg.UnsubscribeSecret,
	})

	// 4. UseCases
	var events usecase.EventProducerInterface
	if producer != nil {
		events = producer
	}
	startCampaignUC := usecase.NewStartCampaignUseCase(leadRepo, taskRepo, catalog, events)
	dispatchDueUC := usecase.NewDispatchDueUseCase(leadRepo, taskRepo, catalog, mailSender, events, cfg.CalendlyLink)

	// 5. Worker
	dispatchWorker := worker.NewDispatchWorker(dispatchDueUC, cfg.DispatchInterval)
	go dispatchWorker.Start(context.Background())

	// 6. Handlers
	var eventsForHandlers queue.ProducerInterface
	if producer != nil {
		eventsForHandlers = producer
	}
	campaignHandler := handlers.NewCampaignHandler(startCampaignUC)
	webhookHandler := handlers.NewWebhookHandler(leadRepo, eventsForHandlers)
	unsubscribeHandler := handlers.NewUnsubscribeHandler(leadRepo, cfg.UnsubscribeSecret, eventsForHandlers)
	healthHandler := handlers.NewHealthHandler(cfg, db, amqpConn)

	// 7. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Summit Peak Outreach Agent running ✅"))
	})
	r.Post("/campaigns/start", campaignHandler.HandleStart)
	r.Post("/webhooks/calendly", webhookHandler.HandleCalendly)
	r.Get("/unsubscribe", unsubscribeHandler.Handle)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", cfg.AppPort)
	log.Printf("🔥 Outreach agent listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}
