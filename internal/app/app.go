// Package app wires configuration into the payment service and its transports.
// The HTTP server and the three Lambda entry points share it.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/payment-records/internal/adapters/dynamo"
	"github.com/DanielPopoola/payment-records/internal/adapters/events"
	"github.com/DanielPopoola/payment-records/internal/adapters/handler"
	"github.com/DanielPopoola/payment-records/internal/adapters/handler/middleware"
	"github.com/DanielPopoola/payment-records/internal/adapters/memory"
	"github.com/DanielPopoola/payment-records/internal/adapters/postgres"
	"github.com/DanielPopoola/payment-records/internal/config"
	"github.com/DanielPopoola/payment-records/internal/core/ports"
	"github.com/DanielPopoola/payment-records/internal/core/service"
	"github.com/DanielPopoola/payment-records/internal/docs"
	"github.com/DanielPopoola/payment-records/internal/metrics"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Service *service.PaymentService
	Handler *handler.PaymentHandler

	ping    func(ctx context.Context) error
	closers []func()
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.New(),
	}

	repo, err := a.newRepository(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	publishers := events.Fanout{a.Metrics}
	if cfg.Events.Enabled() {
		kafka := events.NewKafkaPublisher(cfg.Events.Brokers, cfg.Events.Topic, cfg.Events.WriteTimeout, logger)
		publishers = append(publishers, kafka)
		a.closers = append(a.closers, func() {
			if err := kafka.Close(); err != nil {
				logger.Error("failed to close event publisher", "error", err)
			}
		})
		logger.Info("publishing payment events", "brokers", cfg.Events.Brokers, "topic", cfg.Events.Topic)
	}

	a.Service = service.NewPaymentService(
		repo,
		cfg.CurrencySet(),
		logger,
		service.WithEventPublisher(publishers),
		service.WithPublishTimeout(cfg.Events.WriteTimeout),
	)
	a.closers = append(a.closers, a.Service.Wait)
	a.Handler = handler.NewPaymentHandler(a.Service, logger, handler.WithMaxBodyBytes(cfg.Server.MaxBodyBytes))

	return a, nil
}

func (a *App) newRepository(ctx context.Context) (ports.PaymentRepository, error) {
	switch a.Config.Store.Driver {
	case config.DriverPostgres:
		db, err := postgres.Connect(ctx, &a.Config.Database, a.Logger)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		if err := db.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		a.ping = db.Pool.Ping
		return postgres.NewPaymentRepository(db), nil

	case config.DriverDynamoDB:
		client, err := a.Config.DynamoDB.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("create dynamodb client: %w", err)
		}
		a.Logger.Info("using dynamodb store",
			"table", a.Config.DynamoDB.Table,
			"region", a.Config.DynamoDB.Region,
		)
		return dynamo.NewPaymentRepository(client, a.Config.DynamoDB.Table,
			dynamo.WithConsistentRead(a.Config.DynamoDB.ConsistentRead)), nil

	case config.DriverMemory:
		a.Logger.Warn("using in-memory store, records are lost on exit")
		return memory.NewPaymentRepository(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", a.Config.Store.Driver)
	}
}

// HTTPHandler assembles the full server: payment routes, health, metrics and
// API docs behind the middleware stack.
func (a *App) HTTPHandler(ctx context.Context) (http.Handler, error) {
	doc, err := docs.Load(ctx)
	if err != nil {
		return nil, err
	}
	docsHandler, err := docs.Handler(doc)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	a.Handler.RegisterRoutes(mux)
	mux.Handle("GET /openapi.json", docsHandler)
	mux.Handle("GET /metrics", a.Metrics.Handler())
	mux.HandleFunc("GET /healthz", a.healthz)

	return middleware.Chain(mux,
		chimw.RequestID,
		chimw.RealIP,
		middleware.Logging(a.Logger),
		middleware.Recovery(a.Logger),
		middleware.CORS(),
		middleware.Timeout(a.Config.Server.RequestTimeout),
		middleware.Metrics(a.Metrics),
	), nil
}

func (a *App) healthz(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK
	if a.ping != nil {
		if err := a.ping(r.Context()); err != nil {
			a.Logger.Error("health check failed", "error", err)
			status, code = "unavailable", http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
}

// Close drains pending event publishes, then releases broker and store
// connections in reverse order of creation.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
