package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/corray333/tutti-amici/internal/dal/interfaces/ieventsrepo"
	"github.com/corray333/tutti-amici/internal/dal/rabbitmq"
	"github.com/corray333/tutti-amici/internal/dal/repositories/events"
	"github.com/corray333/tutti-amici/internal/otel"
	"github.com/corray333/tutti-amici/internal/service/services/diagsvc"
	"github.com/corray333/tutti-amici/internal/service/services/menusvc"
	"github.com/corray333/tutti-amici/internal/service/services/ordersvc"
	httptransport "github.com/corray333/tutti-amici/internal/transport/http"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// App represents the application.
type App struct {
	transport      *httptransport.HTTPTransport
	storage        storage
	rabbitmqClient *rabbitmq.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
// Only tracing setup is fatal; storage and messaging degrade gracefully.
func MustNewApp() *App {
	app := &App{}

	if viper.GetBool("tracing.enabled") {
		controller, err := otel.InitOtel(
			viper.GetString("tracing.service_name"),
			viper.GetString("tracing.jaeger_endpoint"),
		)
		if err != nil {
			panic("failed to init tracing: " + err.Error())
		}
		app.otelController = controller
	}

	app.storage = openStorage(context.Background())

	menuSvc := menusvc.MustNewMenuService(
		menusvc.WithDocumentRepository(app.storage.repo),
	)
	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithDocumentRepository(app.storage.repo),
		ordersvc.WithEventsRepository(app.openEvents()),
	)
	diagnosticsSvc := diagsvc.MustNewDiagnosticsService(
		diagsvc.WithDocumentRepository(app.storage.repo),
		diagsvc.WithConfigPresence(
			viper.GetString("database.url") != "",
			viper.GetString("database.name") != "",
		),
		diagsvc.WithProbeTimeout(viper.GetDuration("diagnostics.timeout")),
	)

	app.transport = httptransport.NewHTTPTransport(menuSvc, orderSvc, diagnosticsSvc)
	app.transport.RegisterRoutes()

	return app
}

// openEvents returns nil when publishing is disabled or RabbitMQ is unreachable.
func (a *App) openEvents() ieventsrepo.IOrderEventsRepository {
	if !viper.GetBool("rabbitmq.enabled") {
		return nil
	}

	client, err := rabbitmq.NewClient(viper.GetString("rabbitmq.url"))
	if err != nil {
		slog.Error("Error connecting to RabbitMQ, order events disabled", "error", err)

		return nil
	}

	repo, err := events.NewOrderEventsRabbitMQRepository(client, viper.GetString("rabbitmq.queue"))
	if err != nil {
		slog.Error("Error preparing order events queue, order events disabled", "error", err)
		if closeErr := client.Close(); closeErr != nil {
			slog.Error("RabbitMQ connection close error", "error", closeErr)
		}

		return nil
	}

	a.rabbitmqClient = client

	return repo
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Starting HTTP server", "port", viper.GetString("server.http.port"))
		if err := a.transport.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), viper.GetDuration("server.http.shutdown_timeout"))
		defer cancel()

		if err := a.transport.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP server shutdown error", "error", err)
		} else {
			slog.Info("HTTP server stopped gracefully")
		}

		a.close(shutdownCtx)

		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("HTTP server error", "error", err)
	}

	slog.Info("Application shutdown complete")
}

func (a *App) close(ctx context.Context) {
	if err := a.storage.close(ctx); err != nil {
		slog.Error("Database connection close error", "error", err)
	} else {
		slog.Info("Database connection closed gracefully")
	}

	if a.rabbitmqClient != nil {
		if err := a.rabbitmqClient.Close(); err != nil {
			slog.Error("RabbitMQ connection close error", "error", err)
		}
	}

	if a.otelController != nil {
		if err := a.otelController.Shutdown(ctx); err != nil {
			slog.Error("Tracer provider shutdown error", "error", err)
		}
	}
}
