package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloud-wave-best-zizon/order-console/internal/events"
	"github.com/cloud-wave-best-zizon/order-console/internal/handler"
	"github.com/cloud-wave-best-zizon/order-console/internal/repository"
	"github.com/cloud-wave-best-zizon/order-console/internal/service"
	"github.com/cloud-wave-best-zizon/order-console/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the reference orders API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), a.cfg, a.logger)
		},
	}
}

func newRepository(ctx context.Context, cfg *config.Config) (repository.OrderRepository, func(), error) {
	switch cfg.StoreBackend {
	case "memory", "":
		return repository.NewMemoryRepository(), func() {}, nil
	case "redis":
		rdb, err := repository.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Redis client: %w", err)
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("failed to reach Redis: %w", err)
		}
		return repository.NewRedisRepository(rdb), func() { rdb.Close() }, nil
	case "dynamodb":
		dynamoClient, err := repository.NewDynamoDBClient(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
		}
		return repository.NewDynamoDBRepository(dynamoClient, cfg.OrderTableName), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
}

func newPublisher(cfg *config.Config, logger *zap.Logger) (events.Publisher, error) {
	if cfg.KafkaBrokers == "" {
		return events.NopPublisher{}, nil
	}
	return events.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Service configuration",
		zap.String("port", cfg.Port),
		zap.String("store", cfg.StoreBackend),
		zap.String("kafka_brokers", cfg.KafkaBrokers),
		zap.Bool("tracing", cfg.TracingEnabled))

	orderRepo, closeRepo, err := newRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	publisher, err := newPublisher(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	defer publisher.Close()

	gin.SetMode(gin.ReleaseMode)
	orderService := service.NewOrderService(orderRepo, publisher, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)

	var h http.Handler = handler.NewRouter(orderHandler, cfg.StoreBackend, logger)
	if cfg.TracingEnabled {
		h = otelhttp.NewHandler(h, "order-console")
	}

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: h,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-quit:
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
		return err
	}
	logger.Info("Server stopped")
	return nil
}
