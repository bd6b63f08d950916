package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"logisticshub-service/internal/infrastructure/config"
	"logisticshub-service/internal/infrastructure/persistence"
	"logisticshub-service/internal/interface/httpapi"
	"logisticshub-service/internal/interface/liveupdate"
	kvrepo "logisticshub-service/internal/interface/repository"
	"logisticshub-service/internal/usecase"
	"logisticshub-service/pkg/logger"
	"logisticshub-service/pkg/metrics"

	"logisticshub-service/internal/domain/repository"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting LogisticsHub Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics("logisticshub")

	// Set up the persistent store. A backend that cannot be reached degrades
	// to the in-memory fallback instead of failing startup.
	var store repository.KVStore
	var mongoClient *mongo.Client

	switch cfg.StoreBackend {
	case config.StoreMongo:
		log.Info("Connecting to MongoDB")
		client, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.Warn("MongoDB unreachable, falling back to in-memory store", "error", err)
			store = kvrepo.NewMemoryKVStore()
		} else {
			mongoClient = client
			store = kvrepo.NewMongoKVStore(db, log)
		}
	case config.StorePostgres:
		log.Info("Connecting to PostgreSQL")
		gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
		if err != nil {
			log.Warn("PostgreSQL unreachable, falling back to in-memory store", "error", err)
			store = kvrepo.NewMemoryKVStore()
		} else {
			store, err = kvrepo.NewGormKVStore(gormDB)
			if err != nil {
				log.Warn("PostgreSQL store setup failed, falling back to in-memory store", "error", err)
				store = kvrepo.NewMemoryKVStore()
			}
		}
	default:
		store = kvrepo.NewMemoryKVStore()
	}
	log.Info("Persistent store ready", "backend", cfg.StoreBackend)

	// Set up the state engine and hydrate it
	tracker := usecase.NewShipmentTracker(store, log, m)
	tracker.Load(ctx)

	ingester := usecase.NewLiveUpdateIngester(tracker, log, m)

	// In-process live-update transport, always available
	bus := liveupdate.NewLocalBus()
	go bus.Run(ctx, func(raw []byte) error {
		return ingester.Handle(ctx, raw)
	})

	// Broker transport, only when configured
	if cfg.LiveUpdateURL != "" {
		subscriber := liveupdate.NewSubscriber(cfg.LiveUpdateURL, cfg.LiveUpdateQueue, log)
		go subscriber.Run(ctx, func(raw []byte) error {
			return ingester.Handle(ctx, raw)
		})
	}

	// Set up HTTP server
	mux := http.NewServeMux()
	httpapi.NewHandler(tracker, log).Register(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			log.Error("MongoDB disconnect error", "error", err)
		}
	}

	log.Info("LogisticsHub Service stopped")
}
