package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"route-planner-service/internal/adapters/cache"
	"route-planner-service/internal/adapters/notify"
	"route-planner-service/internal/adapters/osrm"
	"route-planner-service/internal/adapters/repositories"
	"route-planner-service/internal/adapters/state"
	"route-planner-service/internal/api"
	"route-planner-service/internal/config"
	"route-planner-service/internal/platform/db"
	"route-planner-service/internal/platform/metrics"
	"route-planner-service/internal/ports"
	"route-planner-service/internal/services"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, OSRM) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	metrics.RegisterDefault()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]func(context.Context) error{}

	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		sqlDB, err = db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer sqlDB.Close()

		if err := repositories.InitSchema(sqlDB); err != nil {
			log.Fatal(err)
		}
		checks["postgres"] = sqlDB.PingContext
	}

	stateStore, closeState, err := openStateStore(ctx, cfg, sqlDB, checks)
	if err != nil {
		log.Fatal(err)
	}
	defer closeState()

	orders := openOrders(cfg, sqlDB)

	// Snap results are cached in Postgres when available to spare the public router.
	var snapCache ports.SnapCache = cache.NewMemorySnapCache()
	if sqlDB != nil {
		snapCache = cache.NewSQLSnapCache(sqlDB)
	}

	provider := osrm.NewClient(osrm.Options{
		Profile:        cfg.Routing.Profile,
		AttemptTimeout: cfg.Routing.Timeout,
		MaxRetries:     cfg.Routing.MaxRetries,
		RateLimit:      cfg.Routing.RateLimit,
	})
	client, err := services.NewRoutingClient(provider, cfg.Routing.Hosts)
	if err != nil {
		log.Fatal(err)
	}

	broker := notify.NewBroker()
	registry := services.NewRegistry(services.SessionDeps{
		State:     stateStore,
		Optimizer: services.NewOptimizer(client),
		Snapper: &services.Snapper{
			Provider: provider,
			Host:     cfg.Routing.SnapHostOrDefault(),
			Zone:     cfg.Routing.SnapZone,
			Cache:    snapCache,
		},
		Orders:   orders,
		Notifier: notify.Multi{broker, notify.LogNotifier{}},
	})

	// Restore the default session eagerly so a bad state backend fails fast.
	if _, err := registry.Get(ctx, services.DefaultSessionID); err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(api.Deps{
		Registry: registry,
		Orders:   orders,
		Broker:   broker,
		Checks:   checks,
	})

	// Write timeout leaves room for a full fallback chain across every host.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown failed: %v", err)
		}
	}()

	log.Printf("Server listening addr=:%s state=%s hosts=%v", cfg.Port, cfg.StateBackend, cfg.Routing.Hosts)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func openStateStore(
	ctx context.Context,
	cfg config.Config,
	sqlDB *sql.DB,
	checks map[string]func(context.Context) error,
) (ports.StateStore, func(), error) {
	switch cfg.StateBackend {
	case config.StateRedis:
		client, err := state.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		return state.NewRedisStateStore(client), func() { _ = client.Close() }, nil

	case config.StatePostgres:
		return state.NewSQLStateStore(sqlDB), func() {}, nil

	default:
		log.Println("Using in-memory state; waypoints are lost on restart")
		return state.NewMemoryStateStore(), func() {}, nil
	}
}

// openOrders prefers the orders table and falls back to the seed file.
func openOrders(cfg config.Config, sqlDB *sql.DB) ports.OrderRepository {
	if sqlDB != nil {
		return repositories.NewSQLOrderRepository(sqlDB)
	}

	repo, err := repositories.LoadMemoryOrderRepository(cfg.SeedPath)
	if err != nil {
		log.Printf("order source disabled: %v", err)
		return nil
	}
	return repo
}
