package server

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"bizman/internal/domain/auth"
	"bizman/internal/domain/catalog"
	"bizman/internal/domain/evaluation"
	"bizman/internal/domain/notifications"
	"bizman/internal/domain/payroll"
	"bizman/internal/platform/config"
	"bizman/internal/platform/db"
	"bizman/internal/platform/email"
	"bizman/internal/platform/metrics"
	adminhandler "bizman/internal/transport/http/handlers/admin"
	authhandler "bizman/internal/transport/http/handlers/auth"
	cataloghandler "bizman/internal/transport/http/handlers/catalog"
	evaluationhandler "bizman/internal/transport/http/handlers/evaluation"
	notificationshandler "bizman/internal/transport/http/handlers/notifications"
	payrollhandler "bizman/internal/transport/http/handlers/payroll"
	"bizman/internal/transport/http/middleware"
)

func Run() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	authStore := auth.NewStore(pool)
	catalogStore := catalog.NewStore(pool)

	notificationsSvc := notifications.New(notifications.NewStore(pool), email.New(cfg), cfg.EmailFrom, cfg.EmailEnabled)
	evaluationSvc := evaluation.NewService(evaluation.NewStore(pool), notificationsSvc)
	payrollSvc := payroll.NewService(payroll.NewStore(pool), evaluationSvc, cfg.StorageDir)

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(authStore, cfg.JWTSecret)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)
		r.Get("/auth/me", authHandler.HandleMe)

		cataloghandler.NewHandler(catalogStore, authStore).RegisterRoutes(r)
		evaluationhandler.NewHandler(evaluationSvc, authStore).RegisterRoutes(r)
		payrollhandler.NewHandler(payrollSvc, authStore, evaluationSvc).RegisterRoutes(r)
		notificationshandler.NewHandler(notificationsSvc, authStore, evaluationSvc).RegisterRoutes(r)
		adminhandler.NewHandler(collector, authStore).RegisterRoutes(r)
	})

	slog.Info("server listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
