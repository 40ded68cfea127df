package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"messenger/internal/authz"
	"messenger/internal/config"
	"messenger/internal/domain"
	"messenger/internal/observability/logging"
	"messenger/internal/observability/metrics"
	obsmw "messenger/internal/observability/middleware"
	"messenger/internal/service"
	"messenger/internal/store"
	httpx "messenger/internal/transport/http"
	"messenger/pkg/db"
)

func main() {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	logger := logging.NewLogger(logging.Config{
		ServiceName: "messenger",
		Environment: env,
		Level:       os.Getenv("LOG_LEVEL"),
	})
	slog.SetDefault(logger)

	cfg := config.Load()

	gdb, err := db.OpenGorm(db.Config{DSN: cfg.DatabaseURL, LogSQL: cfg.LogSQL})
	if err != nil {
		logger.Error("gorm open", "error", err)
		os.Exit(1)
	}

	if err := gdb.AutoMigrate(
		&domain.User{},
		&domain.Contact{},
		&domain.Chat{},
		&domain.ChatMember{},
		&domain.Message{},
	); err != nil {
		logger.Error("automigrate", "error", err)
		os.Exit(1)
	}

	metrics.MustRegister()

	svc := service.New(store.New(gdb))
	tokens := authz.NewTokens(cfg.SigningKey, cfg.Issuer, cfg.TokenTTL)

	handler := obsmw.WithRequestAndTrace(
		obsmw.WithMetrics(
			httpx.NewRouter(svc, tokens, cfg.CORSOrigins),
		),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("messenger listening", "addr", srv.Addr, "issuer", cfg.Issuer)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
