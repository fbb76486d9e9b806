package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/phillip/hostel-fest-payments/auth"
	"github.com/phillip/hostel-fest-payments/config"
	"github.com/phillip/hostel-fest-payments/logging"
	"github.com/phillip/hostel-fest-payments/metrics"
	"github.com/phillip/hostel-fest-payments/middleware"
	"github.com/phillip/hostel-fest-payments/routes"
	"github.com/phillip/hostel-fest-payments/services"
	"github.com/phillip/hostel-fest-payments/store"
	"github.com/phillip/hostel-fest-payments/toast"
	"github.com/phillip/hostel-fest-payments/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	persister, closeStore, err := config.OpenPersister(ctx, cfg, log)
	if err != nil {
		log.Error("could not open store backend", "backend", cfg.StoreBackend, "err", err)
		os.Exit(1)
	}
	defer closeStore()

	st := store.New(persister, cfg.StoreKey, log)
	if err := st.Load(ctx); err != nil {
		log.Warn("starting from seed data", "err", err)
	}

	app := services.New(services.Options{
		Store:        st,
		Auth:         authProvider(cfg, log),
		Toasts:       toast.NewBoard(cfg.ToastTTL, time.Now),
		Sender:       sender(cfg, log),
		Backup:       backup(cfg, log),
		PaymentDelay: paymentDelay(cfg.PaymentDelay),
		Log:          log,
	})

	metrics.Register()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "If-None-Match"},
		ExposeHeaders:    []string{"ETag", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	routes.SetupRoutes(r, cfg, app)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Info("server starting", "addr", srv.Addr, "backend", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", "err", err)
	}
	app.Wait()
	log.Info("stopped")
}

func authProvider(cfg *config.Config, log *slog.Logger) auth.Provider {
	if cfg.AdminPasswordHash == "" {
		return auth.PlaintextProvider{}
	}
	p, err := auth.NewBcryptProvider(cfg.AdminPasswordHash)
	if err != nil {
		log.Error("ADMIN_PASSWORD_HASH is not a bcrypt hash, using stored password", "err", err)
		return auth.PlaintextProvider{}
	}
	return p
}

func sender(cfg *config.Config, log *slog.Logger) utils.Sender {
	if cfg.Email.Enabled() {
		log.Info("notifications will be emailed")
		return utils.NewEmailSender(cfg.Email)
	}
	return utils.LogSender{Log: log}
}

func backup(cfg *config.Config, log *slog.Logger) services.Backuper {
	if !cfg.Cloudinary.Enabled() {
		return nil
	}
	b, err := utils.NewCloudinaryBackup(cfg.Cloudinary)
	if err != nil {
		log.Error("cloudinary disabled", "err", err)
		return nil
	}
	return b
}

// paymentDelay maps a configured zero to "no delay"; services treats zero as
// the default.
func paymentDelay(d time.Duration) time.Duration {
	if d == 0 {
		return -1
	}
	return d
}
