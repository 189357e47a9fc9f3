package main

import (
	"context"
	"crypto/rand"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/atech/cms/internal/api"
	"github.com/atech/cms/internal/api/handlers"
	mw "github.com/atech/cms/internal/api/middleware"
	"github.com/atech/cms/internal/api/validators"
	"github.com/atech/cms/internal/content"
	"github.com/atech/cms/internal/media"
	"github.com/atech/cms/internal/repository"
	"github.com/atech/cms/pkg/config"
	"github.com/atech/cms/pkg/logger"
)

const defaultAdminPassword = "admin123"

func main() {
	cfg := config.MustLoad()

	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("starting ATECH content engine",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, repository.OptionsFromConfig(cfg))
	if err != nil {
		log.Fatal("failed to open content store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("content store close failed", zap.Error(err))
		}
	}()

	jwtSecret := []byte(cfg.JWTSecret)
	if len(jwtSecret) == 0 {
		log.Warn("JWT_SECRET not set, admin tokens will not survive a restart")
		jwtSecret = make([]byte, 32)
		_, _ = rand.Read(jwtSecret)
	}
	if cfg.AdminPassword == defaultAdminPassword {
		log.Warn("ADMIN_PASSWORD is the default, change it before going live")
	}
	authHandler, err := handlers.NewAuthHandler(cfg.AdminPassword, jwtSecret, validators.New())
	if err != nil {
		log.Fatal("failed to hash admin password", zap.Error(err))
	}

	var uploader media.Uploader = media.NewLocal(cfg.UploadDir)
	if cfg.ObjectStorageEnabled() {
		uploader = media.Fallback{
			Primary:   media.NewSupabase(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseBucket, &http.Client{Timeout: 30 * time.Second}),
			Secondary: uploader,
		}
	}

	// The server answers the content API itself, so it always reads the
	// store in-process.
	router := api.NewRouter(ctx, api.Dependencies{
		Store:            store,
		Source:           content.NewDirect(store),
		Uploader:         uploader,
		Auth:             authHandler,
		HMACSecret:       jwtSecret,
		RequireToken:     cfg.AdminRequireToken,
		CORSOrigins:      mw.ParseOrigins(cfg.CORSOrigins),
		RateRPS:          cfg.RateLimitRPS,
		RateBurst:        cfg.RateLimitBurst,
		TrustedProxyHops: cfg.TrustedProxyHops,
		UploadDir:        cfg.UploadDir,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}
