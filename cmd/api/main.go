//	@title			mediadrop API
//	@version		1.0
//	@description	Password-gated media upload dashboard backed by an S3-compatible bucket.
//
//	@host		localhost:8080
//	@BasePath	/api
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						upload_session
//	@description				Opaque session token set by POST /api/auth.

package main

//go:generate swag init --dir ../../ --generalInfo cmd/api/main.go --output ../../docs/swagger

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/radif/mediadrop/internal/auth"
	"github.com/radif/mediadrop/internal/config"
	"github.com/radif/mediadrop/internal/files"
	"github.com/radif/mediadrop/internal/logger"
	appMiddleware "github.com/radif/mediadrop/internal/middleware"
	"github.com/radif/mediadrop/internal/server"
	"github.com/radif/mediadrop/internal/storage"

	_ "github.com/radif/mediadrop/docs/swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Setup(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bucket, err := storage.Open(ctx, storage.Options{
		Driver:    cfg.StorageDriver,
		Endpoint:  cfg.StorageEndpoint,
		Region:    cfg.StorageRegion,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		Bucket:    cfg.StorageBucket,
		UseSSL:    cfg.StorageUseSSL,
	})
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("object storage init failed")
	}

	// Wire dependencies: repository → service → handler
	authSvc := auth.NewService(auth.NewRepository(), cfg.AdminPassword, cfg.SessionTTL)
	if err := authSvc.Configured(); err != nil {
		logger.Warn().Err(err).Msg("ADMIN_PASSWORD is not set; every login will be rejected")
	}
	authHandler := auth.NewHandler(authSvc, cfg.IsProduction())

	gw := storage.NewGateway(bucket, cfg.StoragePublicBase, cfg.AppURL)
	filesSvc := files.NewService(gw, cfg.BucketLimit, cfg.MaxUploadSize)
	filesHandler := files.NewHandler(filesSvc)

	router := server.NewRouter(server.Deps{
		Auth:           authHandler,
		Files:          filesHandler,
		Sessions:       authSvc,
		Limiter:        appMiddleware.NewLoginLimiter(cfg.LoginRatePerMinute),
		TrustProxy:     cfg.TrustProxy,
		AllowedOrigins: []string{cfg.AppURL},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       5 * time.Minute,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("env", cfg.AppEnv).
			Str("driver", cfg.StorageDriver).
			Str("bucket", cfg.StorageBucket).
			Str("bucket_limit", humanize.IBytes(uint64(cfg.BucketLimit))).
			Str("max_upload", humanize.IBytes(uint64(cfg.MaxUploadSize))).
			Msg("server listening")
		logger.Info().Msgf("swagger UI at http://localhost:%s/swagger/", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
		os.Exit(1)
	}

	logger.Info().Msg("server stopped")
}
