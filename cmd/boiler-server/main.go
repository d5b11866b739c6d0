package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/boiler-optimizer/internal/cache"
	"github.com/iwvelando/boiler-optimizer/internal/logging"
	"github.com/iwvelando/boiler-optimizer/internal/optimize"
	"github.com/iwvelando/boiler-optimizer/internal/server"
	"github.com/iwvelando/boiler-optimizer/pkg/constants"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	address := flag.String("address", "", "listen address override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	_ = godotenv.Load()

	conf, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}
	if *address != "" {
		conf.Address = *address
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	var resultCache cache.Cache = cache.Nop{}
	if conf.Cache.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisCache, err := cache.NewRedis(ctx, conf.Cache.RedisURL, conf.Cache.TTLDuration())
		cancel()
		if err != nil {
			logger.Warn("response cache disabled",
				zap.String("op", "main"),
				zap.Error(err),
			)
		} else {
			resultCache = redisCache
			logger.Info("response cache enabled",
				zap.String("op", "main"),
				zap.Duration("ttl", conf.Cache.TTLDuration()),
			)
		}
	}
	defer func() {
		_ = resultCache.Close()
	}()

	service := optimize.NewService(logger, resultCache)

	srv := &http.Server{
		Addr:         conf.Address,
		Handler:      server.NewHandler(logger, service, conf.BodySizeBytes(), version),
		ReadTimeout:  conf.ReadTimeoutDuration(),
		WriteTimeout: conf.WriteTimeoutDuration(),
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("boiler-optimizer server listening",
		zap.String("op", "main"),
		zap.String("address", conf.Address),
		zap.String("version", version),
		zap.Int64("max_body_bytes", conf.BodySizeBytes()),
	)
	if err := serve(ctx, srv, logger); err != nil {
		_ = resultCache.Close()
		logger.Fatal("server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

// serve runs srv until ctx is done, then shuts it down gracefully. A listener
// failure is returned.
func serve(ctx context.Context, srv *http.Server, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down",
		zap.String("op", "main"),
	)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	return nil
}
