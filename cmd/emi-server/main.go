package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/emi-calculator/internal/config"
	"github.com/iwvelando/emi-calculator/internal/exchange"
	"github.com/iwvelando/emi-calculator/internal/server"
	"github.com/iwvelando/emi-calculator/pkg/constants"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to calculator configuration file")
	address := flag.String("address", "", "listen address override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	serverConf, err := server.LoadConfig(*serverConfigLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *serverConfigLocation, err)
		os.Exit(1)
	}
	if *address != "" {
		serverConf.Address = *address
	}

	logger, err := config.NewLogger(serverConf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	conf := config.Default()
	if _, statErr := os.Stat(*configLocation); !errors.Is(statErr, fs.ErrNotExist) {
		conf, err = config.LoadConfiguration(*configLocation)
		if err != nil {
			logger.Fatal("failed to load calculator configuration",
				zap.String("op", "main"),
				zap.String("path", *configLocation),
				zap.Error(err),
			)
		}
	}
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	var cache exchange.Cache = exchange.NewMemoryCache()
	if conf.Exchange.RedisAddr != "" {
		redisCache := exchange.NewRedisCache(conf.Exchange.RedisAddr)
		defer func() {
			_ = redisCache.Close()
		}()
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			logger.Warn("redis unavailable, exchange rates will be fetched on every cache miss",
				zap.String("op", "main"),
				zap.String("addr", conf.Exchange.RedisAddr),
				zap.Error(err),
			)
		}
		cancel()
		cache = redisCache
	}

	client := exchange.NewClient(logger, conf.Exchange)
	rates := exchange.NewService(logger, client, cache, client.Base(), conf.Exchange.CacheTTL)

	var limiter *server.RateLimiter
	if serverConf.RateLimit.Requests > 0 {
		limiter = server.NewRateLimiter(serverConf.RateLimit.Requests, serverConf.RateLimit.Window)
		defer limiter.Stop()
	}

	handler := server.NewHandler(logger, server.Options{
		MaxRequestSize: serverConf.RequestSizeBytes(),
		MaxTermYears:   serverConf.MaxTermYears,
		Version:        version,
		Preferences:    conf.Display,
		Rates:          rates,
		Limiter:        limiter,
	})

	srv := &http.Server{
		Addr:         serverConf.Address,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting web server",
			zap.String("op", "main"),
			zap.String("address", serverConf.Address),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return
	case <-quit:
		logger.Info("shutting down server", zap.String("op", "main"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("error during server shutdown",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
