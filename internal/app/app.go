package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/feedplay/server/internal/controller"
	connInmemory "github.com/feedplay/server/internal/repository/connection/inmemory"
	mediaurlRedis "github.com/feedplay/server/internal/repository/mediaurl/redis"
	playbackInmemory "github.com/feedplay/server/internal/repository/playback/inmemory"
	"github.com/feedplay/server/internal/repository/wssender"
	"github.com/feedplay/server/internal/service/mediaurl"
	"github.com/feedplay/server/internal/service/playback"
	"github.com/feedplay/server/pkg/metrics"
	"github.com/feedplay/server/pkg/redisclient"
)

type AppConfig struct {
	Host               string `json:"host"`
	Port               int    `json:"port"`
	LogLevel           string `json:"log_level"`
	BackendURL         string `json:"backend_url"`
	MediaURLTTLSeconds int    `json:"media_url_ttl_seconds"`
	RedisHost          string `json:"redis_host"`
	RedisPort          int    `json:"redis_port"`
	RedisPassword      string `json:"-"`
}

func (cfg *AppConfig) Validate() error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	if cfg.BackendURL == "" {
		return fmt.Errorf("backend url must be set")
	}
	if cfg.MediaURLTTLSeconds < 1 {
		return fmt.Errorf("media url ttl must be greater than 0")
	}
	return nil
}

func Run(ctx context.Context, cfg *AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: true,
	}))

	rc, err := redisclient.NewRedisClient(&redisclient.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer rc.Close()

	playbackRepo := playbackInmemory.NewRepo()
	connRepo := connInmemory.NewRepo()
	mediaURLRepo := mediaurlRedis.NewRepo(rc, time.Duration(cfg.MediaURLTTLSeconds)*time.Second)

	playbackService := playback.NewService(playbackRepo, connRepo, logger)
	mediaURLService := mediaurl.NewService(mediaURLRepo, cfg.BackendURL, logger)

	m := metrics.New()
	controller := controller.NewController(playbackService, mediaURLService, wssender.NewRepo(), m, logger)
	server := &http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), Handler: controller.Mux()}

	// graceful shutdown
	serverCtx, serverStopCtx := context.WithCancel(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig

		shutdownCtx, c := context.WithTimeout(serverCtx, 30*time.Second)
		defer c()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				log.Fatal("graceful shutdown timed out.. forcing exit.")
			}
		}()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Fatal(err)
		}
		serverStopCtx()
	}()

	logger.InfoContext(serverCtx, "starting server", "address", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	<-serverCtx.Done()

	return nil
}
