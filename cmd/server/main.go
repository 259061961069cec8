package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	_ "ranked-survey/docs"
	"ranked-survey/internal/config"
	"ranked-survey/internal/domain/survey"
	api "ranked-survey/internal/http"
	"ranked-survey/internal/metrics"
	"ranked-survey/internal/worker"
)

// @title           Ranked Survey API
// @version         1.0
// @description     Ranked-choice surveys with instant-runoff results
// @BasePath        /
func main() {
	cfg := config.Load()

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	api.SetLogger(logger)
	metrics.Register()

	surveySvc := survey.NewService(survey.NewRegistry(), survey.Defaults{
		Title:    cfg.DefaultTitle,
		Choices:  cfg.DefaultChoices,
		Duration: cfg.SurveyDuration,
	}, survey.WithLogger(logger))

	ballotCh := make(chan worker.BallotEvent, cfg.EventBuffer)
	ballotWorker := worker.NewBallotWorker(ballotCh, logger)

	router := api.NewRouter(surveySvc, ballotCh, api.Limits{
		Rate:  rate.Limit(float64(cfg.VoteRatePerMinute) / 60),
		Burst: cfg.VoteBurst,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go ballotWorker.Run(ctx)

	go func() {
		logger.Info("server listening", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown error: %v", err)
	}
	cancel()

	logger.Info("server stopped")
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
