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

	"github.com/joho/godotenv"

	"github.com/omarshaarawi/scorebot/internal/api/espn"
	"github.com/omarshaarawi/scorebot/internal/bot"
	"github.com/omarshaarawi/scorebot/internal/config"
	"github.com/omarshaarawi/scorebot/internal/league"
	"github.com/omarshaarawi/scorebot/internal/logging"
	"github.com/omarshaarawi/scorebot/internal/metrics"
	"github.com/omarshaarawi/scorebot/internal/repository/memory"
	"github.com/omarshaarawi/scorebot/internal/scheduler"
	"github.com/omarshaarawi/scorebot/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file loaded", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}
	logging.New(cfg.Log.Level, cfg.Log.Format)

	recorder := metrics.NewRecorder()
	espnClient := espn.NewClient(cfg.ESPNAPI, recorder)
	espnAPI := espn.NewAPI(espnClient)
	gameService := service.NewGameService(espnAPI, cfg.Selection, recorder)

	repo := memory.NewRepository()
	seedDigest(repo, cfg.TelegramBot.ChatID, cfg.Digest.Leagues)

	telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, gameService, repo)
	if err != nil {
		return err
	}

	sched, err := scheduler.NewScheduler(cfg.Digest, repo, telegramBot.SendGame)
	if err != nil {
		return err
	}

	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/", healthCheckHandler)
	mux.Handle("/metrics", recorder.Handler())
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: mux}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Error starting HTTP server", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := telegramBot.Start(ctx); err != nil {
			slog.Error("Error running telegram bot", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Error stopping HTTP server", "error", err)
	}

	return nil
}

// seedDigest subscribes the configured chat to DIGEST_LEAGUES.
func seedDigest(repo *memory.Repository, chatID int64, leagues []string) {
	if chatID == 0 {
		return
	}
	for _, name := range leagues {
		key, err := league.Parse(name)
		if err != nil {
			slog.Warn("Skipping digest league", "league", name, "error", err)
			continue
		}
		repo.Follow(chatID, key)
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
