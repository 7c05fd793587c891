package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/omarshaarawi/scorebot/internal/config"
	"github.com/omarshaarawi/scorebot/internal/league"
)

const digestTimeout = 2 * time.Minute

type Subscriptions interface {
	Chats() []int64
	Following(chatID int64) []league.Key
}

// PublishFunc posts one league's game card to a chat.
type PublishFunc func(ctx context.Context, chatID int64, key league.Key) error

type Scheduler struct {
	s       gocron.Scheduler
	cron    string
	subs    Subscriptions
	publish PublishFunc
}

func NewScheduler(cfg config.Digest, subs Subscriptions, publish PublishFunc) (*Scheduler, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		slog.Error("Failed to load location, using UTC", "timezone", cfg.Timezone, "error", err)
		location = time.UTC
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:       s,
		cron:    cfg.Cron,
		subs:    subs,
		publish: publish,
	}, nil
}

func (s *Scheduler) Start() error {
	if s.cron == "" {
		slog.Info("Digest disabled, no cron expression configured")
		return nil
	}

	_, err := s.s.NewJob(
		gocron.CronJob(s.cron, false),
		gocron.NewTask(s.runDigest),
	)
	if err != nil {
		return fmt.Errorf("failed to create digest job: %w", err)
	}

	s.s.Start()
	slog.Info("Digest scheduled", "cron", s.cron)
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) runDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
	defer cancel()
	s.sendDigest(ctx)
}

// sendDigest publishes every followed league to every chat. A failure for
// one league is logged and does not stop the rest.
func (s *Scheduler) sendDigest(ctx context.Context) int {
	sent := 0
	for _, chatID := range s.subs.Chats() {
		for _, key := range s.subs.Following(chatID) {
			if ctx.Err() != nil {
				slog.Warn("Digest interrupted", "error", ctx.Err())
				return sent
			}
			if err := s.publish(ctx, chatID, key); err != nil {
				slog.Error("Failed to send digest", "chat_id", chatID, "league", key, "error", err)
				continue
			}
			sent++
		}
	}
	slog.Info("Digest sent", "count", sent)
	return sent
}
