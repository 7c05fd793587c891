package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

type Config struct {
	TelegramBot TelegramBot
	ESPNAPI     ESPNAPI
	Selection   Selection
	Digest      Digest
	HTTP        HTTP
	Log         Log
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN" required:"true"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

type ESPNAPI struct {
	BaseURL   string        `envconfig:"ESPN_BASE_URL" default:"https://site.api.espn.com/apis/site/v2/sports"`
	UserAgent string        `envconfig:"ESPN_USER_AGENT" default:"scorebot/1.0 (telegram bot)"`
	Timeout   time.Duration `envconfig:"ESPN_TIMEOUT" default:"10s"`
}

// Selection holds the tunables of the day and game selection.
type Selection struct {
	LookaheadDays int           `envconfig:"LOOKAHEAD_DAYS" default:"14"`
	RecentWindow  time.Duration `envconfig:"RECENT_WINDOW" default:"18h"`
	GraceWindow   time.Duration `envconfig:"GRACE_WINDOW" default:"5m"`
}

type Digest struct {
	Cron     string   `envconfig:"DIGEST_CRON" default:"0 9 * * *"`
	Timezone string   `envconfig:"DIGEST_TIMEZONE" default:"America/Chicago"`
	Leagues  []string `envconfig:"DIGEST_LEAGUES"`
}

type HTTP struct {
	Addr string `envconfig:"HTTP_ADDR" default:":80"`
}

type Log struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.Selection.LookaheadDays < 0 {
		return fmt.Errorf("LOOKAHEAD_DAYS must not be negative: %d", c.Selection.LookaheadDays)
	}
	if c.Selection.RecentWindow <= 0 {
		return fmt.Errorf("RECENT_WINDOW must be positive: %s", c.Selection.RecentWindow)
	}
	if c.Selection.GraceWindow <= 0 {
		return fmt.Errorf("GRACE_WINDOW must be positive: %s", c.Selection.GraceWindow)
	}
	if strings.TrimSpace(c.Digest.Cron) != "" {
		if _, err := cron.ParseStandard(c.Digest.Cron); err != nil {
			return fmt.Errorf("invalid DIGEST_CRON %q: %w", c.Digest.Cron, err)
		}
	}
	if _, err := time.LoadLocation(c.Digest.Timezone); err != nil {
		return fmt.Errorf("invalid DIGEST_TIMEZONE %q: %w", c.Digest.Timezone, err)
	}
	return nil
}
