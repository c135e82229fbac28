// Package discord sends error logs to a Discord webhook.
package discord

import (
	"os"
	"sync"
	"time"

	"github.com/kz/discordrus"
	"github.com/sirupsen/logrus"
)

const (
	webhookURLEnvName = "DISCORD_WEBHOOK_URL"
)

// Hook is a logrus hook that posts error entries to Discord.
// Repeated messages within the limit are dropped.
type Hook struct {
	parent     logrus.Hook
	limit      time.Duration
	timestamps map[string]time.Time
	mx         sync.Mutex
}

// Option configures a Hook.
type Option func(*Hook)

// WithLimit enables the rate limiter: the same message is sent at most once per limit.
func WithLimit(limit time.Duration) Option {
	return func(h *Hook) {
		h.limit = limit
		h.timestamps = make(map[string]time.Time)
	}
}

// NewHook returns a new Hook.
func NewHook(tag, webHookURL string, opts ...Option) logrus.Hook {
	parent := discordrus.NewHook(webHookURL, logrus.ErrorLevel, discordOpts(tag))
	return newHook(parent, opts...)
}

func newHook(parent logrus.Hook, opts ...Option) *Hook {
	hook := &Hook{
		parent: parent,
	}
	for _, opt := range opts {
		opt(hook)
	}
	return hook
}

// Levels implements logrus.Hook.
func (h *Hook) Levels() []logrus.Level {
	return h.parent.Levels()
}

// Fire implements logrus.Hook.
func (h *Hook) Fire(entry *logrus.Entry) error {
	if h.shouldFire(entry) {
		return h.parent.Fire(entry)
	}
	return nil
}

func (h *Hook) shouldFire(entry *logrus.Entry) bool {
	if h.limit == 0 || h.timestamps == nil {
		return true
	}

	h.mx.Lock()
	defer h.mx.Unlock()

	if v, ok := h.timestamps[entry.Message]; ok && entry.Time.Sub(v) < h.limit {
		return false
	}
	h.timestamps[entry.Message] = entry.Time
	return true
}

func discordOpts(tag string) *discordrus.Opts {
	return &discordrus.Opts{
		Username:        tag,
		TimestampFormat: time.RFC3339,
		TimestampLocale: time.UTC,
	}
}

// GetWebhookURLFromEnv returns the webhook URL from DISCORD_WEBHOOK_URL.
func GetWebhookURLFromEnv() string {
	return os.Getenv(webhookURLEnvName)
}
