/* bot.go
 * Contains the Bot type that lets scorers run matches from a Discord channel. Requires a discord bot token and an
 * APIPtr, both of which are passed in from main.go
 */

package bot

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"livescore/api/api"
	"livescore/metrics"

	"github.com/go-andiamo/splitter"
	"golang.org/x/time/rate"
)

const (
	defaultCommandInterval = 250 * time.Millisecond
	defaultCommandBurst    = 3
)

type Bot struct {
	BotToken string
	APIPtr   *api.API

	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	burst    int

	mu       sync.Mutex
	channels map[string]string // channel ID -> match ID
	limiters map[string]*rate.Limiter
}

// Option configures optional collaborators of the Bot
type Option func(*Bot)

func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) { b.logger = logger }
}

func WithMetrics(recorder *metrics.Recorder) Option {
	return func(b *Bot) { b.metrics = recorder }
}

// WithRateLimit allows burst commands per channel, refilled one every interval
func WithRateLimit(interval time.Duration, burst int) Option {
	return func(b *Bot) {
		if interval > 0 {
			b.interval = interval
		}
		if burst > 0 {
			b.burst = burst
		}
	}
}

func NewBot(botToken string, apiPtr *api.API, opts ...Option) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}
	if apiPtr == nil {
		return nil, fmt.Errorf("apiPtr is required but none was provided")
	}

	b := &Bot{
		BotToken: botToken,
		APIPtr:   apiPtr,
		interval: defaultCommandInterval,
		burst:    defaultCommandBurst,
		channels: make(map[string]string),
		limiters: make(map[string]*rate.Limiter),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// bind makes matchID the match scored in channelID
func (b *Bot) bind(channelID, matchID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.channels[channelID] = matchID
}

// matchFor returns the match bound to channelID
func (b *Bot) matchFor(channelID string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id, ok := b.channels[channelID]
	return id, ok
}

// allow reports whether channelID still has command budget
func (b *Bot) allow(channelID string) bool {
	b.mu.Lock()
	limiter, ok := b.limiters[channelID]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(b.interval), b.burst)
		b.limiters[channelID] = limiter
	}
	b.mu.Unlock()
	return limiter.Allow()
}

// splitCommand splits content on spaces, keeping quoted names such as "Patna Pirates" as one argument
func splitCommand(content string) ([]string, error) {
	spaceSplitter, err := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		return nil, err
	}
	parts, err := spaceSplitter.Split(strings.TrimSpace(content))
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.NewReplacer("\"", "", "“", "", "”", "").Replace(part)
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out, nil
}
