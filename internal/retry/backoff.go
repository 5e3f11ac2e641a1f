package retry

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
)

// Config configures retry behavior with exponential backoff.
type Config struct {
	MaxRetries int           `json:"max_retries"` // Maximum number of retry attempts (default: 3)
	BaseDelay  time.Duration `json:"base_delay"`  // Base delay between retries (default: 500ms)
	MaxDelay   time.Duration `json:"max_delay"`   // Maximum delay between retries (default: 10s)
	Multiplier float64       `json:"multiplier"`  // Exponential backoff multiplier (default: 2.0)
	Jitter     bool          `json:"jitter"`      // Add random jitter to prevent thundering herd
}

// DefaultConfig returns a retry configuration with sensible defaults for
// read-only API calls.
func DefaultConfig() Config {
	return Config{
		MaxRetries: 3,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   10 * time.Second,
		Multiplier: 2.0,
		Jitter:     true,
	}
}

// Do executes op with exponential backoff, honoring context cancellation
// between attempts. The last error is returned when all attempts fail.
func Do(ctx context.Context, cfg Config, op func() error) error {
	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op()
		if lastErr == nil {
			return nil
		}

		if attempt == cfg.MaxRetries {
			break
		}

		delay := backoffDelay(cfg, attempt)
		log.Debug().
			Err(lastErr).
			Int("attempt", attempt+1).
			Dur("delay", delay).
			Msg("retrying after error")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return lastErr
}

func backoffDelay(cfg Config, attempt int) time.Duration {
	delay := float64(cfg.BaseDelay) * math.Pow(cfg.Multiplier, float64(attempt))
	if cfg.Jitter {
		// Up to 25% random jitter on top of the computed delay.
		delay += delay * 0.25 * rand.Float64()
	}
	if maxDelay := float64(cfg.MaxDelay); delay > maxDelay {
		delay = maxDelay
	}
	return time.Duration(delay)
}
