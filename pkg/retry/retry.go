package retry

import (
	"fmt"
	"log"
	"time"
)

// Policy retries a fallible operation a bounded number of times with a
// fixed delay between attempts.
type Policy struct {
	MaxAttempts int
	Backoff     time.Duration

	// Logf and Sleep default to log.Printf and time.Sleep.
	Logf  func(format string, args ...any)
	Sleep func(d time.Duration)
}

// Do runs op until it succeeds or MaxAttempts is reached. Each failed
// attempt is logged with its ordinal; the backoff sleep happens between
// attempts only, never after the last one. The final attempt's error is
// returned on exhaustion.
func (p Policy) Do(op func() error) error {
	logf := p.Logf
	if logf == nil {
		logf = log.Printf
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		logf("Attempt %d/%d failed: %v", attempt, attempts, err)
		if attempt < attempts {
			sleep(p.Backoff)
		}
	}

	return fmt.Errorf("all %d attempts failed: %w", attempts, err)
}
