package providers

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/time/rate"
)

var _ Completer = (*Limited)(nil)

// Limited paces calls to the wrapped Completer. It never retries.
type Limited struct {
	limiter  *rate.Limiter
	provider Completer
}

func NewLimited(l *rate.Limiter, p Completer) *Limited {
	return &Limited{
		limiter:  l,
		provider: p,
	}
}

// NewLimitedPerSecond wraps p so that at most rps calls start per second.
// A non-positive rps returns p unchanged.
func NewLimitedPerSecond(rps float64, p Completer) Completer {
	if rps <= 0 {
		return p
	}

	burst := int(rps)
	if burst < 1 {
		burst = 1
	}

	return NewLimited(rate.NewLimiter(rate.Limit(rps), burst), p)
}

func (p *Limited) Complete(ctx context.Context, system, prompt string) (string, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter: %w", err)
		}
	}

	return p.provider.Complete(ctx, system, prompt)
}

// Close closes the wrapped Completer if it holds resources
func (p *Limited) Close() error {
	if c, ok := p.provider.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
