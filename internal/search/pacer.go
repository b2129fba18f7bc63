package search

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces out gateway calls. The pipeline is intentionally sequential;
// the fixed delay between pages and between platforms is a rate-limiting
// device, not a performance knob.
type Pacer struct {
	lim *rate.Limiter
}

// NewPacer allows one call per interval, with the first call passing
// immediately.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		return &Pacer{}
	}
	return &Pacer{lim: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next call is allowed or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.lim == nil {
		return ctx.Err()
	}
	return p.lim.Wait(ctx)
}
