package time

import (
	"context"
	"sync"
	"time"

	"github.com/turaincash/mobcash-wallet/internal/domain/port/core"
)

// FixedTimeProvider is a manually advanced clock for tests and replays
type FixedTimeProvider struct {
	mu      sync.Mutex
	now     time.Time
	tickers map[int]chan time.Time
	nextID  int
}

// NewFixedTimeProvider creates a clock frozen at now
func NewFixedTimeProvider(now time.Time) *FixedTimeProvider {
	return &FixedTimeProvider{now: now}
}

// Now returns the frozen time
func (p *FixedTimeProvider) Now() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.now
}

// Since returns the time elapsed between t and the frozen time
func (p *FixedTimeProvider) Since(t time.Time) core.Duration {
	return core.Duration(p.Now().Sub(t))
}

// Advance moves the clock forward
func (p *FixedTimeProvider) Advance(d core.Duration) {
	p.mu.Lock()
	p.now = p.now.Add(d.Std())
	p.mu.Unlock()
}

// WithTimeout ignores the frozen clock and uses a real deadline
func (p *FixedTimeProvider) WithTimeout(ctx context.Context, timeout core.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout.Std())
}

// NewTicker returns a channel that fires only when Tick is called
func (p *FixedTimeProvider) NewTicker(core.Duration) (<-chan time.Time, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tickers == nil {
		p.tickers = map[int]chan time.Time{}
	}
	id := p.nextID
	p.nextID++
	ch := make(chan time.Time, 1)
	p.tickers[id] = ch
	return ch, func() {
		p.mu.Lock()
		delete(p.tickers, id)
		p.mu.Unlock()
	}
}

// Tick delivers the current time to every live ticker. A ticker whose
// previous tick is still unread drops this one, like time.Ticker.
func (p *FixedTimeProvider) Tick() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ch := range p.tickers {
		select {
		case ch <- p.now:
		default:
		}
	}
}
