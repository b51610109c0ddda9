package time

import (
	"testing"
	"time"

	"github.com/turaincash/mobcash-wallet/internal/domain/port/core"
	"github.com/stretchr/testify/assert"
)

func TestFixedTimeProvider(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := NewFixedTimeProvider(start)

	assert.Equal(t, start, clock.Now())

	clock.Advance(5 * core.Minute)
	assert.Equal(t, start.Add(5*time.Minute), clock.Now())
	assert.Equal(t, 5*core.Minute, clock.Since(start))
}

func TestFixedTimeProviderTick(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := NewFixedTimeProvider(start)

	ticks, stop := clock.NewTicker(core.Second)
	select {
	case <-ticks:
		t.Fatal("ticker fired before Tick")
	default:
	}

	clock.Tick()
	clock.Tick() // dropped, previous tick unread
	assert.Equal(t, start, <-ticks)
	select {
	case <-ticks:
		t.Fatal("second tick should have been dropped")
	default:
	}

	stop()
	clock.Tick()
	select {
	case <-ticks:
		t.Fatal("stopped ticker fired")
	default:
	}
}

func TestRealTimeProvider(t *testing.T) {
	clock := NewRealTimeProvider()
	before := time.Now()
	assert.False(t, clock.Now().Before(before))

	ticks, stop := clock.NewTicker(core.Millisecond)
	defer stop()
	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("ticker did not fire")
	}
}
