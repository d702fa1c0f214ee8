package tracking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"screwplanner/internal/models"
)

// DefaultInterval is the publishing period matching the device's nominal
// 20 Hz sample rate.
const DefaultInterval = 50 * time.Millisecond

// Bus fans tracking samples out to subscriber channels without blocking.
// A slow subscriber drops samples rather than stalling the publisher: for
// live tracking, latency beats completeness.
type Bus struct {
	mu   sync.RWMutex
	subs map[string]chan models.TrackingSample

	published uint64
	sent      map[string]uint64
	dropped   map[string]uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		subs:    make(map[string]chan models.TrackingSample),
		sent:    make(map[string]uint64),
		dropped: make(map[string]uint64),
	}
}

// Subscribe registers a channel to receive samples and returns the
// subscriber ID. A blank id gets a generated one. The caller owns the
// channel and chooses its buffering; an existing subscription with the same
// id is replaced.
func (b *Bus) Subscribe(id string, ch chan models.TrackingSample) string {
	if id == "" {
		id = uuid.NewString()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[id] = ch
	return id
}

// Unsubscribe removes a subscriber. Its channel is not closed; the caller
// owns it.
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
}

// Publish delivers a sample to every subscriber whose channel has room and
// drops it for the rest. It never blocks.
func (b *Bus) Publish(sample models.TrackingSample) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published++
	for id, ch := range b.subs {
		select {
		case ch <- sample:
			b.sent[id]++
		default:
			b.dropped[id]++
		}
	}
}

// SubscriberStats holds delivery counters for one subscriber.
type SubscriberStats struct {
	Sent    uint64
	Dropped uint64
}

// Stats is a point-in-time view of bus delivery counters.
type Stats struct {
	Published   uint64
	Subscribers map[string]SubscriberStats
}

// Stats returns current delivery counters.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := Stats{
		Published:   b.published,
		Subscribers: make(map[string]SubscriberStats, len(b.subs)),
	}
	for id := range b.subs {
		out.Subscribers[id] = SubscriberStats{Sent: b.sent[id], Dropped: b.dropped[id]}
	}
	return out
}

// Run ticks the simulator at the given interval and publishes each sample
// while the simulator is active, until the context is canceled. A
// non-positive interval uses DefaultInterval.
func Run(ctx context.Context, sim *Simulator, bus *Bus, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if sim.Active() {
				bus.Publish(sim.Step())
			}
		}
	}
}
