package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

const subscriberBuffer = 16

// Broker fans changes out to in-process subscribers. A subscriber that is
// not keeping up loses changes rather than blocking the writer.
type Broker struct {
	mu   sync.Mutex
	subs map[chan Change]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[chan Change]struct{})}
}

func (b *Broker) Publish(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subs {
		select {
		case ch <- Change{Key: key}:
		default:
			log.WithField("key", key).Warn("events: subscriber is full, dropping change")
		}
	}
	return nil
}

func (b *Broker) Subscribe(ctx context.Context) (<-chan Change, error) {
	ch := make(chan Change, subscriberBuffer)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, ch)
		close(ch)
		b.mu.Unlock()
	}()

	return ch, nil
}
