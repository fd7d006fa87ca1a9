package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/rueidis"
	log "github.com/sirupsen/logrus"
)

// RedisBroker publishes changed keys on a Redis channel so that every
// process sharing the store sees every write.
type RedisBroker struct {
	client  rueidis.Client
	channel string
}

func NewRedisBroker(client rueidis.Client, channel string) *RedisBroker {
	return &RedisBroker{
		client:  client,
		channel: channel,
	}
}

func (r *RedisBroker) Publish(ctx context.Context, key string) error {
	cmd := r.client.B().Publish().Channel(r.channel).Message(key).Build()
	return r.client.Do(ctx, cmd).Error()
}

// Subscribe returns once Redis has confirmed the subscription, so a change
// published after it returns is delivered. A lost connection is
// resubscribed until ctx is done, at which point the channel is closed.
func (r *RedisBroker) Subscribe(ctx context.Context) (<-chan Change, error) {
	ch := make(chan Change, subscriberBuffer)
	ready := make(chan struct{})
	failed := make(chan error, 1)

	var confirmed sync.Once
	hooked := rueidis.WithOnSubscriptionHook(ctx, func(s rueidis.PubSubSubscription) {
		if s.Kind == "subscribe" && s.Channel == r.channel {
			confirmed.Do(func() { close(ready) })
		}
	})

	go func() {
		defer close(ch)
		for {
			err := r.client.Receive(hooked, r.client.B().Subscribe().Channel(r.channel).Build(),
				func(msg rueidis.PubSubMessage) {
					select {
					case ch <- Change{Key: msg.Message}:
					case <-ctx.Done():
					}
				})
			if ctx.Err() != nil {
				return
			}

			select {
			case <-ready:
			default:
				if err == nil {
					err = errors.New("subscription ended before it was confirmed")
				}
				failed <- err
				return
			}
			log.WithError(err).WithField("channel", r.channel).Error("events: subscription lost, reconnecting")

			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
		}
	}()

	select {
	case <-ready:
		return ch, nil
	case err := <-failed:
		return nil, fmt.Errorf("subscribe to %s: %w", r.channel, err)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
