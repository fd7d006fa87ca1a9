package events

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/rueidis"

	repository "taskboard.com/taskboard/internal/repositories"
)

type recordingPublisher struct {
	keys []string
	err  error
}

func (r *recordingPublisher) Publish(_ context.Context, key string) error {
	r.keys = append(r.keys, key)
	return r.err
}

func receive(t *testing.T, ch <-chan Change) Change {
	t.Helper()
	select {
	case change, ok := <-ch:
		if !ok {
			t.Fatal("subscription closed")
		}
		return change
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
	}
	return Change{}
}

func TestBroker_FansOut(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broker := NewBroker()
	first, _ := broker.Subscribe(ctx)
	second, _ := broker.Subscribe(ctx)

	if err := broker.Publish(ctx, "tasks"); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if got := receive(t, first); got.Key != "tasks" {
		t.Errorf("first subscriber got %+v", got)
	}
	if got := receive(t, second); got.Key != "tasks" {
		t.Errorf("second subscriber got %+v", got)
	}
}

func TestBroker_ClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	broker := NewBroker()
	ch, _ := broker.Subscribe(ctx)

	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("subscription was not closed")
	}

	if err := broker.Publish(context.Background(), "tasks"); err != nil {
		t.Errorf("publishing with no subscribers should succeed, got %v", err)
	}
}

func TestBroker_SlowSubscriberDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broker := NewBroker()
	_, _ = broker.Subscribe(ctx)

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*3; i++ {
			_ = broker.Publish(ctx, "tasks")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
}

func TestPublishingRepository(t *testing.T) {
	ctx := context.Background()
	publisher := &recordingPublisher{}
	repo := NewPublishingRepository(repository.NewMemoryRecordRepository(), publisher)

	if err := repo.Set(ctx, "tasks", []byte("{}")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := repo.Delete(ctx, "user"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "tasks"); err != nil {
		t.Fatalf("get: %v", err)
	}

	if len(publisher.keys) != 2 || publisher.keys[0] != "tasks" || publisher.keys[1] != "user" {
		t.Errorf("unexpected announcements %v", publisher.keys)
	}
}

func TestPublishingRepository_PublishFailureKeepsWrite(t *testing.T) {
	ctx := context.Background()
	publisher := &recordingPublisher{err: errors.New("broker down")}
	repo := NewPublishingRepository(repository.NewMemoryRecordRepository(), publisher)

	if err := repo.Set(ctx, "tasks", []byte("{}")); err != nil {
		t.Fatalf("write should succeed even if publishing fails: %v", err)
	}
	if _, err := repo.Get(ctx, "tasks"); err != nil {
		t.Errorf("value was not stored: %v", err)
	}
}

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, rueidis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(client.Close)

	return mr, client
}

func TestRedisBroker_Publish(t *testing.T) {
	mr, client := setupTestRedis(t)

	sub := mr.NewSubscriber()
	defer sub.Close()
	sub.Subscribe("taskboard:changes")

	broker := NewRedisBroker(client, "taskboard:changes")
	if err := broker.Publish(context.Background(), "tasks"); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case msg := <-sub.Messages():
		if msg.Message != "tasks" {
			t.Errorf("unexpected message %+v", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("message was not published")
	}
}

func TestRedisBroker_SubscribeReceivesUntilCancel(t *testing.T) {
	mr, client := setupTestRedis(t)
	broker := NewRedisBroker(client, "taskboard:changes")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := broker.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	// The subscription is live once Subscribe returns, so a write made right
	// after it is not missed.
	if n := mr.PubSubNumSub("taskboard:changes")["taskboard:changes"]; n != 1 {
		t.Fatalf("expected an active subscriber when Subscribe returns, got %d", n)
	}

	if err := broker.Publish(context.Background(), "tasks"); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if change := receive(t, changes); change.Key != "tasks" {
		t.Errorf("unexpected change %+v", change)
	}

	cancel()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-changes:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("subscription channel was not closed after cancel")
		}
	}
}

func TestRedisBroker_SubscribeFailsWithoutServer(t *testing.T) {
	mr, client := setupTestRedis(t)
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := NewRedisBroker(client, "taskboard:changes").Subscribe(ctx); err == nil {
		t.Error("expected subscribe to fail when redis is unreachable")
	}
}
