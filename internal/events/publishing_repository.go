package events

import (
	"context"

	log "github.com/sirupsen/logrus"

	repository "taskboard.com/taskboard/internal/repositories"
)

// PublishingRepository announces every successful write of the wrapped
// repository. A failed announcement does not fail the write.
type PublishingRepository struct {
	repository.RecordRepository
	publisher Publisher
}

func NewPublishingRepository(repo repository.RecordRepository, publisher Publisher) *PublishingRepository {
	return &PublishingRepository{
		RecordRepository: repo,
		publisher:        publisher,
	}
}

func (p *PublishingRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := p.RecordRepository.Set(ctx, key, value); err != nil {
		return err
	}
	p.announce(ctx, key)
	return nil
}

func (p *PublishingRepository) Delete(ctx context.Context, key string) error {
	if err := p.RecordRepository.Delete(ctx, key); err != nil {
		return err
	}
	p.announce(ctx, key)
	return nil
}

func (p *PublishingRepository) announce(ctx context.Context, key string) {
	if err := p.publisher.Publish(ctx, key); err != nil {
		log.WithError(err).WithField("key", key).Warn("events: failed to publish change")
	}
}
