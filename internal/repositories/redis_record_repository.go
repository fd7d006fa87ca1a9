package repository

import (
	"context"

	"github.com/redis/rueidis"
)

type RedisRecordRepository struct {
	client rueidis.Client
	prefix string
}

// NewRedisRecordRepository stores every record under prefix+key.
func NewRedisRecordRepository(client rueidis.Client, prefix string) *RedisRecordRepository {
	return &RedisRecordRepository{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisRecordRepository) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := r.client.B().Get().Key(r.prefix + key).Build()
	value, err := r.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return value, nil
}

func (r *RedisRecordRepository) Set(ctx context.Context, key string, value []byte) error {
	cmd := r.client.B().Set().Key(r.prefix + key).Value(rueidis.BinaryString(value)).Build()
	return r.client.Do(ctx, cmd).Error()
}

func (r *RedisRecordRepository) Delete(ctx context.Context, key string) error {
	cmd := r.client.B().Del().Key(r.prefix + key).Build()
	return r.client.Do(ctx, cmd).Error()
}
