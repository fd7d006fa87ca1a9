package repository

import (
	"context"
	"errors"
)

// RecordRepository stores opaque values under string keys.
type RecordRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)

	Set(ctx context.Context, key string, value []byte) error

	Delete(ctx context.Context, key string) error
}

var ErrRecordNotFound = errors.New("record not found")
