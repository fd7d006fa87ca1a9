// Package events carries "record changed" notifications between writers and
// the boards watching them.
package events

import "context"

// Change names the record key that was written or deleted.
type Change struct {
	Key string `json:"key"`
}

type Publisher interface {
	Publish(ctx context.Context, key string) error
}

// Subscriber delivers changes until ctx is done, then closes the channel.
type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan Change, error)
}
