package board

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"taskboard.com/taskboard/internal/constants"
	"taskboard.com/taskboard/internal/events"
	model "taskboard.com/taskboard/internal/models"
	repository "taskboard.com/taskboard/internal/repositories"
)

// Identity resolves the user signed in for ctx. Key names the record that
// user is read from, so that Watch can react to a login or logout.
type Identity interface {
	Current(ctx context.Context) (string, bool)
	Key(ctx context.Context) string
}

// Store reads and writes the board record shared by every user.
type Store struct {
	repo       repository.RecordRepository
	subscriber events.Subscriber
	key        string
}

func NewStore(repo repository.RecordRepository, subscriber events.Subscriber, key string) *Store {
	return &Store{
		repo:       repo,
		subscriber: subscriber,
		key:        key,
	}
}

// Load returns user's board. A missing, unreadable or corrupt record is an
// empty board.
func (s *Store) Load(ctx context.Context, user string) model.Columns {
	if user == "" {
		return model.EmptyColumns()
	}

	all, err := s.readAll(ctx)
	if err != nil {
		log.WithError(err).WithField("key", s.key).Warn("board: load fell back to an empty board")
		return model.EmptyColumns()
	}

	return filterOwner(all, user)
}

// Save replaces user's tasks in the shared record and leaves every other
// user's tasks where they were. Tasks in columns owned by someone else are
// dropped. Saving without a user does nothing.
func (s *Store) Save(ctx context.Context, user string, columns model.Columns) error {
	if user == "" {
		return nil
	}

	all, err := s.readAll(ctx)
	if err != nil {
		return fmt.Errorf("read board record: %w", err)
	}

	merged := model.EmptyColumns()
	for _, column := range constants.Columns {
		tasks := make([]model.Task, 0, len(all.Get(column))+len(columns.Get(column)))
		for _, task := range all.Get(column) {
			if task.UserEmail != user {
				tasks = append(tasks, task)
			}
		}
		for _, task := range columns.Get(column) {
			if task.UserEmail == user {
				tasks = append(tasks, task)
			}
		}
		merged.Set(column, tasks)
	}

	data, err := encode(merged)
	if err != nil {
		return fmt.Errorf("encode board record: %w", err)
	}
	if err := s.repo.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("write board record: %w", err)
	}
	return nil
}

// Watch calls fn with the current user's board now and again after every
// change to the board or identity records, until ctx is done or the
// subscription ends.
func (s *Store) Watch(ctx context.Context, identity Identity, fn func(user string, columns model.Columns)) error {
	changes, err := s.subscriber.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe to board changes: %w", err)
	}

	identityKey := identity.Key(ctx)
	reload := func() {
		user, _ := identity.Current(ctx)
		fn(user, s.Load(ctx, user))
	}

	reload()
	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			if change.Key == s.key || (identityKey != "" && change.Key == identityKey) {
				reload()
			}
		}
	}
}

// readAll returns the whole record. Absent or corrupt data reads as empty;
// only repository failures are errors.
func (s *Store) readAll(ctx context.Context) (model.Columns, error) {
	data, err := s.repo.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return model.EmptyColumns(), nil
		}
		return model.EmptyColumns(), err
	}

	all, err := decode(data)
	if err != nil {
		log.WithError(err).WithField("key", s.key).Warn("board: record is corrupt, treating it as empty")
		return model.EmptyColumns(), nil
	}
	return all, nil
}

func filterOwner(all model.Columns, user string) model.Columns {
	out := model.EmptyColumns()
	for _, column := range constants.Columns {
		tasks := []model.Task{}
		for _, task := range all.Get(column) {
			if task.UserEmail == user {
				tasks = append(tasks, task)
			}
		}
		out.Set(column, tasks)
	}
	return out
}
