package services

import (
	"context"
	"fmt"
	"sync"

	"taskboard.com/taskboard/internal/board"
	"taskboard.com/taskboard/internal/constants"
	apperrors "taskboard.com/taskboard/internal/errors"
	model "taskboard.com/taskboard/internal/models"
	"taskboard.com/taskboard/internal/reports"
)

// Move describes a drag from one board position to another.
type Move struct {
	Source           constants.Column `json:"source"`
	SourceIndex      int              `json:"sourceIndex"`
	Destination      constants.Column `json:"destination"`
	DestinationIndex int              `json:"destinationIndex"`
}

// BoardService runs every board operation for the user signed in for the
// request context as load, mutate, save. Rejected mutations are reported as
// errors and nothing is saved.
type BoardService struct {
	mu       sync.Mutex
	store    *board.Store
	identity board.Identity
}

func NewBoardService(store *board.Store, identity board.Identity) *BoardService {
	return &BoardService{
		store:    store,
		identity: identity,
	}
}

func (s *BoardService) Board(ctx context.Context) (model.Columns, error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return model.Columns{}, err
	}
	return s.store.Load(ctx, user), nil
}

func (s *BoardService) AddTask(ctx context.Context, column constants.Column, draft model.Draft) (model.Task, error) {
	if !column.Valid() {
		return model.Task{}, apperrors.ErrInvalidColumn
	}

	next, err := s.apply(ctx, func(user string, columns model.Columns) (model.Columns, bool, error) {
		draft.UserEmail = user
		next, ok := board.AddTask(columns, column, draft)
		return next, ok, apperrors.ErrTitleRequired
	})
	if err != nil {
		return model.Task{}, err
	}
	return next.Get(column)[0], nil
}

func (s *BoardService) UpdateTask(ctx context.Context, id string, fields model.Draft) (model.Task, error) {
	next, err := s.apply(ctx, func(_ string, columns model.Columns) (model.Columns, bool, error) {
		if _, _, found := columns.Find(id); !found {
			return columns, false, apperrors.ErrTaskNotFound
		}
		next, ok := board.UpdateTask(columns, id, fields)
		return next, ok, apperrors.ErrTitleRequired
	})
	if err != nil {
		return model.Task{}, err
	}

	column, idx, _ := next.Find(id)
	return next.Get(column)[idx], nil
}

func (s *BoardService) DeleteTask(ctx context.Context, column constants.Column, id string) (model.Columns, error) {
	if !column.Valid() {
		return model.Columns{}, apperrors.ErrInvalidColumn
	}
	return s.apply(ctx, func(_ string, columns model.Columns) (model.Columns, bool, error) {
		next, ok := board.DeleteTask(columns, column, id)
		return next, ok, apperrors.ErrTaskNotFound
	})
}

func (s *BoardService) TogglePin(ctx context.Context, column constants.Column, id string) (model.Columns, error) {
	if !column.Valid() {
		return model.Columns{}, apperrors.ErrInvalidColumn
	}
	return s.apply(ctx, func(_ string, columns model.Columns) (model.Columns, bool, error) {
		next, ok := board.TogglePin(columns, column, id)
		return next, ok, apperrors.ErrTaskNotFound
	})
}

func (s *BoardService) MarkCompleted(ctx context.Context, column constants.Column, id string) (model.Columns, error) {
	if !column.Valid() {
		return model.Columns{}, apperrors.ErrInvalidColumn
	}
	if column.Terminal() {
		return model.Columns{}, apperrors.ErrColumnCompleted
	}
	return s.apply(ctx, func(_ string, columns model.Columns) (model.Columns, bool, error) {
		next, ok := board.MarkCompleted(columns, column, id)
		return next, ok, apperrors.ErrTaskNotFound
	})
}

func (s *BoardService) MoveTask(ctx context.Context, move Move) (model.Columns, error) {
	if !move.Source.Valid() || !move.Destination.Valid() {
		return model.Columns{}, apperrors.ErrInvalidColumn
	}
	if !board.CanMove(move.Source, move.Destination) {
		return model.Columns{}, apperrors.ErrMoveRejected
	}
	return s.apply(ctx, func(_ string, columns model.Columns) (model.Columns, bool, error) {
		next, ok := board.MoveTask(columns, move.Source, move.SourceIndex, move.Destination, move.DestinationIndex)
		return next, ok, apperrors.ErrTaskNotFound
	})
}

func (s *BoardService) Search(ctx context.Context, query string) (board.Match, error) {
	columns, err := s.Board(ctx)
	if err != nil {
		return board.Match{}, err
	}

	match, ok := board.Search(columns, query)
	if !ok {
		return board.Match{}, apperrors.ErrTaskNotFound
	}
	return match, nil
}

func (s *BoardService) Report(ctx context.Context) (reports.Report, error) {
	columns, err := s.Board(ctx)
	if err != nil {
		return reports.Report{}, err
	}
	return reports.Build(columns), nil
}

// Watch streams the board of the user signed in for ctx until ctx is done.
// Once that session ends fn receives an empty board.
func (s *BoardService) Watch(ctx context.Context, fn func(user string, columns model.Columns)) error {
	return s.store.Watch(ctx, s.identity, fn)
}

// apply serializes load-mutate-save within this process. When mutate
// reports no change, its error is returned and nothing is written.
func (s *BoardService) apply(
	ctx context.Context,
	mutate func(user string, columns model.Columns) (model.Columns, bool, error),
) (model.Columns, error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return model.Columns{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok, rejection := mutate(user, s.store.Load(ctx, user))
	if !ok {
		return model.Columns{}, rejection
	}

	if err := s.store.Save(ctx, user, next); err != nil {
		return model.Columns{}, fmt.Errorf("save board: %w", err)
	}
	return next, nil
}

func (s *BoardService) currentUser(ctx context.Context) (string, error) {
	user, ok := s.identity.Current(ctx)
	if !ok {
		return "", apperrors.ErrIdentityRequired
	}
	return user, nil
}
