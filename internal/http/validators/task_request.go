package validators

import (
	"strings"

	"taskboard.com/taskboard/internal/constants"
	dto "taskboard.com/taskboard/internal/data_models"
	apperrors "taskboard.com/taskboard/internal/errors"
)

func ValidateTaskRequest(r *dto.TaskRequestData) error {
	if strings.TrimSpace(r.Title) == "" {
		return apperrors.ErrTitleRequired
	}
	if r.Priority != "" && !r.Priority.Valid() {
		return apperrors.ErrInvalidPriority
	}
	return nil
}

func ValidateColumn(column constants.Column) error {
	if !column.Valid() {
		return apperrors.ErrInvalidColumn
	}
	return nil
}

func ValidateMoveTaskRequest(r *dto.MoveTaskRequest) error {
	if err := ValidateColumn(r.Source); err != nil {
		return err
	}
	return ValidateColumn(r.Destination)
}
