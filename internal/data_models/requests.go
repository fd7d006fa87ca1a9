package dto

import "taskboard.com/taskboard/internal/constants"

type TaskRequestData struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	DateTime    string             `json:"dateTime"`
	FileName    string             `json:"fileName"`
	Priority    constants.Priority `json:"priority"`
}

type MoveTaskRequest struct {
	Source           constants.Column `json:"source"`
	SourceIndex      int              `json:"sourceIndex"`
	Destination      constants.Column `json:"destination"`
	DestinationIndex int              `json:"destinationIndex"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
