package model

import "taskboard.com/taskboard/internal/constants"

type Task struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	DateTime    string             `json:"dateTime,omitempty"`
	FileName    string             `json:"fileName,omitempty"`
	Pinned      bool               `json:"pinned"`
	Priority    constants.Priority `json:"priority"`
	UserEmail   string             `json:"userEmail"`
}

// Draft carries the user-editable fields of a task. UserEmail is only read
// when a task is created.
type Draft struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	DateTime    string             `json:"dateTime,omitempty"`
	FileName    string             `json:"fileName,omitempty"`
	Priority    constants.Priority `json:"priority"`
	UserEmail   string             `json:"userEmail,omitempty"`
}
