package board

import (
	"strings"

	"taskboard.com/taskboard/internal/constants"
	model "taskboard.com/taskboard/internal/models"
)

type Match struct {
	Column constants.Column `json:"column"`
	Index  int              `json:"index"`
	Task   model.Task       `json:"task"`
}

// Search returns the first task, in column order, whose title, description
// or file name contains query, ignoring case.
func Search(columns model.Columns, query string) (Match, bool) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return Match{}, false
	}

	for _, column := range constants.Columns {
		for i, task := range columns.Get(column) {
			if containsFold(task.Title, needle) ||
				containsFold(task.Description, needle) ||
				containsFold(task.FileName, needle) {
				return Match{Column: column, Index: i, Task: task}, true
			}
		}
	}
	return Match{}, false
}

func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}
