// Package reports aggregates a board into the counts shown on the report
// page.
package reports

import (
	"taskboard.com/taskboard/internal/constants"
	model "taskboard.com/taskboard/internal/models"
)

type Report struct {
	Total               int                        `json:"total"`
	ByStatus            map[constants.Column]int   `json:"byStatus"`
	ByPriority          map[constants.Priority]int `json:"byPriority"`
	CompletedByPriority map[constants.Priority]int `json:"completedByPriority"`
}

// Build counts columns as given. Tasks whose priority is not one of the
// known levels are left out of the priority breakdowns.
func Build(columns model.Columns) Report {
	report := Report{
		ByStatus:            make(map[constants.Column]int, len(constants.Columns)),
		ByPriority:          make(map[constants.Priority]int, len(constants.Priorities)),
		CompletedByPriority: make(map[constants.Priority]int, len(constants.Priorities)),
	}
	for _, p := range constants.Priorities {
		report.ByPriority[p] = 0
		report.CompletedByPriority[p] = 0
	}

	for _, column := range constants.Columns {
		tasks := columns.Get(column)
		report.ByStatus[column] = len(tasks)
		report.Total += len(tasks)

		for _, task := range tasks {
			if !task.Priority.Valid() {
				continue
			}
			report.ByPriority[task.Priority]++
			if column == constants.ColumnCompleted {
				report.CompletedByPriority[task.Priority]++
			}
		}
	}

	return report
}
