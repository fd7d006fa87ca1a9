package board

import "taskboard.com/taskboard/internal/constants"

var allowedMoves = map[constants.Column][]constants.Column{
	constants.ColumnNew:        {constants.ColumnInProgress, constants.ColumnReview, constants.ColumnCompleted},
	constants.ColumnInProgress: {constants.ColumnNew, constants.ColumnReview, constants.ColumnCompleted},
	constants.ColumnReview:     {constants.ColumnNew, constants.ColumnInProgress, constants.ColumnCompleted},
	constants.ColumnCompleted:  {},
}

// CanMove reports whether a task may be dragged from src to dst. Moves
// within one column are not transitions and are refused.
func CanMove(src, dst constants.Column) bool {
	for _, allowed := range allowedMoves[src] {
		if allowed == dst {
			return true
		}
	}
	return false
}
