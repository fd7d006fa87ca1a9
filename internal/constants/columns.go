package constants

type Column string

const (
	ColumnNew        Column = "new"
	ColumnInProgress Column = "inProgress"
	ColumnReview     Column = "review"
	ColumnCompleted  Column = "completed"
)

// Columns lists every board column in display order.
var Columns = []Column{ColumnNew, ColumnInProgress, ColumnReview, ColumnCompleted}

func (c Column) Valid() bool {
	switch c {
	case ColumnNew, ColumnInProgress, ColumnReview, ColumnCompleted:
		return true
	}
	return false
}

// Terminal reports whether tasks in c can never leave it.
func (c Column) Terminal() bool {
	return c == ColumnCompleted
}
