package model

import "taskboard.com/taskboard/internal/constants"

// Columns is the board: one ordered task sequence per column.
type Columns struct {
	New        []Task `json:"new"`
	InProgress []Task `json:"inProgress"`
	Review     []Task `json:"review"`
	Completed  []Task `json:"completed"`
}

func EmptyColumns() Columns {
	return Columns{
		New:        []Task{},
		InProgress: []Task{},
		Review:     []Task{},
		Completed:  []Task{},
	}
}

// Get returns the sequence for column, or nil for an unknown column.
func (c *Columns) Get(column constants.Column) []Task {
	if lane := c.lane(column); lane != nil {
		return *lane
	}
	return nil
}

// Set replaces the sequence for column. Unknown columns are ignored.
func (c *Columns) Set(column constants.Column, tasks []Task) {
	if lane := c.lane(column); lane != nil {
		*lane = tasks
	}
}

func (c *Columns) lane(column constants.Column) *[]Task {
	switch column {
	case constants.ColumnNew:
		return &c.New
	case constants.ColumnInProgress:
		return &c.InProgress
	case constants.ColumnReview:
		return &c.Review
	case constants.ColumnCompleted:
		return &c.Completed
	}
	return nil
}

// Clone deep-copies every sequence. Nil sequences become empty ones.
func (c Columns) Clone() Columns {
	out := EmptyColumns()
	for _, column := range constants.Columns {
		src := c.Get(column)
		dst := make([]Task, len(src))
		copy(dst, src)
		out.Set(column, dst)
	}
	return out
}

func (c Columns) Len() int {
	return len(c.New) + len(c.InProgress) + len(c.Review) + len(c.Completed)
}

// Find returns the column and index holding the task with id.
func (c Columns) Find(id string) (constants.Column, int, bool) {
	for _, column := range constants.Columns {
		for i, task := range c.Get(column) {
			if task.ID == id {
				return column, i, true
			}
		}
	}
	return "", -1, false
}
