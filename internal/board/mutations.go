package board

import (
	"strings"

	"github.com/google/uuid"

	"taskboard.com/taskboard/internal/constants"
	model "taskboard.com/taskboard/internal/models"
)

// newTaskID is swapped out in tests.
var newTaskID = func() string {
	return uuid.Must(uuid.NewV7()).String()
}

// AddTask prepends a new task built from draft to column. The task is owned
// by draft.UserEmail.
func AddTask(columns model.Columns, column constants.Column, draft model.Draft) (model.Columns, bool) {
	out := columns.Clone()
	if !column.Valid() || isBlank(draft.Title) {
		return out, false
	}

	task := model.Task{
		ID:          newTaskID(),
		Title:       draft.Title,
		Description: draft.Description,
		DateTime:    draft.DateTime,
		FileName:    draft.FileName,
		Priority:    normalizePriority(draft.Priority),
		UserEmail:   draft.UserEmail,
	}

	out.Set(column, append([]model.Task{task}, out.Get(column)...))
	return out, true
}

// UpdateTask rewrites the editable fields of the task with id, wherever it
// is. Id, owner, pin state and position are kept.
func UpdateTask(columns model.Columns, id string, fields model.Draft) (model.Columns, bool) {
	out := columns.Clone()
	if isBlank(fields.Title) {
		return out, false
	}

	column, idx, ok := out.Find(id)
	if !ok {
		return out, false
	}

	tasks := out.Get(column)
	task := tasks[idx]
	task.Title = fields.Title
	task.Description = fields.Description
	task.DateTime = fields.DateTime
	task.FileName = fields.FileName
	task.Priority = normalizePriority(fields.Priority)
	tasks[idx] = task

	return out, true
}

func DeleteTask(columns model.Columns, column constants.Column, id string) (model.Columns, bool) {
	out := columns.Clone()

	tasks := out.Get(column)
	idx := indexOf(tasks, id)
	if idx < 0 {
		return out, false
	}

	out.Set(column, remove(tasks, idx))
	return out, true
}

// TogglePin flips the pin and moves only that task: to the front of its
// column when pinned, to the back when unpinned.
func TogglePin(columns model.Columns, column constants.Column, id string) (model.Columns, bool) {
	out := columns.Clone()

	tasks := out.Get(column)
	idx := indexOf(tasks, id)
	if idx < 0 {
		return out, false
	}

	task := tasks[idx]
	task.Pinned = !task.Pinned
	rest := remove(tasks, idx)

	if task.Pinned {
		out.Set(column, append([]model.Task{task}, rest...))
	} else {
		out.Set(column, append(rest, task))
	}
	return out, true
}

func MarkCompleted(columns model.Columns, column constants.Column, id string) (model.Columns, bool) {
	out := columns.Clone()
	if column.Terminal() {
		return out, false
	}

	tasks := out.Get(column)
	idx := indexOf(tasks, id)
	if idx < 0 {
		return out, false
	}

	task := tasks[idx]
	out.Set(column, remove(tasks, idx))
	out.Completed = append([]model.Task{task}, out.Completed...)
	return out, true
}

// MoveTask is the drag-and-drop transition. A destination index past the end
// of dst appends.
func MoveTask(columns model.Columns, src constants.Column, srcIdx int, dst constants.Column, dstIdx int) (model.Columns, bool) {
	out := columns.Clone()
	if !CanMove(src, dst) {
		return out, false
	}

	from := out.Get(src)
	if srcIdx < 0 || srcIdx >= len(from) || dstIdx < 0 {
		return out, false
	}

	task := from[srcIdx]
	out.Set(src, remove(from, srcIdx))

	to := out.Get(dst)
	if dstIdx > len(to) {
		dstIdx = len(to)
	}
	out.Set(dst, insert(to, dstIdx, task))
	return out, true
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func normalizePriority(p constants.Priority) constants.Priority {
	if p.Valid() {
		return p
	}
	return constants.PriorityLow
}

func indexOf(tasks []model.Task, id string) int {
	for i, task := range tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}

func remove(tasks []model.Task, idx int) []model.Task {
	out := make([]model.Task, 0, len(tasks)-1)
	out = append(out, tasks[:idx]...)
	return append(out, tasks[idx+1:]...)
}

func insert(tasks []model.Task, idx int, task model.Task) []model.Task {
	out := make([]model.Task, 0, len(tasks)+1)
	out = append(out, tasks[:idx]...)
	out = append(out, task)
	return append(out, tasks[idx:]...)
}
