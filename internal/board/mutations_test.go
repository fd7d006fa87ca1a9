package board

import (
	"fmt"
	"reflect"
	"testing"

	"taskboard.com/taskboard/internal/constants"
	model "taskboard.com/taskboard/internal/models"
)

func task(id string) model.Task {
	return model.Task{ID: id, Title: "task " + id, Priority: constants.PriorityLow, UserEmail: "alice@example.com"}
}

func ids(tasks []model.Task) []string {
	out := []string{}
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func sampleBoard() model.Columns {
	return model.Columns{
		New:        []model.Task{task("n1"), task("n2"), task("n3")},
		InProgress: []model.Task{task("p1")},
		Review:     []model.Task{task("r1"), task("r2")},
		Completed:  []model.Task{task("c1")},
	}
}

func TestAddTask_BlankTitleIsNoop(t *testing.T) {
	for _, title := range []string{"", " ", "\t\n "} {
		before := sampleBoard()
		after, ok := AddTask(before, constants.ColumnNew, model.Draft{Title: title, UserEmail: "alice@example.com"})
		if ok {
			t.Errorf("title %q: expected rejection", title)
		}
		if !reflect.DeepEqual(after, sampleBoard()) {
			t.Errorf("title %q: board changed", title)
		}
	}
}

func TestAddTask_UnknownColumnIsNoop(t *testing.T) {
	after, ok := AddTask(sampleBoard(), constants.Column("backlog"), model.Draft{Title: "x"})
	if ok || after.Len() != sampleBoard().Len() {
		t.Error("expected unknown column to be rejected")
	}
}

func TestAddTask_PrependsWithDefaults(t *testing.T) {
	before := sampleBoard()
	after, ok := AddTask(before, constants.ColumnReview, model.Draft{
		Title:     "Write spec",
		FileName:  "notes.txt",
		UserEmail: "alice@example.com",
	})
	if !ok {
		t.Fatal("expected task to be added")
	}

	if after.Len() != before.Len()+1 {
		t.Errorf("expected %d tasks, got %d", before.Len()+1, after.Len())
	}

	added := after.Review[0]
	if added.Title != "Write spec" || added.ID == "" {
		t.Errorf("unexpected task at index 0: %+v", added)
	}
	if added.Priority != constants.PriorityLow {
		t.Errorf("expected default priority low, got %q", added.Priority)
	}
	if added.Pinned {
		t.Error("new tasks must not be pinned")
	}
	if added.UserEmail != "alice@example.com" {
		t.Errorf("unexpected owner %q", added.UserEmail)
	}
	if got := ids(after.Review[1:]); !reflect.DeepEqual(got, []string{"r1", "r2"}) {
		t.Errorf("existing order changed: %v", got)
	}
	if len(before.Review) != 2 {
		t.Error("input board was mutated")
	}
}

func TestAddTask_IDsAreUnique(t *testing.T) {
	board := model.EmptyColumns()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		var ok bool
		board, ok = AddTask(board, constants.ColumnNew, model.Draft{Title: fmt.Sprintf("t%d", i)})
		if !ok {
			t.Fatal("add failed")
		}
		id := board.New[0].ID
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestUpdateTask(t *testing.T) {
	board := sampleBoard()
	board.Review[1].Pinned = true

	after, ok := UpdateTask(board, "r2", model.Draft{
		Title:     "renamed",
		Priority:  constants.PriorityHigh,
		UserEmail: "mallory@example.com",
	})
	if !ok {
		t.Fatal("expected update to apply")
	}

	got := after.Review[1]
	if got.ID != "r2" || got.Title != "renamed" || got.Priority != constants.PriorityHigh {
		t.Errorf("unexpected task after update: %+v", got)
	}
	if got.UserEmail != "alice@example.com" {
		t.Errorf("owner must be immutable, got %q", got.UserEmail)
	}
	if !got.Pinned {
		t.Error("pin state must survive an edit")
	}

	if _, ok := UpdateTask(board, "missing", model.Draft{Title: "x"}); ok {
		t.Error("expected unknown id to be rejected")
	}
	if _, ok := UpdateTask(board, "r2", model.Draft{Title: "  "}); ok {
		t.Error("expected blank title to be rejected")
	}
}

func TestDeleteTask(t *testing.T) {
	after, ok := DeleteTask(sampleBoard(), constants.ColumnNew, "n2")
	if !ok {
		t.Fatal("expected delete to apply")
	}
	if got := ids(after.New); !reflect.DeepEqual(got, []string{"n1", "n3"}) {
		t.Errorf("unexpected column after delete: %v", got)
	}

	if _, ok := DeleteTask(sampleBoard(), constants.ColumnReview, "n2"); ok {
		t.Error("task is not in review, expected no-op")
	}
}

func TestTogglePin(t *testing.T) {
	board := sampleBoard()

	pinned, ok := TogglePin(board, constants.ColumnNew, "n3")
	if !ok {
		t.Fatal("expected pin to apply")
	}
	if got := ids(pinned.New); !reflect.DeepEqual(got, []string{"n3", "n1", "n2"}) {
		t.Errorf("pinned task should move to the front, got %v", got)
	}
	if !pinned.New[0].Pinned {
		t.Error("expected pinned flag to be set")
	}

	unpinned, _ := TogglePin(pinned, constants.ColumnNew, "n3")
	if got := ids(unpinned.New); !reflect.DeepEqual(got, []string{"n1", "n2", "n3"}) {
		t.Errorf("unpinned task should move to the back, got %v", got)
	}
	if unpinned.New[2].Pinned {
		t.Error("expected pinned flag to be cleared")
	}

	again, _ := TogglePin(unpinned, constants.ColumnNew, "n3")
	if !again.New[0].Pinned || again.New[0].ID != "n3" {
		t.Error("second toggle should restore the pin")
	}
}

func TestMarkCompleted(t *testing.T) {
	after, ok := MarkCompleted(sampleBoard(), constants.ColumnInProgress, "p1")
	if !ok {
		t.Fatal("expected completion to apply")
	}
	if len(after.InProgress) != 0 {
		t.Error("task should leave its column")
	}
	if got := ids(after.Completed); !reflect.DeepEqual(got, []string{"p1", "c1"}) {
		t.Errorf("completed task should be prepended, got %v", got)
	}

	if _, ok := MarkCompleted(sampleBoard(), constants.ColumnCompleted, "c1"); ok {
		t.Error("completing a completed task should be a no-op")
	}
	if _, ok := MarkCompleted(sampleBoard(), constants.ColumnNew, "p1"); ok {
		t.Error("task in another column should be a no-op")
	}
}

func TestMoveTask(t *testing.T) {
	after, ok := MoveTask(sampleBoard(), constants.ColumnNew, 1, constants.ColumnReview, 1)
	if !ok {
		t.Fatal("expected move to apply")
	}
	if got := ids(after.New); !reflect.DeepEqual(got, []string{"n1", "n3"}) {
		t.Errorf("unexpected source column %v", got)
	}
	if got := ids(after.Review); !reflect.DeepEqual(got, []string{"r1", "n2", "r2"}) {
		t.Errorf("unexpected destination column %v", got)
	}
}

func TestMoveTask_PastEndAppends(t *testing.T) {
	after, ok := MoveTask(sampleBoard(), constants.ColumnReview, 0, constants.ColumnInProgress, 99)
	if !ok {
		t.Fatal("expected move to apply")
	}
	if got := ids(after.InProgress); !reflect.DeepEqual(got, []string{"p1", "r1"}) {
		t.Errorf("expected append, got %v", got)
	}
}

func TestMoveTask_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		src    constants.Column
		srcIdx int
		dst    constants.Column
		dstIdx int
	}{
		{"out of completed", constants.ColumnCompleted, 0, constants.ColumnNew, 0},
		{"completed to review", constants.ColumnCompleted, 0, constants.ColumnReview, 0},
		{"same column", constants.ColumnNew, 0, constants.ColumnNew, 2},
		{"unknown source", constants.Column("backlog"), 0, constants.ColumnNew, 0},
		{"unknown destination", constants.ColumnNew, 0, constants.Column("backlog"), 0},
		{"source index too large", constants.ColumnInProgress, 1, constants.ColumnNew, 0},
		{"negative source index", constants.ColumnNew, -1, constants.ColumnReview, 0},
		{"negative destination index", constants.ColumnNew, 0, constants.ColumnReview, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			after, ok := MoveTask(sampleBoard(), tt.src, tt.srcIdx, tt.dst, tt.dstIdx)
			if ok {
				t.Error("expected move to be rejected")
			}
			if !reflect.DeepEqual(after, sampleBoard()) {
				t.Error("rejected move changed the board")
			}
		})
	}
}

func TestCompletedIsTerminal(t *testing.T) {
	board, ok := MoveTask(sampleBoard(), constants.ColumnReview, 0, constants.ColumnCompleted, 0)
	if !ok {
		t.Fatal("review -> completed should be allowed")
	}

	for _, dst := range constants.Columns {
		for idx := 0; idx <= len(board.Completed); idx++ {
			after, moved := MoveTask(board, constants.ColumnCompleted, idx, dst, 0)
			if moved {
				t.Fatalf("task left completed for %s", dst)
			}
			if after.Completed[0].ID != "r1" {
				t.Fatal("completed column changed")
			}
		}
	}
}

func TestCanMove(t *testing.T) {
	allowed := map[constants.Column][]constants.Column{
		constants.ColumnNew:        {constants.ColumnInProgress, constants.ColumnReview, constants.ColumnCompleted},
		constants.ColumnInProgress: {constants.ColumnNew, constants.ColumnReview, constants.ColumnCompleted},
		constants.ColumnReview:     {constants.ColumnNew, constants.ColumnInProgress, constants.ColumnCompleted},
	}

	for _, src := range constants.Columns {
		for _, dst := range constants.Columns {
			want := false
			for _, a := range allowed[src] {
				if a == dst {
					want = true
				}
			}
			if got := CanMove(src, dst); got != want {
				t.Errorf("CanMove(%s, %s) = %v, want %v", src, dst, got, want)
			}
		}
	}
}
