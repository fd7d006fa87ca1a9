package board

import (
	"github.com/bytedance/sonic"

	model "taskboard.com/taskboard/internal/models"
)

func encode(columns model.Columns) ([]byte, error) {
	return sonic.Marshal(columns.Clone())
}

// decode tolerates missing columns; they come back empty.
func decode(data []byte) (model.Columns, error) {
	var columns model.Columns
	if err := sonic.Unmarshal(data, &columns); err != nil {
		return model.EmptyColumns(), err
	}
	return columns.Clone(), nil
}
