package errors

import "net/http"

var ErrColumnCompleted = &Exception{
	Message:    "task is already completed",
	StatusCode: http.StatusConflict,
}
