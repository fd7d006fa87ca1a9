package errors

import "net/http"

var ErrMoveRejected = &Exception{
	Message:    "move is not allowed",
	StatusCode: http.StatusConflict,
}
