package errors

import "net/http"

var ErrInvalidColumn = &Exception{
	Message:    "unknown column",
	StatusCode: http.StatusBadRequest,
}
