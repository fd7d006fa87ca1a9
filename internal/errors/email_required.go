package errors

import "net/http"

var ErrEmailRequired = &Exception{
	Message:    "email is required",
	StatusCode: http.StatusBadRequest,
}
