package errors

import "net/http"

var ErrPasswordRequired = &Exception{
	Message:    "password is required",
	StatusCode: http.StatusBadRequest,
}
