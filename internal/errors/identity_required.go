package errors

import "net/http"

var ErrIdentityRequired = &Exception{
	Message:    "no signed-in user",
	StatusCode: http.StatusUnauthorized,
}
