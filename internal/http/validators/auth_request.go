package validators

import (
	"strings"

	dto "taskboard.com/taskboard/internal/data_models"
	apperrors "taskboard.com/taskboard/internal/errors"
)

func ValidateRegisterRequest(r *dto.RegisterRequest) error {
	return validateCredentials(r.Email, r.Password)
}

func ValidateLoginRequest(r *dto.LoginRequest) error {
	return validateCredentials(r.Email, r.Password)
}

func validateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return apperrors.ErrEmailRequired
	}
	if password == "" {
		return apperrors.ErrPasswordRequired
	}
	return nil
}
