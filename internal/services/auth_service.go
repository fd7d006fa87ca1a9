package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	apperrors "taskboard.com/taskboard/internal/errors"
	"taskboard.com/taskboard/internal/session"
)

type AuthService struct {
	accounts *session.Accounts
	sessions *session.Manager
}

func NewAuthService(accounts *session.Accounts, sessions *session.Manager) *AuthService {
	return &AuthService{
		accounts: accounts,
		sessions: sessions,
	}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (session.Identity, error) {
	account, err := s.accounts.Register(ctx, name, email, password)
	if err != nil {
		return session.Identity{}, err
	}

	log.WithField("email", account.Email).Info("account registered")
	return session.Identity{Email: account.Email, FullName: account.Name}, nil
}

// Login checks the credentials and opens a new session for the account.
// The returned token identifies the caller on later requests.
func (s *AuthService) Login(ctx context.Context, email, password string) (session.Session, error) {
	if password == "" {
		return session.Session{}, apperrors.ErrPasswordRequired
	}

	account, err := s.accounts.Authenticate(ctx, email, password)
	if err != nil {
		return session.Session{}, err
	}

	identity := session.Identity{Email: account.Email, FullName: account.Name}
	token, err := s.sessions.Login(ctx, identity)
	if err != nil {
		return session.Session{}, fmt.Errorf("write session: %w", err)
	}

	log.WithField("email", identity.Email).Info("user signed in")
	return session.Session{Token: token, Identity: identity}, nil
}

// Logout ends the caller's session.
func (s *AuthService) Logout(ctx context.Context) error {
	if _, ok := s.sessions.Identity(ctx); !ok {
		return apperrors.ErrIdentityRequired
	}
	if err := s.sessions.Logout(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *AuthService) Current(ctx context.Context) (session.Identity, error) {
	identity, ok := s.sessions.Identity(ctx)
	if !ok {
		return session.Identity{}, apperrors.ErrIdentityRequired
	}
	return identity, nil
}
