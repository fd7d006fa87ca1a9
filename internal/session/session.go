package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	apperrors "taskboard.com/taskboard/internal/errors"
	repository "taskboard.com/taskboard/internal/repositories"
)

// Identity is the signed-in user record.
type Identity struct {
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
}

// Session is a signed-in identity and the token that carries it.
type Session struct {
	Token string `json:"token"`
	Identity
}

type tokenKey struct{}

// WithToken returns a copy of ctx carrying the caller's session token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the session token carried by ctx, or "".
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Manager keeps one identity record per session token: written at login
// under "<key>:<token>", deleted at logout. Every lookup resolves the token
// carried by the request context, so callers without a token are nobody.
type Manager struct {
	repo repository.RecordRepository
	key  string
}

func NewManager(repo repository.RecordRepository, key string) *Manager {
	return &Manager{
		repo: repo,
		key:  key,
	}
}

// Key names the identity record of the session carried by ctx.
func (m *Manager) Key(ctx context.Context) string {
	return m.recordKey(TokenFrom(ctx))
}

// Login stores identity under a fresh session token and returns the token.
func (m *Manager) Login(ctx context.Context, identity Identity) (string, error) {
	identity.Email = normalizeEmail(identity.Email)
	if identity.Email == "" {
		return "", apperrors.ErrEmailRequired
	}

	data, err := sonic.Marshal(identity)
	if err != nil {
		return "", fmt.Errorf("encode identity: %w", err)
	}

	token := uuid.NewString()
	if err := m.repo.Set(ctx, m.recordKey(token), data); err != nil {
		return "", err
	}
	return token, nil
}

// Logout ends the session carried by ctx. Other sessions, including other
// sessions of the same user, stay signed in.
func (m *Manager) Logout(ctx context.Context) error {
	token := TokenFrom(ctx)
	if token == "" {
		return apperrors.ErrIdentityRequired
	}
	return m.repo.Delete(ctx, m.recordKey(token))
}

// Identity returns the user signed in under the token carried by ctx. A
// missing token or a missing or unreadable record means nobody is signed in.
func (m *Manager) Identity(ctx context.Context) (Identity, bool) {
	token := TokenFrom(ctx)
	if token == "" {
		return Identity{}, false
	}

	data, err := m.repo.Get(ctx, m.recordKey(token))
	if err != nil {
		if !errors.Is(err, repository.ErrRecordNotFound) {
			log.WithError(err).Warn("session: failed to read identity")
		}
		return Identity{}, false
	}

	var identity Identity
	if err := sonic.Unmarshal(data, &identity); err != nil || identity.Email == "" {
		return Identity{}, false
	}
	return identity, true
}

// Current returns the signed-in user's email.
func (m *Manager) Current(ctx context.Context) (string, bool) {
	identity, ok := m.Identity(ctx)
	return identity.Email, ok
}

func (m *Manager) recordKey(token string) string {
	if token == "" {
		return ""
	}
	return m.key + ":" + token
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
