package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"golang.org/x/crypto/bcrypt"

	apperrors "taskboard.com/taskboard/internal/errors"
	repository "taskboard.com/taskboard/internal/repositories"
)

type Account struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash []byte `json:"passwordHash"`
}

// Accounts is the registry of email/password users, kept as one record.
type Accounts struct {
	mu   sync.Mutex
	repo repository.RecordRepository
	key  string
	cost int
}

func NewAccounts(repo repository.RecordRepository, key string) *Accounts {
	return &Accounts{
		repo: repo,
		key:  key,
		cost: bcrypt.DefaultCost,
	}
}

func (a *Accounts) Register(ctx context.Context, name, email, password string) (Account, error) {
	email = normalizeEmail(email)
	if email == "" {
		return Account{}, apperrors.ErrEmailRequired
	}
	if password == "" {
		return Account{}, apperrors.ErrPasswordRequired
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	accounts, err := a.list(ctx)
	if err != nil {
		return Account{}, err
	}
	for _, existing := range accounts {
		if existing.Email == email {
			return Account{}, apperrors.ErrEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return Account{}, fmt.Errorf("hash password: %w", err)
	}

	account := Account{Name: strings.TrimSpace(name), Email: email, PasswordHash: hash}
	accounts = append(accounts, account)

	data, err := sonic.Marshal(accounts)
	if err != nil {
		return Account{}, fmt.Errorf("encode accounts: %w", err)
	}
	if err := a.repo.Set(ctx, a.key, data); err != nil {
		return Account{}, fmt.Errorf("write accounts: %w", err)
	}
	return account, nil
}

// Authenticate does not say whether the email or the password was wrong.
func (a *Accounts) Authenticate(ctx context.Context, email, password string) (Account, error) {
	email = normalizeEmail(email)

	accounts, err := a.list(ctx)
	if err != nil {
		return Account{}, err
	}

	for _, account := range accounts {
		if account.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)) != nil {
			return Account{}, apperrors.ErrInvalidCredentials
		}
		return account, nil
	}
	return Account{}, apperrors.ErrInvalidCredentials
}

func (a *Accounts) list(ctx context.Context) ([]Account, error) {
	data, err := a.repo.Get(ctx, a.key)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read accounts: %w", err)
	}

	var accounts []Account
	if err := sonic.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}
	return accounts, nil
}
