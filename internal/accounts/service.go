// Package accounts implements the account ledger: it owns every Account
// record and is the only component allowed to mutate credit balances.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bishnutech/pixelforge/internal/common"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service wraps a Repository with credential hashing and per-account
// serialization of balance mutations.
//
// Two concurrent Deduct calls for the same account are linearized twice over:
// the in-process keyed mutex orders them, and the repository's guarded
// conditional write keeps the invariant even across processes sharing one
// database.
type Service struct {
	repo  Repository
	locks sync.Map // account id -> *sync.Mutex
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) lockFor(id string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Create registers a new account. The password is bcrypt-hashed before it is
// handed to the repository; the raw secret is never stored.
func (s *Service) Create(ctx context.Context, name, email, password string, startingCredits int64, role Role) (*Account, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("email must not be empty")
	}
	if startingCredits < 0 {
		return nil, common.ErrNegativeCredits
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	acct := &Account{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Credits:      startingCredits,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	return s.repo.Create(ctx, acct)
}

// Authenticate verifies email and password and returns the matching account.
// A missing email and a wrong password both yield ErrInvalidCredentials so
// the caller cannot tell which of the two failed.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Account, error) {
	acct, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrInvalidCredentials
	}
	return acct, nil
}

// GetByID returns the live account record, or common.ErrAccountNotFound.
func (s *Service) GetByID(ctx context.Context, id string) (*Account, error) {
	acct, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrAccountNotFound
		}
		return nil, err
	}
	return acct, nil
}

// FindByEmail returns the account with the given email, or
// common.ErrAccountNotFound. Intended for administrative lookups.
func (s *Service) FindByEmail(ctx context.Context, email string) (*Account, error) {
	acct, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrAccountNotFound
		}
		return nil, err
	}
	return acct, nil
}

// List returns all accounts in insertion order.
func (s *Service) List(ctx context.Context) ([]Account, error) {
	return s.repo.List(ctx)
}

// Deduct subtracts amount credits from the account. It fails with
// common.ErrInsufficientCredits when the balance is smaller than amount and
// with common.ErrAccountNotFound for unknown ids; on success the updated
// record is returned.
func (s *Service) Deduct(ctx context.Context, id string, amount int64) (*Account, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("deduct amount must be positive, got %d", amount)
	}

	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	return s.repo.Deduct(ctx, id, amount)
}

// SetCredits is the administrative override: it writes value directly,
// bypassing the sufficiency check Deduct enforces. Negative values are
// rejected to preserve the balance invariant.
func (s *Service) SetCredits(ctx context.Context, id string, value int64) (*Account, error) {
	if value < 0 {
		return nil, common.ErrNegativeCredits
	}

	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	return s.repo.SetCredits(ctx, id, value)
}
