package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/bishnutech/pixelforge/internal/accounts"
	"github.com/bishnutech/pixelforge/internal/common"
	"github.com/bishnutech/pixelforge/internal/settings"
)

// Service owns the login lifecycle. It never caches account fields: every
// read of the current account goes back through the ledger, so credit
// changes made elsewhere are visible immediately.
type Service struct {
	repo     Repository
	accounts *accounts.Service
	settings *settings.Service
}

func NewService(repo Repository, accs *accounts.Service, sets *settings.Service) *Service {
	return &Service{repo: repo, accounts: accs, settings: sets}
}

func (s *Service) maintenanceOn(ctx context.Context) (bool, error) {
	cur, err := s.settings.Get(ctx)
	if err != nil {
		return false, err
	}
	return cur.MaintenanceMode, nil
}

// Login authenticates and points the session at the matching account.
// During maintenance only admins may sign in.
func (s *Service) Login(ctx context.Context, email, password string) (*accounts.Account, error) {
	acct, err := s.accounts.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if !acct.IsAdmin() {
		on, err := s.maintenanceOn(ctx)
		if err != nil {
			return nil, err
		}
		if on {
			return nil, common.ErrMaintenance
		}
	}

	if err := s.repo.Set(ctx, acct.ID); err != nil {
		return nil, err
	}
	return acct, nil
}

// Signup creates a standard account with the configured signup grant and
// signs it in. Maintenance blocks signups the same way it blocks logins.
func (s *Service) Signup(ctx context.Context, name, email, password string) (*accounts.Account, error) {
	on, err := s.maintenanceOn(ctx)
	if err != nil {
		return nil, err
	}
	if on {
		return nil, common.ErrMaintenance
	}

	cur, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	acct, err := s.accounts.Create(ctx, name, email, password, cur.SignupCredits, accounts.RoleStandard)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Set(ctx, acct.ID); err != nil {
		return nil, err
	}
	return acct, nil
}

// Logout clears the session pointer. Calling it with no active session
// succeeds.
func (s *Service) Logout(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

// Current resolves the session pointer to a live account record. A pointer
// at a deleted account is cleared and reported as not authenticated.
func (s *Service) Current(ctx context.Context) (*accounts.Account, error) {
	id, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotAuthenticated
		}
		return nil, err
	}

	acct, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrAccountNotFound) {
			if clearErr := s.repo.Clear(ctx); clearErr != nil {
				return nil, fmt.Errorf("failed to clear dangling session: %w", clearErr)
			}
			return nil, common.ErrNotAuthenticated
		}
		return nil, err
	}
	return acct, nil
}
