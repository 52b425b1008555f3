package settings

import (
	"context"
	"fmt"

	"github.com/bishnutech/pixelforge/internal/common"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (*Settings, error) {
	return s.repo.Get(ctx)
}

// SetSignupCredits changes the grant applied to future signups only;
// existing balances are untouched.
func (s *Service) SetSignupCredits(ctx context.Context, credits int64) (*Settings, error) {
	if credits < 0 {
		return nil, common.ErrNegativeCredits
	}
	cur, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	cur.SignupCredits = credits
	if err := s.repo.Update(ctx, cur); err != nil {
		return nil, fmt.Errorf("failed to save signup credits: %w", err)
	}
	return cur, nil
}

// SetMaintenanceMode flips the maintenance switch. While on, non-admin
// logins and generations are rejected; admins are unaffected.
func (s *Service) SetMaintenanceMode(ctx context.Context, on bool) (*Settings, error) {
	cur, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	cur.MaintenanceMode = on
	if err := s.repo.Update(ctx, cur); err != nil {
		return nil, fmt.Errorf("failed to save maintenance mode: %w", err)
	}
	return cur, nil
}
