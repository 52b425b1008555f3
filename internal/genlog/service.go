package genlog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record appends one attempt and returns the stored entry.
func (s *Service) Record(ctx context.Context, accountID, prompt, size string, status Status) (*Entry, error) {
	e := &Entry{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Prompt:    prompt,
		Size:      size,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Append(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) ListForAccount(ctx context.Context, accountID string) ([]Entry, error) {
	return s.repo.ListForAccount(ctx, accountID)
}
