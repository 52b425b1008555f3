package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bishnutech/pixelforge/internal/accounts"
	"github.com/bishnutech/pixelforge/internal/artifacts"
	"github.com/bishnutech/pixelforge/internal/common"
	"github.com/bishnutech/pixelforge/internal/genlog"
	"github.com/bishnutech/pixelforge/internal/logging"
	"github.com/bishnutech/pixelforge/internal/session"
	"github.com/bishnutech/pixelforge/internal/settings"
)

const (
	// DefaultSize matches the provider default when the caller does not pick one.
	DefaultSize = "1024x1024"

	// DefaultTimeout bounds a single provider call.
	DefaultTimeout = 90 * time.Second

	costPerImage = 1
)

// Result is everything one successful generation produced.
type Result struct {
	Image   *Image
	Entry   *genlog.Entry
	Account *accounts.Account // balance after the charge
	// ArtifactURL is where the image was persisted, empty when no artifact
	// store is configured or the write failed.
	ArtifactURL string
}

// Service runs the generation lifecycle. Order matters: gates before money,
// money only after the provider delivered.
type Service struct {
	sessions *session.Service
	accounts *accounts.Service
	settings *settings.Service
	log      *genlog.Service
	provider Provider
	store    artifacts.Store // optional
	timeout  time.Duration
	logger   logging.Logger
}

func NewService(
	sessions *session.Service,
	accs *accounts.Service,
	sets *settings.Service,
	log *genlog.Service,
	provider Provider,
	store artifacts.Store,
	timeout time.Duration,
	logger logging.Logger,
) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		sessions: sessions,
		accounts: accs,
		settings: sets,
		log:      log,
		provider: provider,
		store:    store,
		timeout:  timeout,
		logger:   logger,
	}
}

// Generate runs one attempt for the signed-in account.
//
// Rejections before the provider call (no session, maintenance, empty
// prompt, empty balance) charge nothing and write no log entry. Once the
// provider has been called, the attempt is always logged; credits are
// charged only when it succeeded.
func (s *Service) Generate(ctx context.Context, prompt, size string) (*Result, error) {
	acct, err := s.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}

	if !acct.IsAdmin() {
		cur, err := s.settings.Get(ctx)
		if err != nil {
			return nil, err
		}
		if cur.MaintenanceMode {
			return nil, common.ErrMaintenance
		}
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, common.ErrEmptyPrompt
	}
	if size == "" {
		size = DefaultSize
	}

	if acct.Credits < costPerImage {
		return nil, common.ErrInsufficientCredits
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	img, err := s.provider.Generate(callCtx, prompt, size)
	if err != nil {
		// the attempt reached the provider, so it is recorded even if the
		// caller has already gone away
		lctx := context.WithoutCancel(ctx)
		if _, logErr := s.log.Record(lctx, acct.ID, prompt, size, genlog.StatusFailed); logErr != nil {
			s.logger.Error(lctx, "failed to record failed generation", "error", logErr)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrProviderFailure, err)
	}

	// charge and record on a detached context: a cancellation between the
	// provider response and here must not leave a free image
	dctx := context.WithoutCancel(ctx)

	updated, err := s.accounts.Deduct(dctx, acct.ID, costPerImage)
	if err != nil {
		return nil, fmt.Errorf("generation succeeded but charge failed: %w", err)
	}

	entry, err := s.log.Record(dctx, acct.ID, prompt, size, genlog.StatusSuccess)
	if err != nil {
		return nil, fmt.Errorf("generation succeeded but log append failed: %w", err)
	}

	res := &Result{Image: img, Entry: entry, Account: updated}

	if s.store != nil {
		key := artifactKey(entry, img.MediaType)
		url, err := s.store.Put(dctx, key, img.Data, img.MediaType)
		if err != nil {
			// persistence is best effort; the image is still returned
			s.logger.Warn(dctx, "failed to persist artifact", "key", key, "error", err)
		} else {
			res.ArtifactURL = url
		}
	}

	return res, nil
}

// History returns the signed-in account's attempts, most recent first.
func (s *Service) History(ctx context.Context) ([]genlog.Entry, error) {
	acct, err := s.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}
	return s.log.ListForAccount(ctx, acct.ID)
}

func artifactKey(e *genlog.Entry, mediaType string) string {
	d := e.CreatedAt
	return fmt.Sprintf("images/%d/%02d/%02d/%s%s", d.Year(), d.Month(), d.Day(), e.ID, extFor(mediaType))
}

func extFor(mediaType string) string {
	switch mediaType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
