package generation

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/bishnutech/pixelforge/internal/accounts"
	"github.com/bishnutech/pixelforge/internal/artifacts"
	"github.com/bishnutech/pixelforge/internal/common"
	"github.com/bishnutech/pixelforge/internal/genlog"
	"github.com/bishnutech/pixelforge/internal/logging"
	"github.com/bishnutech/pixelforge/internal/session"
	"github.com/bishnutech/pixelforge/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE accounts (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  credits INTEGER NOT NULL CHECK (credits >= 0),
  role TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL
);
CREATE TABLE app_settings (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  signup_credits INTEGER NOT NULL,
  maintenance_mode INTEGER NOT NULL
);
INSERT INTO app_settings (id, signup_credits, maintenance_mode) VALUES (1, 100, 0);
CREATE TABLE session (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  account_id TEXT
);
INSERT INTO session (id, account_id) VALUES (1, NULL);
CREATE TABLE generation_log (
  id TEXT PRIMARY KEY,
  account_id TEXT NOT NULL,
  prompt TEXT NOT NULL,
  size TEXT NOT NULL,
  status TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

type fakeProvider struct {
	img   *Image
	err   error
	calls int
	// hook runs inside Generate, before returning
	hook func(ctx context.Context)
}

func (p *fakeProvider) Generate(ctx context.Context, prompt, size string) (*Image, error) {
	p.calls++
	if p.hook != nil {
		p.hook(ctx)
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.img, nil
}

type fixture struct {
	svc      *Service
	sessions *session.Service
	accounts *accounts.Service
	settings *settings.Service
	log      *genlog.Service
	provider *fakeProvider
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := setupDB(t)

	f := &fixture{
		accounts: accounts.NewService(accounts.NewSQLiteRepository(db)),
		settings: settings.NewService(settings.NewSQLiteRepository(db)),
		log:      genlog.NewService(genlog.NewSQLiteRepository(db)),
		provider: &fakeProvider{img: &Image{Data: []byte("png"), MediaType: "image/png"}},
	}
	f.sessions = session.NewService(session.NewSQLiteRepository(db), f.accounts, f.settings)

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	f.svc = NewService(f.sessions, f.accounts, f.settings, f.log, f.provider, nil, 0, logger)
	return f
}

func signIn(t *testing.T, f *fixture, credits int64) *accounts.Account {
	t.Helper()
	ctx := context.Background()
	acct, err := f.sessions.Signup(ctx, "Alice", "alice@example.com", "pw")
	require.NoError(t, err)
	acct, err = f.accounts.SetCredits(ctx, acct.ID, credits)
	require.NoError(t, err)
	return acct
}

func TestGenerate_Success_ChargesOneCredit(t *testing.T) {
	f := setup(t)
	acct := signIn(t, f, 5)
	ctx := context.Background()

	res, err := f.svc.Generate(ctx, "a red fox", "")
	require.NoError(t, err)

	assert.Equal(t, []byte("png"), res.Image.Data)
	assert.Equal(t, int64(4), res.Account.Credits)
	assert.Equal(t, DefaultSize, res.Entry.Size)
	assert.Equal(t, genlog.StatusSuccess, res.Entry.Status)

	entries, err := f.log.ListForAccount(ctx, acct.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a red fox", entries[0].Prompt)
}

func TestGenerate_TrimsPrompt(t *testing.T) {
	f := setup(t)
	signIn(t, f, 5)

	res, err := f.svc.Generate(context.Background(), "  a red fox  ", "512x512")
	require.NoError(t, err)
	assert.Equal(t, "a red fox", res.Entry.Prompt)
	assert.Equal(t, "512x512", res.Entry.Size)
}

func TestGenerate_EmptyPrompt_NoCallNoEntry(t *testing.T) {
	f := setup(t)
	acct := signIn(t, f, 5)
	ctx := context.Background()

	_, err := f.svc.Generate(ctx, "   ", "")
	assert.ErrorIs(t, err, common.ErrEmptyPrompt)
	assert.Zero(t, f.provider.calls)

	entries, err := f.log.ListForAccount(ctx, acct.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerate_ZeroBalance_NoCallNoEntry(t *testing.T) {
	f := setup(t)
	acct := signIn(t, f, 0)
	ctx := context.Background()

	_, err := f.svc.Generate(ctx, "a red fox", "")
	assert.ErrorIs(t, err, common.ErrInsufficientCredits)
	assert.Zero(t, f.provider.calls)

	entries, err := f.log.ListForAccount(ctx, acct.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	cur, err := f.accounts.GetByID(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cur.Credits)
}

func TestGenerate_ProviderFailure_NoChargeFailedEntry(t *testing.T) {
	f := setup(t)
	f.provider.err = errors.New("upstream 500")
	acct := signIn(t, f, 5)
	ctx := context.Background()

	_, err := f.svc.Generate(ctx, "a red fox", "")
	assert.ErrorIs(t, err, common.ErrProviderFailure)

	cur, err := f.accounts.GetByID(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), cur.Credits)

	entries, err := f.log.ListForAccount(ctx, acct.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, genlog.StatusFailed, entries[0].Status)
}

func TestGenerate_NotAuthenticated(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Generate(context.Background(), "a red fox", "")
	assert.ErrorIs(t, err, common.ErrNotAuthenticated)
	assert.Zero(t, f.provider.calls)
}

func TestGenerate_Maintenance_BlocksStandardAllowsAdmin(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	signIn(t, f, 5)
	_, err := f.settings.SetMaintenanceMode(ctx, true)
	require.NoError(t, err)

	_, err = f.svc.Generate(ctx, "a red fox", "")
	assert.ErrorIs(t, err, common.ErrMaintenance)
	assert.Zero(t, f.provider.calls)

	// an admin session generates through maintenance
	admin, err := f.accounts.Create(ctx, "Root", "root@example.com", "pw", 10, accounts.RoleAdmin)
	require.NoError(t, err)
	_, err = f.sessions.Login(ctx, admin.Email, "pw")
	require.NoError(t, err)

	_, err = f.svc.Generate(ctx, "a red fox", "")
	assert.NoError(t, err)
}

// A caller vanishing right after the provider responds must not get a free
// image: the charge and the success entry go through on a detached context.
func TestGenerate_CancelAfterProviderSuccess_StillCharges(t *testing.T) {
	f := setup(t)
	acct := signIn(t, f, 5)

	ctx, cancel := context.WithCancel(context.Background())
	f.provider.hook = func(context.Context) { cancel() }

	res, err := f.svc.Generate(ctx, "a red fox", "")
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Account.Credits)

	entries, err := f.log.ListForAccount(context.Background(), acct.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, genlog.StatusSuccess, entries[0].Status)
}

func TestGenerate_PersistsArtifact(t *testing.T) {
	dir := t.TempDir()
	db := setupDB(t)

	accs := accounts.NewService(accounts.NewSQLiteRepository(db))
	sets := settings.NewService(settings.NewSQLiteRepository(db))
	log := genlog.NewService(genlog.NewSQLiteRepository(db))
	sessions := session.NewService(session.NewSQLiteRepository(db), accs, sets)
	provider := &fakeProvider{img: &Image{Data: []byte("png"), MediaType: "image/png"}}
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	svc := NewService(sessions, accs, sets, log, provider, artifacts.NewFSStore(dir), 0, logger)

	ctx := context.Background()
	_, err := sessions.Signup(ctx, "Alice", "alice@example.com", "pw")
	require.NoError(t, err)

	res, err := svc.Generate(ctx, "a red fox", "")
	require.NoError(t, err)
	require.NotEmpty(t, res.ArtifactURL)
	assert.FileExists(t, res.ArtifactURL)
}

func TestHistory_RequiresSession(t *testing.T) {
	f := setup(t)

	_, err := f.svc.History(context.Background())
	assert.ErrorIs(t, err, common.ErrNotAuthenticated)
}

func TestHistory_ReturnsOwnEntriesNewestFirst(t *testing.T) {
	f := setup(t)
	signIn(t, f, 5)
	ctx := context.Background()

	_, err := f.svc.Generate(ctx, "first", "")
	require.NoError(t, err)
	_, err = f.svc.Generate(ctx, "second", "")
	require.NoError(t, err)

	got, err := f.svc.History(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].Prompt)
	assert.Equal(t, "first", got[1].Prompt)
}
