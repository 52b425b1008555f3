package settings

import (
	"context"
	"database/sql"
	"testing"

	"github.com/bishnutech/pixelforge/internal/common"
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
CREATE TABLE app_settings (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  signup_credits INTEGER NOT NULL,
  maintenance_mode INTEGER NOT NULL
);
INSERT INTO app_settings (id, signup_credits, maintenance_mode) VALUES (1, 100, 0);
`)
	require.NoError(t, err)

	return db
}

func TestService_Get_Defaults(t *testing.T) {
	s := NewService(NewSQLiteRepository(setupDB(t)))

	cur, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(100), cur.SignupCredits)
	assert.False(t, cur.MaintenanceMode)
}

func TestService_SetSignupCredits(t *testing.T) {
	s := NewService(NewSQLiteRepository(setupDB(t)))
	ctx := context.Background()

	updated, err := s.SetSignupCredits(ctx, 250)
	require.NoError(t, err)
	assert.Equal(t, int64(250), updated.SignupCredits)

	cur, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(250), cur.SignupCredits)
}

func TestService_SetSignupCredits_RejectsNegative(t *testing.T) {
	s := NewService(NewSQLiteRepository(setupDB(t)))

	_, err := s.SetSignupCredits(context.Background(), -10)
	assert.ErrorIs(t, err, common.ErrNegativeCredits)
}

func TestService_SetMaintenanceMode_RoundTrip(t *testing.T) {
	s := NewService(NewSQLiteRepository(setupDB(t)))
	ctx := context.Background()

	updated, err := s.SetMaintenanceMode(ctx, true)
	require.NoError(t, err)
	assert.True(t, updated.MaintenanceMode)

	updated, err = s.SetMaintenanceMode(ctx, false)
	require.NoError(t, err)
	assert.False(t, updated.MaintenanceMode)
}
