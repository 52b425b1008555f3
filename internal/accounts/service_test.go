package accounts

import (
	"context"
	"sync"
	"testing"

	"github.com/bishnutech/pixelforge/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewSQLiteRepository(setupDB(t)))
}

func TestService_Create_HashesPassword(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	acct, err := s.Create(ctx, "Alice", "alice@example.com", "s3cret", 100, RoleStandard)
	require.NoError(t, err)

	assert.NotEmpty(t, acct.ID)
	assert.NotEqual(t, "s3cret", acct.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte("s3cret")))
	assert.Equal(t, int64(100), acct.Credits)
}

func TestService_Create_TrimsEmail(t *testing.T) {
	s := newTestService(t)

	acct, err := s.Create(context.Background(), "Alice", "  alice@example.com  ", "pw", 10, RoleStandard)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", acct.Email)
}

func TestService_Create_RejectsNegativeCredits(t *testing.T) {
	s := newTestService(t)

	_, err := s.Create(context.Background(), "Alice", "alice@example.com", "pw", -1, RoleStandard)
	assert.ErrorIs(t, err, common.ErrNegativeCredits)
}

func TestService_Authenticate(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "Alice", "alice@example.com", "s3cret", 100, RoleStandard)
	require.NoError(t, err)

	acct, err := s.Authenticate(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, acct.ID)
}

func TestService_Authenticate_WrongPassword(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "Alice", "alice@example.com", "s3cret", 100, RoleStandard)
	require.NoError(t, err)

	_, err = s.Authenticate(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestService_Authenticate_UnknownEmail(t *testing.T) {
	s := newTestService(t)

	// same error as a wrong password, so callers cannot probe for emails
	_, err := s.Authenticate(context.Background(), "nobody@example.com", "pw")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestService_GetByID_Missing(t *testing.T) {
	s := newTestService(t)

	_, err := s.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrAccountNotFound)
}

func TestService_Deduct_RejectsNonPositiveAmount(t *testing.T) {
	s := newTestService(t)

	_, err := s.Deduct(context.Background(), "id1", 0)
	assert.Error(t, err)

	_, err = s.Deduct(context.Background(), "id1", -5)
	assert.Error(t, err)
}

func TestService_SetCredits_RejectsNegative(t *testing.T) {
	s := newTestService(t)

	_, err := s.SetCredits(context.Background(), "id1", -1)
	assert.ErrorIs(t, err, common.ErrNegativeCredits)
}

// With a balance of 1, two concurrent unit deductions must resolve to exactly
// one success and one insufficient-credits failure, never a negative balance.
func TestService_Deduct_ConcurrentLastCredit(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	acct, err := s.Create(ctx, "Alice", "alice@example.com", "pw", 1, RoleStandard)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Deduct(ctx, acct.ID, 1)
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, common.ErrInsufficientCredits)
		insufficient++
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, insufficient)

	final, err := s.GetByID(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), final.Credits)
}
