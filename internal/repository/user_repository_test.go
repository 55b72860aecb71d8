package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/task-vault/internal/model"
	"github.com/iliyamo/task-vault/internal/store"
	"github.com/iliyamo/task-vault/internal/utils"
)

func newUserRepo(t *testing.T) *UserRepo {
	t.Helper()
	users, err := store.NewFileCollection[model.User](t.TempDir(), "users")
	require.NoError(t, err)
	return NewUserRepo(users, utils.MinBcryptCost)
}

func TestCreateUser(t *testing.T) {
	r := newUserRepo(t)
	ctx := context.Background()

	u, err := r.Create(ctx, "  Alice Smith  ", "  Alice@Test.COM ", "secret1")
	require.NoError(t, err)

	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "Alice Smith", u.FullName)
	assert.Equal(t, "alice@test.com", u.Email, "email is normalized to lower case")
	assert.NotEmpty(t, u.PasswordHash)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.True(t, utils.VerifyPassword(u.PasswordHash, "secret1"))
}

// Two registrations whose emails differ only by case are the same
// address and the second must be rejected.
func TestCreateUserDuplicateEmailCaseInsensitive(t *testing.T) {
	r := newUserRepo(t)
	ctx := context.Background()

	_, err := r.Create(ctx, "Alice Smith", "alice@test.com", "secret1")
	require.NoError(t, err)

	_, err = r.Create(ctx, "Alice Again", "ALICE@TEST.COM", "secret2")
	assert.ErrorIs(t, err, ErrEmailExists)

	taken, err := r.EmailTaken(ctx, "Alice@Test.Com")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestGetByEmailAndID(t *testing.T) {
	r := newUserRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, "Bob Brown", "bob@test.com", "secret1")
	require.NoError(t, err)

	byEmail, err := r.GetByEmail(ctx, "BOB@test.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob@test.com", byID.Email)

	_, err = r.GetByEmail(ctx, "nobody@test.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = r.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestEmailTakenIsReadOnly(t *testing.T) {
	r := newUserRepo(t)
	ctx := context.Background()

	taken, err := r.EmailTaken(ctx, "ghost@test.com")
	require.NoError(t, err)
	assert.False(t, taken)

	// The lookup must not have created anything.
	_, err = r.GetByEmail(ctx, "ghost@test.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateUserAssignsIncrementingIDs(t *testing.T) {
	r := newUserRepo(t)
	ctx := context.Background()

	a, err := r.Create(ctx, "User One", "one@test.com", "secret1")
	require.NoError(t, err)
	b, err := r.Create(ctx, "User Two", "two@test.com", "secret1")
	require.NoError(t, err)

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
}
