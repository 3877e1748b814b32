package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"courier-console/internal/entities"
	"courier-console/pkg/apperrors"
)

var testAuth = entities.AuthState{
	ID:          42,
	Email:       "anna@example.com",
	FullName:    "Анна Петрова",
	PhoneNumber: "+992900000001",
	Roles:       []entities.Role{{ID: 1, Name: "ROLE_ADMIN"}},
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestSave_PersistsOnlyID(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, store.Save(testAuth))

	raw, err := os.ReadFile(filepath.Join(dir, "session.id"))
	require.NoError(t, err)
	// На диске только id — ни email, ни ролей.
	assert.Equal(t, "42", string(raw))

	assert.True(t, store.SignedIn())
	assert.Equal(t, testAuth, store.Auth())
}

func TestStoredID_MissingFile(t *testing.T) {
	store := newTestStore(t)

	_, err := store.StoredID()
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestStoredID_CorruptContent(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.id"), []byte("not-a-number"), 0o600))

	_, err = store.StoredID()
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestRehydrate_FetchesFreshIdentity(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(testAuth))

	// Новый store поверх той же директории: память пуста, id на диске.
	fresh, err := NewStore(store.dir, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, fresh.SignedIn())

	err = fresh.Rehydrate(context.Background(), func(ctx context.Context, id int64) (entities.AuthState, error) {
		assert.Equal(t, int64(42), id)
		return testAuth, nil
	})
	require.NoError(t, err)
	assert.True(t, fresh.SignedIn())
	assert.Equal(t, "Анна Петрова", fresh.Auth().FullName)
}

// Неудачная регидрация очищает и память, и файл.
func TestRehydrate_FailureClearsSession(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(testAuth))

	err := store.Rehydrate(context.Background(), func(context.Context, int64) (entities.AuthState, error) {
		return entities.AuthState{}, fmt.Errorf("user disabled")
	})
	require.Error(t, err)
	assert.False(t, store.SignedIn())

	_, err = store.StoredID()
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestClear_RemovesFile(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(testAuth))

	store.Clear()

	assert.False(t, store.SignedIn())
	_, err := store.StoredID()
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}
