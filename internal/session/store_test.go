package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ujjiboni/dashboard/internal/domain"
	"github.com/ujjiboni/dashboard/internal/repository"
	customError "github.com/ujjiboni/dashboard/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const namespace = "ujjiboni-store"

func newStore(t *testing.T, repo repository.StateRepository) *Store {
	t.Helper()
	s, err := NewStore(context.Background(), repo, namespace)
	require.NoError(t, err)
	return s
}

func TestNewStore_Defaults(t *testing.T) {
	s := newStore(t, repository.NewMemoryStateRepository())

	snap := s.Snapshot()
	assert.False(t, snap.IsAuthenticated)
	assert.Equal(t, ThemeDark, snap.Theme)
	assert.Nil(t, snap.User)
	assert.Empty(t, snap.Members)
	assert.Empty(t, s.Token())
}

func TestStore_LoginLogout(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryStateRepository()
	s := newStore(t, repo)

	sessionID, err := s.Login(ctx, "jwt-123")
	require.NoError(t, err)
	require.NoError(t, s.SetUser(ctx, domain.User{ID: "u1", FullName: "Admin", Role: domain.RoleAdmin}))
	require.NoError(t, s.SetMembers(ctx, []domain.User{{ID: "m1"}, {ID: "m2"}}))

	assert.Equal(t, "jwt-123", s.Token())
	assert.True(t, s.Snapshot().IsAuthenticated)
	assert.True(t, s.Authorize(sessionID))

	stored, err := repo.Get(ctx, TokenKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"jwt-123","sessionId":"`+sessionID+`"}`, string(stored))

	require.NoError(t, s.Logout(ctx))
	snap := s.Snapshot()
	assert.False(t, snap.IsAuthenticated)
	assert.Nil(t, snap.User)
	assert.Len(t, snap.Members, 2)
	assert.Empty(t, s.Token())
	assert.False(t, s.Authorize(sessionID))

	_, err = repo.Get(ctx, TokenKey)
	assert.ErrorIs(t, err, customError.ErrNotFound)
}

func TestStore_ToggleTheme(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, repository.NewMemoryStateRepository())

	theme, err := s.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, theme)

	theme, err = s.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)
}

func TestStore_RestoresPersistedState(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryStateRepository()

	first := newStore(t, repo)
	sessionID, err := first.Login(ctx, "jwt-abc")
	require.NoError(t, err)
	_, err = first.ToggleTheme(ctx)
	require.NoError(t, err)
	require.NoError(t, first.SetUser(ctx, domain.User{ID: "u1", Email: "a@b.co"}))

	second := newStore(t, repo)
	snap := second.Snapshot()
	assert.True(t, snap.IsAuthenticated)
	assert.Equal(t, ThemeLight, snap.Theme)
	require.NotNil(t, snap.User)
	assert.Equal(t, "a@b.co", snap.User.Email)
	assert.Equal(t, "jwt-abc", second.Token())
	assert.True(t, second.Authorize(sessionID))
}

func TestStore_PersistedDocumentShape(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryStateRepository()
	s := newStore(t, repo)
	require.NoError(t, s.SetIsAuthenticated(ctx, true))

	data, err := repo.Get(ctx, namespace)
	require.NoError(t, err)
	assert.JSONEq(t, `{"isAuthenticated":true,"theme":"dark","user":null,"members":[]}`, string(data))
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, repository.NewMemoryStateRepository())
	require.NoError(t, s.SetUser(ctx, domain.User{ID: "u1"}))
	require.NoError(t, s.SetMembers(ctx, []domain.User{{ID: "m1"}}))

	snap := s.Snapshot()
	snap.User.ID = "changed"
	snap.Members[0].ID = "changed"

	again := s.Snapshot()
	assert.Equal(t, "u1", again.User.ID)
	assert.Equal(t, "m1", again.Members[0].ID)
}

type failingRepo struct {
	repository.StateRepository
}

func (failingRepo) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestStore_PersistFailureIsStateError(t *testing.T) {
	s := newStore(t, failingRepo{repository.NewMemoryStateRepository()})

	err := s.SetIsAuthenticated(context.Background(), true)
	require.Error(t, err)
	var bizErr *customError.BusinessError
	require.True(t, errors.As(err, &bizErr))
	assert.Equal(t, customError.ErrCodeStateError, bizErr.Code)
}

func TestStore_ConcurrentMutation(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, repository.NewMemoryStateRepository())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.ToggleTheme(ctx)
			_ = s.Token()
		}()
	}
	wg.Wait()

	assert.Equal(t, ThemeDark, s.Snapshot().Theme)
}

func TestStore_RefreshSeesOtherWriters(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryStateRepository()

	server := newStore(t, repo)
	_, err := server.Login(ctx, "jwt-1")
	require.NoError(t, err)

	poller := newStore(t, repo)
	require.NoError(t, poller.Logout(ctx))

	assert.Equal(t, "jwt-1", server.Token())
	require.NoError(t, server.Refresh(ctx))
	assert.Empty(t, server.Token())
	assert.False(t, server.Snapshot().IsAuthenticated)
}

func TestStore_Authorize(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, repository.NewMemoryStateRepository())
	assert.False(t, s.Authorize(""))

	first, err := s.Login(ctx, "jwt-1")
	require.NoError(t, err)
	assert.True(t, s.Authorize(first))
	assert.False(t, s.Authorize(""))
	assert.False(t, s.Authorize("not-the-id"))

	second, err := s.Login(ctx, "jwt-2")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.False(t, s.Authorize(first))
	assert.True(t, s.Authorize(second))
}

// snoopingRepo reloads a second store right after every write so the
// test sees each intermediate state a concurrent reader could observe.
type snoopingRepo struct {
	repository.StateRepository
	reader *Store
	seen   []State
	tokens []string
}

func (r *snoopingRepo) Set(ctx context.Context, key string, value []byte) error {
	if err := r.StateRepository.Set(ctx, key, value); err != nil {
		return err
	}
	if r.reader != nil {
		if err := r.reader.Refresh(ctx); err != nil {
			return err
		}
		r.seen = append(r.seen, r.reader.Snapshot())
		r.tokens = append(r.tokens, r.reader.Token())
	}
	return nil
}

func TestStore_LoginNeverExposesHalfWrittenSession(t *testing.T) {
	ctx := context.Background()
	repo := &snoopingRepo{StateRepository: repository.NewMemoryStateRepository()}
	writer := newStore(t, repo)
	repo.reader = newStore(t, repo.StateRepository)

	_, err := writer.Login(ctx, "jwt-1")
	require.NoError(t, err)

	require.Len(t, repo.seen, 2)
	for i, snap := range repo.seen {
		assert.Equal(t, repo.tokens[i] != "", snap.IsAuthenticated, "write %d", i)
	}
	assert.True(t, repo.seen[1].IsAuthenticated)
	assert.Equal(t, "jwt-1", repo.tokens[1])
}

func TestStore_RefreshIgnoresAuthenticatedFlagWithoutToken(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryStateRepository()
	require.NoError(t, repo.Set(ctx, namespace, []byte(`{"isAuthenticated":true,"theme":"light"}`)))

	s := newStore(t, repo)
	snap := s.Snapshot()
	assert.False(t, snap.IsAuthenticated)
	assert.Equal(t, ThemeLight, snap.Theme)
	assert.Empty(t, s.Token())
}
