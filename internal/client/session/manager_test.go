package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskify-app/taskify/internal/client/api"
)

type fakeClient struct {
	token string

	meUser *api.User
	meErr  error

	loginToken string
	loginUser  *api.User
	loginErr   error
}

func (c *fakeClient) SetToken(token string) { c.token = token }

func (c *fakeClient) Register(ctx context.Context, name, email, password string) (string, *api.User, error) {
	return c.loginToken, c.loginUser, c.loginErr
}

func (c *fakeClient) Login(ctx context.Context, email, password string) (string, *api.User, error) {
	return c.loginToken, c.loginUser, c.loginErr
}

func (c *fakeClient) Me(ctx context.Context) (*api.User, error) {
	return c.meUser, c.meErr
}

func (c *fakeClient) ListTasks(ctx context.Context) ([]api.Task, error) { return nil, nil }
func (c *fakeClient) CreateTask(ctx context.Context, draft api.TaskDraft) (*api.Task, error) {
	return nil, nil
}
func (c *fakeClient) UpdateTask(ctx context.Context, id string, patch api.TaskPatch) (*api.Task, error) {
	return nil, nil
}
func (c *fakeClient) DeleteTask(ctx context.Context, id string) error { return nil }

type memStore struct {
	values map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string][]byte)}
}

func (s *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.values[key], nil
}

func (s *memStore) Set(ctx context.Context, key string, value []byte) error {
	s.values[key] = value
	return nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	delete(s.values, key)
	return nil
}

func (s *memStore) Clear(ctx context.Context) error {
	s.values = make(map[string][]byte)
	return nil
}

func TestManager_RestoreWithoutToken(t *testing.T) {
	client := &fakeClient{}
	m := NewManager(client, newMemStore())

	require.NoError(t, m.Restore(context.Background()))
	require.False(t, m.LoggedIn())
	require.Empty(t, client.token)
}

func TestManager_RestoreValidToken(t *testing.T) {
	client := &fakeClient{meUser: &api.User{ID: "u-1", Email: "alice@example.com"}}
	store := newMemStore()
	require.NoError(t, store.Set(context.Background(), "token", []byte("tok-1")))
	m := NewManager(client, store)

	require.NoError(t, m.Restore(context.Background()))
	require.True(t, m.LoggedIn())
	require.Equal(t, "u-1", m.Current().ID)
	require.Equal(t, "tok-1", client.token)
}

func TestManager_RestoreDiscardsRejectedToken(t *testing.T) {
	client := &fakeClient{meErr: &api.APIError{StatusCode: 401, Message: "Not authorized"}}
	store := newMemStore()
	require.NoError(t, store.Set(context.Background(), "token", []byte("stale")))
	m := NewManager(client, store)

	require.NoError(t, m.Restore(context.Background()))
	require.False(t, m.LoggedIn())
	require.Empty(t, client.token)

	value, err := store.Get(context.Background(), "token")
	require.NoError(t, err)
	require.Nil(t, value)
}

func TestManager_RestoreKeepsTokenWhenServerDown(t *testing.T) {
	client := &fakeClient{meErr: api.ErrUnavailable}
	store := newMemStore()
	require.NoError(t, store.Set(context.Background(), "token", []byte("tok-1")))
	m := NewManager(client, store)

	require.ErrorIs(t, m.Restore(context.Background()), api.ErrUnavailable)
	require.False(t, m.LoggedIn())

	value, err := store.Get(context.Background(), "token")
	require.NoError(t, err)
	require.Equal(t, []byte("tok-1"), value)
}

func TestManager_LoginPersistsToken(t *testing.T) {
	client := &fakeClient{loginToken: "tok-2", loginUser: &api.User{ID: "u-2"}}
	store := newMemStore()
	m := NewManager(client, store)

	require.NoError(t, m.Login(context.Background(), "bob@example.com", "pw"))
	require.True(t, m.LoggedIn())
	require.Equal(t, "tok-2", client.token)

	value, err := store.Get(context.Background(), "token")
	require.NoError(t, err)
	require.Equal(t, []byte("tok-2"), value)
}

func TestManager_LoginFailureLeavesSessionUntouched(t *testing.T) {
	client := &fakeClient{loginErr: &api.APIError{StatusCode: 401, Message: "Invalid email or password"}}
	store := newMemStore()
	m := NewManager(client, store)

	err := m.Login(context.Background(), "bob@example.com", "wrong")
	require.ErrorIs(t, err, api.ErrUnauthorized)
	require.False(t, m.LoggedIn())

	value, gerr := store.Get(context.Background(), "token")
	require.NoError(t, gerr)
	require.Nil(t, value)
}

func TestManager_LogoutWipesLocalState(t *testing.T) {
	client := &fakeClient{loginToken: "tok-3", loginUser: &api.User{ID: "u-3"}}
	store := newMemStore()
	m := NewManager(client, store)
	require.NoError(t, m.Login(context.Background(), "eve@example.com", "pw"))
	require.NoError(t, store.Set(context.Background(), "last_filter", []byte("buy")))

	require.NoError(t, m.Logout(context.Background()))
	require.False(t, m.LoggedIn())
	require.Nil(t, m.Current())
	require.Empty(t, client.token)

	for _, key := range []string{"token", "last_filter"} {
		value, err := store.Get(context.Background(), key)
		require.NoError(t, err)
		require.Nil(t, value)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	client := &fakeClient{loginToken: "tok-4", loginUser: &api.User{ID: "u-4"}}
	m := NewManager(client, newMemStore())
	ctx := context.Background()

	// the event loop reads the identity while commands mutate it from their
	// own goroutines; run both sides and let the race detector judge
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			_ = m.Login(ctx, "eve@example.com", "pw")
			_ = m.Logout(ctx)
		}
	}()

	for i := 0; i < 1000; i++ {
		_ = m.LoggedIn()
		_ = m.Current()
	}
	<-done

	require.False(t, m.LoggedIn())
}
