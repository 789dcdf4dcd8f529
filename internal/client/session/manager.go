// Package session keeps track of the authenticated user across client
// restarts. The access token is persisted in the local metadata store and
// revalidated against the server on startup.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/taskify-app/taskify/internal/client/api"
	"github.com/taskify-app/taskify/internal/client/repositories/metadata"
)

const tokenKey = "token"

// Manager owns the client's authentication state. Methods are safe for
// concurrent use; the UI event loop reads the identity while commands
// mutate it from their own goroutines.
type Manager struct {
	client api.Client
	meta   metadata.Repository

	mu   sync.RWMutex
	user *api.User
}

func NewManager(client api.Client, meta metadata.Repository) *Manager {
	return &Manager{client: client, meta: meta}
}

// Restore loads a previously persisted token and validates it with the
// server. A missing or rejected token leaves the session unauthenticated
// without error; the stale token is discarded. Transport failures are
// returned so the caller can distinguish "logged out" from "server down".
func (m *Manager) Restore(ctx context.Context) error {
	token, err := m.meta.Get(ctx, tokenKey)
	if err != nil {
		return fmt.Errorf("failed to load session token: %w", err)
	}
	if len(token) == 0 {
		return nil
	}

	m.client.SetToken(string(token))

	user, err := m.client.Me(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			m.client.SetToken("")
			if derr := m.meta.Delete(ctx, tokenKey); derr != nil {
				return fmt.Errorf("failed to discard stale token: %w", derr)
			}
			return nil
		}
		return err
	}

	m.setUser(user)
	return nil
}

// Login authenticates with the server and persists the issued token.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	token, user, err := m.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return m.establish(ctx, token, user)
}

// Register creates an account and starts a session with the issued token.
func (m *Manager) Register(ctx context.Context, name, email, password string) error {
	token, user, err := m.client.Register(ctx, name, email, password)
	if err != nil {
		return err
	}
	return m.establish(ctx, token, user)
}

func (m *Manager) establish(ctx context.Context, token string, user *api.User) error {
	m.client.SetToken(token)
	m.setUser(user)
	if err := m.meta.Set(ctx, tokenKey, []byte(token)); err != nil {
		return fmt.Errorf("failed to persist session token: %w", err)
	}
	return nil
}

// Logout clears the session unconditionally: the in-memory identity, the
// client token, and all locally stored metadata.
func (m *Manager) Logout(ctx context.Context) error {
	m.client.SetToken("")
	m.setUser(nil)
	if err := m.meta.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session state: %w", err)
	}
	return nil
}

func (m *Manager) setUser(user *api.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user
}

// Current returns the authenticated user, or nil when logged out.
func (m *Manager) Current() *api.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

func (m *Manager) LoggedIn() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}
