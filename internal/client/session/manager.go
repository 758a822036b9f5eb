// Package session tracks who is signed in on the client and tells
// interested parts of the UI when that changes.
package session

import (
	"context"
	"sync"

	"github.com/asorokin/decat/internal/client/api"
)

// Listener is called with the new user after every auth state change. A nil
// user means signed out.
type Listener func(user *api.User)

// Manager owns the client's auth state: the current user, the token store
// and the auth-change subscriptions.
type Manager struct {
	client *api.Client
	tokens *TokenStore

	mu        sync.Mutex
	user      *api.User
	listeners map[int]Listener
	nextID    int
}

func NewManager(client *api.Client, tokens *TokenStore) *Manager {
	return &Manager{
		client:    client,
		tokens:    tokens,
		listeners: map[int]Listener{},
	}
}

// CurrentUser returns the signed-in user, or nil.
func (m *Manager) CurrentUser() *api.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Subscribe registers a listener for auth state changes and returns an
// unsubscribe function.
func (m *Manager) Subscribe(l Listener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.listeners[id] = l

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

func (m *Manager) setUser(user *api.User) {
	m.mu.Lock()
	m.user = user
	listeners := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		listeners = append(listeners, l)
	}
	m.mu.Unlock()

	for _, l := range listeners {
		l(user)
	}
}

// RequestLoginLink starts a passwordless login for email.
func (m *Manager) RequestLoginLink(ctx context.Context, email string) error {
	return m.client.RequestLoginLink(ctx, email)
}

// SignIn exchanges a login link token for a session and announces the new
// user.
func (m *Manager) SignIn(ctx context.Context, token string) error {
	session, err := m.client.Verify(ctx, token)
	if err != nil {
		return err
	}

	m.tokens.UpdateTokens(session.AccessToken, session.RefreshToken)
	m.setUser(session.User)
	return nil
}

// Restore revives a previous session from the cached token pair. Returns
// false when there is nothing usable to restore.
func (m *Manager) Restore(ctx context.Context) bool {
	if m.tokens.AccessToken() == "" && m.tokens.RefreshToken() == "" {
		return false
	}

	user, err := m.client.GetUser(ctx)
	if err != nil {
		m.tokens.Clear()
		return false
	}

	m.setUser(user)
	return true
}

// SignOut revokes the refresh token, clears local state and announces the
// signed-out state. The local session is dropped even when the server call
// fails.
func (m *Manager) SignOut(ctx context.Context) error {
	err := m.client.Logout(ctx)

	m.tokens.Clear()
	m.setUser(nil)
	return err
}
