// Package auth manages the client session: exchanging credentials for a
// token, persisting the token and user record, and validating the login and
// signup forms before anything reaches the network.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/krishisahayak/sahayak/internal/api"
	"github.com/krishisahayak/sahayak/internal/storage"
	"github.com/krishisahayak/sahayak/internal/store"
)

// tokenTTL matches the 7-day session the web client used.
const tokenTTL = 7 * 24 * time.Hour

// Manager persists and answers for the current session. It implements
// api.TokenSource so the HTTP client can attach the bearer token.
type Manager struct {
	storage *storage.Store
}

// NewManager wires session handling to durable storage.
func NewManager(st *storage.Store) *Manager {
	return &Manager{storage: st}
}

// Token returns the stored bearer token, if any.
func (m *Manager) Token() (string, bool) {
	return m.storage.Get(storage.KeyToken)
}

// CurrentUser returns the cached user record, if any.
func (m *Manager) CurrentUser() (*store.User, bool) {
	var user store.User
	if !m.storage.GetJSON(storage.KeyUser, &user) {
		return nil, false
	}
	return &user, true
}

// IsAuthenticated reports whether both a token and a user record are
// present.
func (m *Manager) IsAuthenticated() bool {
	if _, ok := m.Token(); !ok {
		return false
	}
	_, ok := m.CurrentUser()
	return ok
}

// Login validates the form, exchanges credentials, and persists the
// session. Validation failures return *FormErrors and never hit the
// network.
func (m *Manager) Login(ctx context.Context, client *api.Client, form LoginForm) (*store.User, error) {
	if errs := form.Validate(); errs != nil {
		return nil, errs
	}
	session, err := client.Login(ctx, api.Credentials{Email: form.Email, Password: form.Password})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := m.saveSession(session); err != nil {
		return nil, err
	}
	user := session.User
	return &user, nil
}

// Signup validates the form, registers the account, and persists the
// session.
func (m *Manager) Signup(ctx context.Context, client *api.Client, form SignupForm) (*store.User, error) {
	if errs := form.Validate(); errs != nil {
		return nil, errs
	}
	session, err := client.Signup(ctx, api.SignupRequest{
		Name:         form.Name,
		Email:        form.Email,
		Phone:        form.Phone,
		Password:     form.Password,
		Location:     form.Location,
		FarmSize:     form.FarmSize,
		PrimaryCrops: form.PrimaryCrops,
	})
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	if err := m.saveSession(session); err != nil {
		return nil, err
	}
	user := session.User
	return &user, nil
}

// Logout removes the persisted token and user record.
func (m *Manager) Logout() {
	_ = m.storage.Remove(storage.KeyToken)
	_ = m.storage.Remove(storage.KeyUser)
}

func (m *Manager) saveSession(session *api.Session) error {
	if err := m.storage.SetWithExpiry(storage.KeyToken, session.Token, tokenTTL); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	if err := m.storage.SetJSON(storage.KeyUser, session.User); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	return nil
}
