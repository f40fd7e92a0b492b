// ABOUTME: Session manager owning the auth token and derived identity
// ABOUTME: Validates credentials locally before any network call

package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/collabform/collabform-cli/internal/api"
)

// Local validation failures. None of these involve a network call.
var (
	ErrMissingCredentials = errors.New("please enter both username and password")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingFields      = errors.New("please fill in all required fields")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

// credentialsError hides the real login failure behind the generic
// invalid-credentials message. The cause stays reachable via Unwrap
// for debug logging only.
type credentialsError struct {
	cause error
}

func (e *credentialsError) Error() string { return ErrInvalidCredentials.Error() }

func (e *credentialsError) Unwrap() error { return e.cause }

func (e *credentialsError) Is(target error) bool { return target == ErrInvalidCredentials }

// User is the identity derived from the token payload.
type User struct {
	Subject   string
	ExpiresAt time.Time
}

// Session owns the stored token and the auth flows around it.
type Session struct {
	store  *Store
	client *api.Client
}

// New creates a session manager. The client should use the store's
// Token as its token source so authenticated calls pick up logins
// immediately.
func New(store *Store, client *api.Client) *Session {
	return &Session{store: store, client: client}
}

// IsAuthenticated reports whether a token is present.
// It deliberately performs no expiry check.
func (s *Session) IsAuthenticated() bool {
	return s.store.Token() != ""
}

// Token returns the raw stored token, or "" when anonymous.
func (s *Session) Token() string {
	return s.store.Token()
}

// CurrentUser decodes the token payload without verifying the
// signature; the backend is the trust boundary. A token whose exp is
// in the past terminates the session as a side effect and yields nil.
func (s *Session) CurrentUser() *User {
	token := s.store.Token()
	if token == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}

	user := &User{}
	if sub, err := claims.GetSubject(); err == nil {
		user.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		user.ExpiresAt = exp.Time
		if exp.Before(time.Now()) {
			s.store.Clear()
			return nil
		}
	}

	return user
}

// Login exchanges credentials for a token and stores it. Empty
// username or password fails locally. Every backend failure maps to
// the same generic invalid-credentials error regardless of cause.
func (s *Session) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrMissingCredentials
	}

	auth, err := s.client.Login(ctx, api.LoginRequest{Username: username, Password: password})
	if err != nil {
		return &credentialsError{cause: err}
	}

	return s.store.Save(auth.Token)
}

// Register creates an account. Field presence and password
// confirmation are checked locally first; backend errors surface
// verbatim. Registration does not log the user in.
func (s *Session) Register(ctx context.Context, username, email, password, confirm string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return ErrMissingFields
	}
	if password != confirm {
		return ErrPasswordMismatch
	}

	_, err := s.client.Register(ctx, api.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	return err
}

// Logout clears the stored token unconditionally.
func (s *Session) Logout() error {
	return s.store.Clear()
}
