// Package auth manages the storefront's user session: the bearer token and
// user profile issued by the remote auth backend, mirrored into the local
// store under the same keys the browser app used.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/srilaxmialankar/storefront-golang/internal/backend"
	"github.com/srilaxmialankar/storefront-golang/internal/localstore"
	"github.com/srilaxmialankar/storefront-golang/internal/models"
	"github.com/srilaxmialankar/storefront-golang/pkg/logx"
)

// API is the slice of the backend client the session needs. It is attached
// after construction because the backend client itself needs the session's
// token to sign requests.
type API interface {
	Login(ctx context.Context, email, password string) (models.AuthResult, error)
	Signup(ctx context.Context, input backend.SignupInput) (models.AuthResult, error)
	GoogleSignin(ctx context.Context, idToken string) (models.AuthResult, error)
	Profile(ctx context.Context) (models.User, error)
}

// Session holds the current token and user. All auth flows store both
// through to the local store so a restart resumes the session.
type Session struct {
	store localstore.Store
	log   zerolog.Logger

	mu    sync.Mutex
	api   API
	token string
	user  *models.User
}

// NewSession creates an empty session backed by the given local store.
func NewSession(store localstore.Store) *Session {
	return &Session{
		store: store,
		log:   logx.With("auth"),
	}
}

// AttachAPI wires in the backend client after both sides exist.
func (s *Session) AttachAPI(api API) {
	s.mu.Lock()
	s.api = api
	s.mu.Unlock()
}

// Restore loads a previously persisted session from the local store. An
// expired token is dropped on the spot so the caller starts anonymous
// rather than with credentials the backend will reject.
func (s *Session) Restore(ctx context.Context) {
	token := ""
	if data, err := s.store.Get(ctx, localstore.KeyToken); err == nil {
		_ = json.Unmarshal(data, &token)
	}
	if token != "" && TokenExpired(token) {
		s.log.Info().Msg("persisted token expired, clearing session")
		_ = s.store.Delete(ctx, localstore.KeyToken)
		_ = s.store.Delete(ctx, localstore.KeyUser)
		return
	}

	var user *models.User
	if data, err := s.store.Get(ctx, localstore.KeyUser); err == nil {
		var u models.User
		if err := json.Unmarshal(data, &u); err == nil {
			user = &u
		}
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()

	if token != "" {
		s.log.Info().Msg("session restored from local store")
	}
}

// Token returns the current bearer token ("" when anonymous). It satisfies
// backend.TokenSource.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the current user, or nil when anonymous.
func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// UserID returns the current user's id, or "" when anonymous.
func (s *Session) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return ""
	}
	return s.user.ID
}

// Authenticated reports whether a non-expired token is held.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()
	return token != "" && !TokenExpired(token)
}

// Login exchanges credentials with the backend and persists the session.
func (s *Session) Login(ctx context.Context, email, password string) (*models.User, error) {
	api := s.apiOrNil()
	if api == nil {
		return nil, fmt.Errorf("auth: no backend attached")
	}
	result, err := api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, result)
}

// Signup registers a new account and persists the session.
func (s *Session) Signup(ctx context.Context, input backend.SignupInput) (*models.User, error) {
	api := s.apiOrNil()
	if api == nil {
		return nil, fmt.Errorf("auth: no backend attached")
	}
	result, err := api.Signup(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, result)
}

// GoogleSignin exchanges a Google identity token and persists the session.
func (s *Session) GoogleSignin(ctx context.Context, idToken string) (*models.User, error) {
	api := s.apiOrNil()
	if api == nil {
		return nil, fmt.Errorf("auth: no backend attached")
	}
	result, err := api.GoogleSignin(ctx, idToken)
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, result)
}

// Logout clears the session in memory and in the local store.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	_ = s.store.Delete(ctx, localstore.KeyToken)
	_ = s.store.Delete(ctx, localstore.KeyUser)
	s.log.Info().Msg("session cleared")
}

func (s *Session) apiOrNil() API {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.api
}

// commit installs an auth result and writes token + user through to the
// local store.
func (s *Session) commit(ctx context.Context, result models.AuthResult) (*models.User, error) {
	s.mu.Lock()
	s.token = result.Token
	s.user = result.User
	s.mu.Unlock()

	if data, err := json.Marshal(result.Token); err == nil {
		if err := s.store.Set(ctx, localstore.KeyToken, data); err != nil {
			s.log.Error().Err(err).Msg("persist token")
		}
	}
	if result.User != nil {
		if data, err := json.Marshal(result.User); err == nil {
			if err := s.store.Set(ctx, localstore.KeyUser, data); err != nil {
				s.log.Error().Err(err).Msg("persist user")
			}
		}
	}
	return result.User, nil
}

// TokenExpired inspects the token's exp claim without verifying the
// signature. We never mint tokens; verification is the backend's job, and
// the only local question is whether the token is still worth sending.
func TokenExpired(tokenString string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		// No exp claim: treat as non-expiring, matching the backend.
		return false
	}
	return exp.Before(time.Now())
}
