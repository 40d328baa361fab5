// Package auth runs the console login flow against the remote API and owns
// the server-side session lifecycle.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stayadmin/api"
	"stayadmin/models"
	userRepo "stayadmin/repository/user"
	"stayadmin/utils"
)

// InvalidCredentialsError is surfaced as a single form-level message; the
// console never distinguishes a wrong email from a wrong password.
type InvalidCredentialsError struct{}

func (InvalidCredentialsError) Error() string {
	return "invalid email or password"
}

// LoginResult is what the browser receives after a successful login: a signed
// console token plus the resolved staff identity. The remote bearer
// credential stays in the session store.
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Service is the authentication surface used by the views.
type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
}

// DefaultAuthService is the production implementation.
type DefaultAuthService struct {
	Client     *api.Client
	Users      userRepo.Repository
	Sessions   utils.SessionStore
	SessionTTL time.Duration
	Logger     *zap.Logger
}

type loginResponse struct {
	Token string `json:"token"`
	User  string `json:"user"` // the authenticated email
}

// Login authenticates against the remote API, resolves the display identity
// from the user listing, stores the session, and mints the console token.
// Logins whose email is missing from the listing get an identity synthesized
// from the email itself.
func (s *DefaultAuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var resp loginResponse
	body := map[string]string{"email": email, "password": password}
	if err := s.Client.Post(ctx, "/api/V1/login", body, &resp); err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
			return nil, InvalidCredentialsError{}
		}
		return nil, err
	}

	identity := models.User{
		ID:    resp.User,
		Email: resp.User,
		Name:  strings.SplitN(resp.User, "@", 2)[0],
	}
	users, err := s.Users.List(ctx)
	if err != nil {
		s.Logger.Warn("failed to resolve identity from user listing", zap.Error(err))
	} else {
		for _, u := range users {
			if u.Email == resp.User {
				identity = u
				break
			}
		}
	}

	session := utils.Session{
		ID:        uuid.New().String(),
		User:      identity,
		Token:     resp.Token,
		CreatedAt: time.Now(),
	}
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	token, err := utils.GenerateSessionToken(session.ID, identity.Email, s.SessionTTL)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: identity}, nil
}

// Logout clears the stored session; the console token becomes useless even
// before it expires.
func (s *DefaultAuthService) Logout(ctx context.Context, sessionID string) error {
	return s.Sessions.Delete(ctx, sessionID)
}
