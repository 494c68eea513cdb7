// Package account wraps the platform's session endpoints. Session state is
// opaque cookies held by the API client; this layer only translates outcomes.
package account

import (
	"context"
	"log/slog"

	"github.com/fashionkart/storefront/internal/api"
	"github.com/fashionkart/storefront/internal/domain"
	apperrors "github.com/fashionkart/storefront/pkg/errors"
)

// RegisterInput holds the fields of a registration request.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=7,max=15"`
	Password string `json:"password" validate:"required,min=8"`
}

// Service is the auth client.
type Service struct {
	client *api.Client
	logger *slog.Logger
}

// NewService creates an account service over the platform API client.
func NewService(client *api.Client, logger *slog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Login authenticates against the platform and, on success, returns the
// account fetched through CurrentUser. The session cookie lands in the API
// client's jar as a side effect of the call.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	resp := s.client.Post(ctx, "/login", map[string]string{
		"email":    email,
		"password": password,
	})

	if resp.Fallback() {
		return nil, apperrors.Unavailable("backend not available, please try again later")
	}
	if !resp.OK {
		return nil, apperrors.Unauthorized(remoteMessage(resp, "login failed"))
	}

	user, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Login succeeded but the profile fetch degraded; the session
		// cookie is set, so report success without profile data.
		s.logger.Warn("login succeeded but profile fetch degraded")
	}
	return user, nil
}

// CurrentUser fetches the authenticated account. A 401 surfaces as
// ErrUnauthorized for the calling layer to act on; any other failure
// (including an unreachable backend) is absorbed as (nil, nil) so startup
// is never blocked on an auth check.
func (s *Service) CurrentUser(ctx context.Context) (*domain.User, error) {
	resp := s.client.Get(ctx, "/getuserdata")

	if resp.AuthRequired {
		return nil, apperrors.Unauthorized("authentication required")
	}
	if !resp.OK {
		s.logger.Info("skipping auth check, backend not available",
			slog.Int("status", resp.Status),
		)
		return nil, nil
	}

	var user domain.User
	if err := resp.JSON(&user); err != nil {
		s.logger.Warn("failed to parse auth response",
			slog.String("error", err.Error()),
		)
		return nil, nil
	}
	return &user, nil
}

// Logout ends the platform session. Best-effort: a failed call is logged and
// the local layer proceeds as logged out regardless.
func (s *Service) Logout(ctx context.Context) {
	resp := s.client.Get(ctx, "/auth/logout")
	if !resp.OK {
		s.logger.Warn("logout call failed",
			slog.Int("status", resp.Status),
		)
	}
}

// Register creates a new platform account.
func (s *Service) Register(ctx context.Context, input RegisterInput) error {
	resp := s.client.Post(ctx, "/register", input)

	if resp.Fallback() {
		return apperrors.Unavailable("backend not available, please try again later")
	}
	if !resp.OK {
		return apperrors.InvalidInput(remoteMessage(resp, "registration failed"))
	}
	return nil
}

// remoteMessage extracts the platform's error message from a non-OK body,
// or returns the fallback text when the body has no usable message.
func remoteMessage(resp *api.Response, fallback string) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := resp.JSON(&payload); err != nil {
		return fallback
	}
	if payload.Message != "" {
		return payload.Message
	}
	if payload.Error != "" {
		return payload.Error
	}
	return fallback
}
