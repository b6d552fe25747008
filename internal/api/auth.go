package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/paanihub/paanictl/internal/models"
)

type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// CheckSession asks the backend whether the stored cookie still maps to a
// live session. Any failure, transport or auth, yields a logged-out
// session rather than an error: the caller simply renders as logged out.
func (c *Client) CheckSession(ctx context.Context) models.Session {
	var payload struct {
		Role string `json:"role"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/employee/protected", nil, nil, &payload); err != nil {
		c.log.WithError(err).Debug("session check failed")
		return models.Session{}
	}
	role := payload.Role
	if role == "" {
		role = models.RoleUser
	}
	return models.Session{Authenticated: true, Role: role}
}

// Login exchanges credentials for a session cookie and returns the
// account role. An unverified account surfaces as ErrEmailNotVerified so
// the caller can route to the verification flow.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var payload struct {
		Role string `json:"role"`
	}
	err := c.do(ctx, http.MethodPost, "/api/employee/login", nil, body, &payload)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusForbidden &&
			strings.Contains(apiErr.Message, "verify your email") {
			return "", fmt.Errorf("%w: %s", ErrEmailNotVerified, apiErr.Message)
		}
		return "", err
	}
	if payload.Role == "" {
		return models.RoleUser, nil
	}
	return payload.Role, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/employee/logout", nil, struct{}{}, nil)
}

func (c *Client) Register(ctx context.Context, input RegisterInput) error {
	return c.do(ctx, http.MethodPost, "/api/employee/register", nil, input, nil)
}

func (c *Client) VerifyEmail(ctx context.Context, email, code string) error {
	body := map[string]string{"email": email, "code": code}
	return c.do(ctx, http.MethodPost, "/api/employee/verify-email", nil, body, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/api/employee/forgot-password", nil, body, nil)
}

func (c *Client) VerifyResetCode(ctx context.Context, email, code string) error {
	body := map[string]string{"email": email, "code": code}
	return c.do(ctx, http.MethodPost, "/api/employee/verify-reset-code", nil, body, nil)
}

func (c *Client) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	body := map[string]string{"email": email, "code": code, "newPassword": newPassword}
	return c.do(ctx, http.MethodPost, "/api/employee/reset-password", nil, body, nil)
}
