package api

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/teachforge-io/agent/internal/models"
)

// Login exchanges credentials for a bearer token. The endpoint is public and
// expects OAuth2 form-encoded fields rather than JSON.
//
// On success the session store is updated with the token and a minimal user
// record, then enriched from the profile endpoint. A failed profile fetch is
// not fatal: the basic session stands.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.TokenResponse, error) {
	var token models.TokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, &token, withFormData(map[string]string{
		"username": creds.Username,
		"password": creds.Password,
	}))
	if err != nil {
		return nil, err
	}

	// Commit the token first so the profile request below carries it.
	if err := c.store.SetAuth(token.AccessToken, &models.User{Username: creds.Username}); err != nil {
		return nil, err
	}

	if user, err := c.Profile(ctx); err != nil {
		logrus.WithError(err).Warnln("Failed to fetch profile after login, keeping basic session")
	} else if err := c.store.SetAuth(token.AccessToken, user); err != nil {
		return nil, err
	}

	return &token, nil
}

// Register creates a new teacher account. Public endpoint; no session change.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Profile fetches the authenticated user's own profile.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// VerifySession validates a restored session at startup via the teacher
// profile endpoint. An invalid or expired token answers 401, which evicts
// the stored session as a side effect of the call.
func (c *Client) VerifySession(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/teacher/profile", nil, &user); err != nil {
		return nil, err
	}

	// Refresh the stored profile while keeping the token unchanged.
	if token := c.store.Token(); len(token) > 0 {
		if err := c.store.SetAuth(token, &user); err != nil {
			return nil, err
		}
	}

	return &user, nil
}
