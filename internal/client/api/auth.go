package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/adboard/internal/client/models"
)

// Login exchanges credentials for a token and user. Works without a
// bearer token.
func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/auth/login", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Signup creates an account and returns the same payload as Login.
func (c *HTTPClient) Signup(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/auth/signup", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
