// Package api implements the HTTP client for the authgate server. It mirrors
// the server's JSON surface and maps error envelopes to sentinel errors so
// the CLI can branch with errors.Is.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// TokenPair mirrors the server's token pair response.
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshToken          string    `json:"refresh_token"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
}

// ClientToken mirrors the server's client token response.
type ClientToken struct {
	AccessToken          string    `json:"access_token"`
	AccessTokenExpiresAt time.Time `json:"access_token_expires_at"`
}

// User mirrors the server's registration response.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Client calls the authgate HTTP endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Client for the given base URL, e.g. "http://host:8080".
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type errorEnvelope struct {
	Error string `json:"error"`
}

// mapError turns the server's machine-readable failure kind into a sentinel.
func mapError(status int, kind string) error {
	switch kind {
	case "invalid_credentials":
		return ErrInvalidCredentials
	case "client_not_found", "refresh_token_not_found", "user_not_found":
		return ErrNotFound
	case "email_already_taken":
		return ErrEmailAlreadyTaken
	case "validation_error":
		return ErrValidation
	}
	if status >= 500 {
		return ErrServer
	}
	return fmt.Errorf("%w: unexpected status %d", ErrServer, status)
}

func (c *Client) post(ctx context.Context, path string, reqBody, respBody any) error {
	b, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope errorEnvelope
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		return mapError(resp.StatusCode, envelope.Error)
	}

	if respBody == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(respBody)
}

// Register creates a new user account.
func (c *Client) Register(ctx context.Context, email, password string) (*User, error) {
	var user User
	err := c.post(ctx, "/api/v1/users", map[string]string{
		"email":    email,
		"password": password,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges user credentials for a token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	var pair TokenPair
	err := c.post(ctx, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &pair)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// LoginByClient exchanges a machine-client id and secret for an access token.
func (c *Client) LoginByClient(ctx context.Context, clientID, clientSecret string) (*ClientToken, error) {
	var token ClientToken
	err := c.post(ctx, "/api/v1/auth/client-login", map[string]string{
		"client_id":     clientID,
		"client_secret": clientSecret,
	}, &token)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// Refresh rotates a refresh code for a fresh token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	var pair TokenPair
	err := c.post(ctx, "/api/v1/auth/refresh", map[string]string{
		"refresh_token": refreshToken,
	}, &pair)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// Revoke invalidates a refresh code.
func (c *Client) Revoke(ctx context.Context, refreshToken string) error {
	return c.post(ctx, "/api/v1/auth/revoke", map[string]string{
		"refresh_token": refreshToken,
	}, nil)
}
