// Package client is the Go client for the WriteSync REST API. It provides
// the transport client, the authenticated session and the editing session
// with debounced autosave.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"writesync/pkg/apperror"
)

// AuthHeader carries the bearer token on every authenticated request.
const AuthHeader = "x-auth-token"

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	OwnerID   string    `json:"ownerId"`
	LastSaved time.Time `json:"lastSaved"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Summary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Snippet   string    `json:"snippet"`
	LastSaved time.Time `json:"lastSaved"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DocumentPatch mirrors the partial-update contract: nil fields are omitted
// and keep their server-side value.
type DocumentPatch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

type authResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// Client is the stateless HTTP transport. Authentication state lives in a
// Session, never in the client itself.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Register creates an account and returns a live session for it.
func (c *Client) Register(ctx context.Context, username, email, password string) (*Session, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/register", "", body, &resp); err != nil {
		return nil, err
	}
	s := &Session{client: c, Token: resp.Token}
	if _, err := s.Me(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Login authenticates and returns a session holding the token and user.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/login", "", body, &resp); err != nil {
		return nil, err
	}
	s := &Session{client: c, Token: resp.Token}
	if resp.User != nil {
		s.User = *resp.User
	}
	return s, nil
}

// Resume rebuilds a session from a previously stored token. Call Me to
// validate it and load the user.
func (c *Client) Resume(token string) *Session {
	return &Session{client: c, Token: token}
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out interface{}) error {
	var body *bytes.Buffer
	if in != nil {
		body = &bytes.Buffer{}
		if err := json.NewEncoder(body).Encode(in); err != nil {
			return err
		}
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(AuthHeader, token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		return apperror.FromStatus(resp.StatusCode, msg.Message)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
