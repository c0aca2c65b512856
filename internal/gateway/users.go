package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// signupPayload is the full user aggregate the Users/create endpoint expects.
// The collection fields must be present (the backend rejects nulls) but may
// be empty.
type signupPayload struct {
	UserID       int64   `json:"userId"`
	UserName     string  `json:"userName"`
	UserEmail    string  `json:"userEmail"`
	UserPassword string  `json:"userPassword"`
	CreatedDate  string  `json:"createdDate"`
	UserShapes   []Shape `json:"userShapes"`
	UserPoints   []Point `json:"userPoints"`
	UserTabs     []any   `json:"userTabs"`
}

// SignUp registers a new user account. Auth endpoints are not owner-scoped.
func (c *Client) SignUp(ctx context.Context, name, email, password string) error {
	payload := signupPayload{
		UserName:     name,
		UserEmail:    email,
		UserPassword: password,
		UserShapes:   []Shape{},
		UserPoints:   []Point{},
		UserTabs:     []any{},
	}
	return c.send(ctx, http.MethodPost, "/Users/create", payload, nil)
}

// Login authenticates and, on success, stores the returned bearer token so
// subsequent requests are owner-scoped.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	payload := signupPayload{
		UserEmail:    email,
		UserPassword: password,
		UserShapes:   []Shape{},
		UserPoints:   []Point{},
		UserTabs:     []any{},
	}
	var out LoginResult
	if err := c.send(ctx, http.MethodPost, "/Auth/login", payload, &out); err != nil {
		return nil, err
	}
	if out.Success && out.Token != "" {
		if err := c.creds.Set(out.Token); err != nil {
			return nil, fmt.Errorf("storing credential: %w", err)
		}
	}
	return &out, nil
}

// Logout tells the backend to end the session and clears the stored
// credential either way.
func (c *Client) Logout(ctx context.Context) error {
	err := c.send(ctx, http.MethodPost, "/Auth/logout", nil, nil)
	if clearErr := c.creds.Clear(); clearErr != nil && err == nil {
		err = clearErr
	}
	return err
}

// UserByEmailAndPassword looks a user up by credentials, used by the signup
// flow to confirm the account exists before logging in.
func (c *Client) UserByEmailAndPassword(ctx context.Context, email, password string) (*User, error) {
	path := fmt.Sprintf("/Users/email/%s/pwd/%s", url.PathEscape(email), url.PathEscape(password))
	var out User
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
