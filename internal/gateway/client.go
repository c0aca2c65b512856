// Package gateway is the typed HTTP client for the remote point/shape/user
// API. Every operation is scoped to the owner identity resolved from the
// stored credential; with no resolvable owner the operation skips the network
// entirely. There is no caching layer: every call is a fresh round trip.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// ErrNoCredential reports a write attempted without a resolvable owner
// identity. Reads treat the same condition as a silent empty result.
var ErrNoCredential = errors.New("gateway: no owner credential")

// NotFoundError reports a missing remote entity.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("gateway: %s %d not found", e.Resource, e.ID)
}

// Client calls the remote REST API.
type Client struct {
	baseURL string // e.g. http://localhost:5160/api
	http    *http.Client
	creds   *CredentialStore
	log     *slog.Logger
}

// New creates a gateway client. baseURL should include the /api prefix.
func New(baseURL string, creds *CredentialStore, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		creds:   creds,
		log:     log,
	}
}

// Credentials exposes the client's credential store.
func (c *Client) Credentials() *CredentialStore {
	return c.creds
}

// owner resolves the owner identity from the stored credential.
func (c *Client) owner() (int64, bool) {
	return c.creds.OwnerID()
}

// get performs a GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// send performs a JSON request with a body (POST/PUT/DELETE) and decodes the
// response into out when out is non-nil.
func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		payload = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if token := c.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("gateway request failed", "method", req.Method, "url", req.URL.Path, "err", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("gateway: %s %s: status %d: %s",
			req.Method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(msg)))
		c.log.Error("gateway response error", "method", req.Method, "url", req.URL.Path, "status", resp.StatusCode)
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("gateway: decoding %s response: %w", req.URL.Path, err)
	}
	return nil
}
