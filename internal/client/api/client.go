// Package api is a typed HTTP client for the WorldExplorer server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	wire "worldexplorer/internal/api"
	infrahttp "worldexplorer/internal/platform/http"
)

// userAgent identifies the CLI to the server.
const userAgent = "worldexplorer-cli/1.0"

// Error is a non-2xx response from the server.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return e.Message
}

// Client calls the server endpoints. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for baseURL (e.g. "http://localhost:8080/api").
// A nil httpClient gets a client with a 15s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = infrahttp.NewHTTPClient(15*time.Second, userAgent)
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Register creates an account and returns its token.
func (c *Client) Register(ctx context.Context, name, email, password string) (string, error) {
	var out wire.TokenResponse
	req := wire.RegisterRequest{Name: name, Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/users/register", "", req, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out wire.TokenResponse
	req := wire.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/users/login", "", req, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Me returns the user behind token.
func (c *Client) Me(ctx context.Context, token string) (*wire.User, error) {
	var out wire.UserResponse
	if err := c.do(ctx, http.MethodGet, "/users/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Health returns the server status.
func (c *Client) Health(ctx context.Context) (*wire.HealthResponse, error) {
	var out wire.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Countries lists every country.
func (c *Client) Countries(ctx context.Context) ([]wire.Country, error) {
	var out wire.CountryListResponse
	if err := c.do(ctx, http.MethodGet, "/countries", "", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// SearchCountries finds countries by name.
func (c *Client) SearchCountries(ctx context.Context, name string) ([]wire.Country, error) {
	var out wire.CountryListResponse
	path := "/countries/search?" + url.Values{"name": {name}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Region lists the countries of a region.
func (c *Client) Region(ctx context.Context, region string) ([]wire.Country, error) {
	var out wire.CountryListResponse
	if err := c.do(ctx, http.MethodGet, "/countries/region/"+url.PathEscape(region), "", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Country returns one country and its neighbours.
func (c *Client) Country(ctx context.Context, code string) (*wire.CountryDetail, error) {
	var out wire.CountryDetailResponse
	if err := c.do(ctx, http.MethodGet, "/countries/"+url.PathEscape(code), "", nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		apiErr := &Error{StatusCode: res.StatusCode}
		var e wire.ErrorResponse
		if json.NewDecoder(res.Body).Decode(&e) == nil {
			apiErr.Message = e.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
