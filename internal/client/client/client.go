// Package client is the typed HTTP client of the catalog API together with
// the bootstrap of the CLI's local SQLite cache.
//
// Every method takes a context and returns *APIError for non-2xx responses;
// match ErrUnauthorized and ErrNotFound with errors.Is. Transport failures
// wrap ErrUnavailable.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookstore/internal/client/models"
	"github.com/dmitrijs2005/bookstore/internal/common"
)

const defaultBaseURL = "http://127.0.0.1:8000"

// Client talks to the catalog API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithTimeout sets the per-request timeout of the underlying HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New builds a Client for base, e.g. "http://127.0.0.1:8000/api/v1".
// A missing scheme defaults to http.
func New(base string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q: missing host", base)
	}

	c := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Register creates a seller account. Registration is never authenticated.
func (c *Client) Register(ctx context.Context, in models.SellerInput) (*models.Seller, error) {
	var s models.Seller
	if err := c.doJSON(ctx, http.MethodPost, "/seller/", in, "", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Login exchanges credentials for an access token using the form-encoded
// password grant.
func (c *Client) Login(ctx context.Context, email, password string) (*models.Token, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := c.newRequest(ctx, http.MethodPost, "/token/", strings.NewReader(form.Encode()), "")
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tok models.Token
	if err := c.send(req, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

func (c *Client) ListSellers(ctx context.Context) ([]models.Seller, error) {
	var out struct {
		Sellers []models.Seller `json:"sellers"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/seller/", nil, "", &out); err != nil {
		return nil, err
	}
	return out.Sellers, nil
}

// GetSeller returns a seller with their books. Requires a token.
func (c *Client) GetSeller(ctx context.Context, token string, id int64) (*models.SellerWithBooks, error) {
	var s models.SellerWithBooks
	if err := c.doJSON(ctx, http.MethodGet, "/seller/"+itoa(id), nil, token, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSeller removes a seller and all of their books.
func (c *Client) DeleteSeller(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/seller/"+itoa(id), nil, token, nil)
}

func (c *Client) ListBooks(ctx context.Context) ([]models.Book, error) {
	var out struct {
		Books []models.Book `json:"books"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/books/", nil, "", &out); err != nil {
		return nil, err
	}
	return out.Books, nil
}

func (c *Client) GetBook(ctx context.Context, id int64) (*models.Book, error) {
	var b models.Book
	if err := c.doJSON(ctx, http.MethodGet, "/books/"+itoa(id), nil, "", &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) CreateBook(ctx context.Context, token string, in models.BookInput) (*models.Book, error) {
	var b models.Book
	if err := c.doJSON(ctx, http.MethodPost, "/books/", in, token, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) DeleteBook(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/books/"+itoa(id), nil, token, nil)
}

// Ping reports whether the server and its database answer /healthz.
func (c *Client) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/healthz", nil, "", nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, token string, v any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, reader, token)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, v)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, token string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if t := strings.TrimSpace(token); t != "" {
		req.Header.Set("Authorization", common.BearerScheme+" "+t)
	}
	return req, nil
}

func (c *Client) send(req *http.Request, v any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return &APIError{Status: resp.StatusCode, Detail: extractDetail(resp.Body)}
	}

	if v == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func extractDetail(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || len(payload.Detail) == 0 {
		return strings.TrimSpace(string(data))
	}
	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		return s
	}
	return string(payload.Detail)
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
