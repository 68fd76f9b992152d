// Package api is the HTTP client for the library REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/libris/internal/domain/catalog"
	"github.com/alexisbeaulieu97/libris/internal/logger"
	"github.com/alexisbeaulieu97/libris/internal/ports"
	librisErrors "github.com/alexisbeaulieu97/libris/pkg/errors"
)

// DefaultBaseURL is the server address used when none is configured.
const DefaultBaseURL = "http://localhost:8080"

// TokenSource provides the bearer token at request time. The session store
// satisfies it.
type TokenSource interface {
	Token() string
}

// Client talks to the library REST API.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	logger     ports.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithTokenSource sets where the bearer token is read from.
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) { c.tokens = tokens }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log ports.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.logger = log
		}
	}
}

// NewClient creates a new API client.
func NewClient(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger.NewNoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalised server address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type credentialsBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Login exchanges credentials for a token. The result may carry an empty
// token when the server omitted it; callers decide how to treat that.
func (c *Client) Login(ctx context.Context, creds catalog.Credentials) (ports.LoginResult, error) {
	var resp loginResponse
	body := credentialsBody{Username: creds.Username, Password: creds.Password}
	if err := c.do(ctx, "login", http.MethodPost, "/api/auth/login", false, body, &resp); err != nil {
		return ports.LoginResult{}, err
	}
	return ports.LoginResult{Token: resp.Token, Username: resp.Username}, nil
}

// Register creates an account. The response body is ignored.
func (c *Client) Register(ctx context.Context, creds catalog.Credentials) error {
	body := credentialsBody{Username: creds.Username, Password: creds.Password}
	return c.do(ctx, "register", http.MethodPost, "/api/auth/register", false, body, nil)
}

// ListBooks fetches every book visible to the session.
func (c *Client) ListBooks(ctx context.Context) ([]catalog.Book, error) {
	books := []catalog.Book{}
	if err := c.do(ctx, "list books", http.MethodGet, "/api/kitaplar", true, nil, &books); err != nil {
		return nil, err
	}
	if books == nil {
		books = []catalog.Book{}
	}
	return books, nil
}

// CreateBook adds a book and returns the server's copy.
func (c *Client) CreateBook(ctx context.Context, input catalog.BookInput) (catalog.Book, error) {
	var book catalog.Book
	if err := c.do(ctx, "add book", http.MethodPost, "/api/kitaplar/addBook", true, input, &book); err != nil {
		return catalog.Book{}, err
	}
	return book, nil
}

// UpdateBook replaces the editable fields of the book with the given id.
func (c *Client) UpdateBook(ctx context.Context, id int64, update catalog.BookUpdate) (catalog.Book, error) {
	var book catalog.Book
	path := fmt.Sprintf("/api/kitaplar/update/%d", id)
	if err := c.do(ctx, "update book", http.MethodPut, path, true, update, &book); err != nil {
		return catalog.Book{}, err
	}
	return book, nil
}

// DeleteBook removes the book with the given id.
func (c *Client) DeleteBook(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/kitaplar/delete/%d", id)
	return c.do(ctx, "delete book", http.MethodDelete, path, true, nil, nil)
}

// ListCategories fetches the read-only category list.
func (c *Client) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	categories := []catalog.Category{}
	if err := c.do(ctx, "list categories", http.MethodGet, "/api/kategoriler", true, nil, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []catalog.Category{}
	}
	return categories, nil
}

type errorBody struct {
	Message string `json:"message"`
}

// do performs a request. A nil out accepts any 2xx body; a non-nil out
// tolerates an empty body and leaves out untouched.
func (c *Client) do(ctx context.Context, op, method, path string, auth bool, in, out interface{}) error {
	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return librisErrors.NewNetworkError(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return librisErrors.NewNetworkError(op, err)
	}

	c.logger.Debug(ctx, "request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return librisErrors.NewStatusError(op, resp.StatusCode, serverMessage(data))
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

func serverMessage(data []byte) string {
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.Message)
}

var _ ports.CatalogAPI = (*Client)(nil)
