package carousel

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

	"github.com/google/uuid"
)

const (
	apiPrefix = "/api/v1"

	idempotencyKeyHeader = "Idempotency-Key"
	batchSaveAttempts    = 3
)

// APIError is a failure envelope returned by the server
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%d %s)", e.Message, e.StatusCode, e.Code)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.StatusCode)
}

// IsStatus reports whether err is an APIError with the given status code
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// Token is an admin access token
type Token struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Client talks to the slide endpoints of the storefront API
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	retryDelay time.Duration
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithToken sets the bearer token sent on admin requests
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// NewClient creates a client for the server at serverURL, e.g. http://localhost:8080
func NewClient(serverURL string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(serverURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server URL %q: scheme must be http or https", serverURL)
	}
	c := &Client{
		baseURL:    u.String() + apiPrefix,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		retryDelay: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetToken replaces the bearer token
func (c *Client) SetToken(token string) {
	c.token = token
}

// Login exchanges admin credentials for a token and keeps it for later calls
func (c *Client) Login(ctx context.Context, username, password string) (*Token, error) {
	body := map[string]string{"username": username, "password": password}
	var token Token
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &token); err != nil {
		return nil, err
	}
	c.token = token.AccessToken
	return &token, nil
}

// List returns every slide in display order
func (c *Client) List(ctx context.Context) ([]Slide, error) {
	var slides []Slide
	if err := c.do(ctx, http.MethodGet, "/slides", nil, &slides); err != nil {
		return nil, err
	}
	return sortedSlides(slides), nil
}

type batchRequest struct {
	Slides []batchItem `json:"slides"`
}

type batchItem struct {
	ID       *int64       `json:"id,omitempty"`
	Title    string       `json:"title"`
	Subtitle *string      `json:"subtitle,omitempty"`
	AltText  *string      `json:"altText,omitempty"`
	ImageRef string       `json:"imageRef,omitempty"`
	Image    *imageUpload `json:"image,omitempty"`
}

type imageUpload struct {
	Data        string `json:"data"`
	ContentType string `json:"contentType"`
	Filename    string `json:"filename,omitempty"`
}

// BatchSave replaces the carousel with drafts. Order follows slice position.
// The request carries an Idempotency-Key, so it is retried when the
// connection fails or the server reports the same key still in progress.
func (c *Client) BatchSave(ctx context.Context, drafts []Draft) ([]Slide, error) {
	req := batchRequest{Slides: make([]batchItem, len(drafts))}
	for i, d := range drafts {
		item := batchItem{ID: d.ID, Title: d.Title, Subtitle: d.Subtitle, AltText: d.AltText}
		if d.IsNew() {
			item.ImageRef = d.ImageRef
		}
		if d.Image != nil {
			item.Image = &imageUpload{Data: d.Image.Data, ContentType: d.Image.ContentType, Filename: d.Image.Filename}
		}
		req.Slides[i] = item
	}

	key := uuid.NewString()
	var slides []Slide
	var err error
	for attempt := 1; attempt <= batchSaveAttempts; attempt++ {
		err = c.do(ctx, http.MethodPut, "/slides", req, &slides, withHeader(idempotencyKeyHeader, key))
		if err == nil {
			return sortedSlides(slides), nil
		}
		if !retryable(err) || attempt == batchSaveAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, err
		case <-time.After(c.retryDelay * time.Duration(attempt)):
		}
	}
	return nil, err
}

// retryable reports whether a batch save may be resent with the same key
func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusConflict
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// Delete removes a slide. It returns false when the slide did not exist.
func (c *Client) Delete(ctx context.Context, id int64) (bool, error) {
	err := c.do(ctx, http.MethodDelete, "/slides/"+strconv.FormatInt(id, 10), nil, nil)
	if IsStatus(err, http.StatusNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type requestOption func(*http.Request)

func withHeader(key, value string) requestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, opts ...requestOption) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for _, opt := range opts {
		opt(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("unexpected response from %s %s", method, path)}
	}
	if resp.StatusCode >= 400 || !env.Success {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: env.Message}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			if apiErr.Message == "" {
				apiErr.Message = env.Error.Message
			}
		}
		return apiErr
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

var _ Saver = (*Client)(nil)
