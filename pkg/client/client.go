// Package client is a Go client for the Hoverfly admin REST API.
//
// Read calls (Get*) decode whatever the server answers. Mutating calls require
// a 200 response and report anything else as a *RejectedError. The client keeps
// no state beyond its configuration and is safe for concurrent use.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bwilczek/hoverfly-client-go/internal/logging"
	"github.com/bwilczek/hoverfly-client-go/pkg/journal"
	"github.com/bwilczek/hoverfly-client-go/pkg/middleware"
	"github.com/bwilczek/hoverfly-client-go/pkg/mode"
	"github.com/bwilczek/hoverfly-client-go/pkg/simulation"
)

// Defaults used by New.
const (
	DefaultBaseURL = "http://127.0.0.1:8888"
	DefaultTimeout = time.Second
)

// Admin API paths.
const (
	ModePath       = "/api/v2/hoverfly/mode"
	MiddlewarePath = "/api/v2/hoverfly/middleware"
	JournalPath    = "/api/v2/journal"
	SimulationPath = "/api/v2/simulation"
)

// Client talks to a single Hoverfly admin endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client. Options are applied in order.
type Option func(*Client)

// WithTimeout sets the timeout of every request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for per-request debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client for the admin API at baseURL. An empty baseURL means
// DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the admin URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Alive reports whether the admin API answers a mode query.
func (c *Client) Alive(ctx context.Context) bool {
	_, err := c.GetMode(ctx)
	return err == nil
}

// GetMode returns the current mode.
func (c *Client) GetMode(ctx context.Context) (*mode.Payload, error) {
	var out mode.Payload
	if err := c.read(ctx, "mode", ModePath, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetMode switches Hoverfly to another mode.
func (c *Client) SetMode(ctx context.Context, payload mode.SetPayload) (*mode.Payload, error) {
	var out mode.Payload
	if err := c.write(ctx, "mode", http.MethodPut, ModePath, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMiddleware returns the configured middleware.
func (c *Client) GetMiddleware(ctx context.Context) (*middleware.Payload, error) {
	var out middleware.Payload
	if err := c.read(ctx, "middleware", MiddlewarePath, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetMiddleware configures middleware.
func (c *Client) SetMiddleware(ctx context.Context, payload middleware.Payload) (*middleware.Payload, error) {
	var out middleware.Payload
	if err := c.write(ctx, "middleware", http.MethodPut, MiddlewarePath, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PurgeMiddleware disables middleware.
func (c *Client) PurgeMiddleware(ctx context.Context) (*middleware.Payload, error) {
	var out middleware.Payload
	if err := c.write(ctx, "middleware purge", http.MethodPut, MiddlewarePath, middleware.Empty(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetJournal returns the journal with the server's default paging.
func (c *Client) GetJournal(ctx context.Context) (*journal.Journal, error) {
	return c.GetJournalPage(ctx, journal.Page{})
}

// GetJournalPage returns one page of the journal.
func (c *Client) GetJournalPage(ctx context.Context, page journal.Page) (*journal.Journal, error) {
	path := JournalPath
	if q := page.Values(); len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out journal.Journal
	if err := c.read(ctx, "journal", path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchJournal returns the journal entries whose request matches payload.
func (c *Client) SearchJournal(ctx context.Context, payload journal.SearchPayload) (*journal.Journal, error) {
	var out journal.Journal
	if err := c.write(ctx, "journal search", http.MethodPost, JournalPath, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PurgeJournal deletes every journal entry.
func (c *Client) PurgeJournal(ctx context.Context) error {
	return c.write(ctx, "journal purge", http.MethodDelete, JournalPath, nil, nil)
}

// GetSimulation returns the simulation currently loaded in Hoverfly.
func (c *Client) GetSimulation(ctx context.Context) (*simulation.Simulation, error) {
	var out simulation.Simulation
	if err := c.read(ctx, "simulation", SimulationPath, &out, "data"); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadSimulation replaces the loaded simulation with sim.
func (c *Client) UploadSimulation(ctx context.Context, sim *simulation.Simulation) (*simulation.Simulation, error) {
	if sim == nil {
		return nil, errors.New("simulation cannot be nil")
	}
	var out simulation.Simulation
	if err := c.write(ctx, "simulation upload", http.MethodPut, SimulationPath, sim, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PurgeSimulation removes the loaded simulation.
func (c *Client) PurgeSimulation(ctx context.Context) error {
	return c.write(ctx, "simulation purge", http.MethodDelete, SimulationPath, nil, nil)
}

// read issues a GET and decodes the body without checking the status code.
// A non-2xx error document, or a body missing one of the required top-level
// objects, is a *DecodeError rather than a zero-value result.
func (c *Client) read(ctx context.Context, op, path string, out any, required ...string) error {
	status, body, _, err := c.roundTrip(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		if msg, ok := errorDocument(body); ok {
			return &DecodeError{Operation: op, StatusCode: status, Body: body, Err: fmt.Errorf("server error: %s", msg)}
		}
	}
	for _, key := range required {
		if !hasObject(body, key) {
			return &DecodeError{Operation: op, StatusCode: status, Body: body, Err: fmt.Errorf("missing %q object", key)}
		}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{Operation: op, StatusCode: status, Body: body, Err: err}
	}
	return nil
}

// write sends payload and requires a 200 response. An empty body leaves out
// untouched; out may be nil when the response is not needed.
func (c *Client) write(ctx context.Context, op, method, path string, payload, out any) error {
	status, body, sent, err := c.roundTrip(ctx, op, method, path, payload)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return &RejectedError{Operation: op, StatusCode: status, Payload: sent, ServerError: serverError(body)}
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{Operation: op, StatusCode: status, Body: body, Err: err}
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, op, method, path string, payload any) (int, []byte, []byte, error) {
	var sent []byte
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, nil, fmt.Errorf("failed to encode %s payload: %w", op, err)
		}
		sent = data
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, sent, fmt.Errorf("hoverfly %s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("hoverfly request failed", "method", method, "path", path, "error", err)
		return 0, nil, sent, fmt.Errorf("hoverfly %s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, sent, fmt.Errorf("hoverfly %s: failed to read response: %w", op, err)
	}
	c.logger.Debug("hoverfly request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	return resp.StatusCode, body, sent, nil
}
