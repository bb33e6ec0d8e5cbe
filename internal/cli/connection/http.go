package connection

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yndnr/tablesync-go/internal/core/domain"
	"github.com/yndnr/tablesync-go/internal/infra/buildinfo"
)

// DefaultTimeout bounds a single request.
const DefaultTimeout = 10 * time.Second

// HTTPClient provides HTTP communication with the server.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// ClientOption configures an HTTPClient.
type ClientOption func(*HTTPClient)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *HTTPClient) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *HTTPClient) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithTLSConfig sets the TLS config used for https:// servers.
func WithTLSConfig(cfg *tls.Config) ClientOption {
	return func(c *HTTPClient) {
		if cfg == nil {
			return
		}
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSClientConfig = cfg
		c.client.Transport = t
	}
}

// NewHTTPClient creates a new HTTP client. A server without a scheme gets
// http://.
func NewHTTPClient(server string, opts ...ClientOption) *HTTPClient {
	baseURL := strings.TrimRight(server, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}

	c := &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the base URL of the client.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// ============================================================================
// Table operations
// ============================================================================

// State fetches the full table (GET /table).
func (c *HTTPClient) State(ctx context.Context) (domain.State, error) {
	return c.fetchState(ctx, http.MethodGet, "/table", nil)
}

// Changes fetches rows changed after since (GET /table/changes).
func (c *HTTPClient) Changes(ctx context.Context, since int64) (domain.State, error) {
	q := url.Values{"since": {strconv.FormatInt(since, 10)}}
	return c.fetchState(ctx, http.MethodGet, "/table/changes?"+q.Encode(), nil)
}

// Add inserts a row (POST /table/add) and returns the resulting state.
func (c *HTTPClient) Add(ctx context.Context, row domain.Row) (domain.State, error) {
	return c.fetchState(ctx, http.MethodPost, "/table/add", row)
}

// Remove deletes the first row with id (POST /table/remove) and returns the
// resulting state.
func (c *HTTPClient) Remove(ctx context.Context, id string) (domain.State, error) {
	q := url.Values{"id": {id}}
	return c.fetchState(ctx, http.MethodPost, "/table/remove?"+q.Encode(), nil)
}

// Health is the body of GET /health.
type Health struct {
	Status   string    `json:"status" yaml:"status"`
	Revision int64     `json:"revision" yaml:"revision"`
	Time     time.Time `json:"time" yaml:"time"`
}

// Health checks server liveness (GET /health).
func (c *HTTPClient) Health(ctx context.Context) (Health, error) {
	resp, err := c.Get(ctx, "/health")
	if err != nil {
		return Health{}, err
	}

	var h Health
	if err := ParseResponse(resp, &h); err != nil {
		return Health{}, err
	}
	return h, nil
}

func (c *HTTPClient) fetchState(ctx context.Context, method, path string, body any) (domain.State, error) {
	var (
		resp *http.Response
		err  error
	)
	if method == http.MethodPost {
		resp, err = c.Post(ctx, path, body)
	} else {
		resp, err = c.Get(ctx, path)
	}
	if err != nil {
		return domain.State{}, err
	}

	var state domain.State
	if err := ParseResponse(resp, &state); err != nil {
		return domain.State{}, err
	}
	if state.Rows == nil {
		state.Rows = []domain.Row{}
	}
	return state, nil
}

// ============================================================================
// Raw requests
// ============================================================================

// Get performs a GET request. Failures to get a response are returned as
// *TransportError.
func (c *HTTPClient) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return c.do(req)
}

// Post performs a POST request with an optional JSON body.
func (c *HTTPClient) Post(ctx context.Context, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req)
}

func (c *HTTPClient) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", "tablesync-cli/"+buildinfo.Version)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: req.Method, URL: req.URL.String(), Err: err}
	}
	return resp, nil
}

// ParseResponse decodes a 2xx JSON body into target and closes the body.
// Non-2xx responses become *StatusError; undecodable bodies *DecodeError.
func ParseResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	u := ""
	if resp.Request != nil && resp.Request.URL != nil {
		u = resp.Request.URL.String()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &StatusError{
			URL:        u,
			StatusCode: resp.StatusCode,
			Code:       resp.Header.Get("X-Error-Code"),
		}
	}

	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		// A connection dropped mid-body is still a transport problem.
		var ne net.Error
		if errors.As(err, &ne) {
			return &TransportError{Op: "read", URL: u, Err: err}
		}
		return &DecodeError{URL: u, Err: err}
	}
	return nil
}
