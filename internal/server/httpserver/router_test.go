package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yndnr/tablesync-go/internal/core/domain"
	"github.com/yndnr/tablesync-go/internal/core/service"
	"github.com/yndnr/tablesync-go/internal/storage/memory"
	"github.com/yndnr/tablesync-go/internal/telemetry/logger"
	"github.com/yndnr/tablesync-go/internal/telemetry/metric"
)

func newTestServer(t *testing.T, mutate func(*RouterConfig)) *httptest.Server {
	t.Helper()

	reg := metric.NewRegistry()
	svc := service.NewTableService(memory.New(), service.WithRecorder(reg), service.WithLogger(logger.Discard()))
	if err := reg.RegisterTable(svc); err != nil {
		t.Fatalf("RegisterTable() error = %v", err)
	}
	if err := svc.Seed(context.Background(), service.DefaultSeed()); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	cfg := &RouterConfig{
		Table:       svc,
		Logger:      logger.Discard(),
		Metrics:     reg,
		EnableAudit: true,
	}
	if mutate != nil {
		mutate(cfg)
	}

	srv := httptest.NewServer(NewRouter(cfg))
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	return resp, data
}

func TestRouter_Contract(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantEmpty  bool
	}{
		{"full state", http.MethodGet, "/table", "", http.StatusOK, false},
		{"delta", http.MethodGet, "/table/changes?since=0", "", http.StatusOK, false},
		{"delta missing since", http.MethodGet, "/table/changes", "", http.StatusBadRequest, true},
		{"delta bad since", http.MethodGet, "/table/changes?since=x", "", http.StatusBadRequest, true},
		{"add malformed", http.MethodPost, "/table/add", "{", http.StatusInternalServerError, true},
		{"remove missing id", http.MethodPost, "/table/remove", "", http.StatusBadRequest, true},
		{"add wrong method", http.MethodGet, "/table/add", "", http.StatusMethodNotAllowed, false},
		{"unknown route", http.MethodGet, "/nope", "", http.StatusNotFound, false},
		{"health", http.MethodGet, "/health", "", http.StatusOK, false},
		{"ready", http.MethodGet, "/ready", "", http.StatusOK, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doRequest(t, tt.method, srv.URL+tt.path, tt.body)

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantEmpty && len(body) != 0 {
				t.Errorf("body = %q, want empty", body)
			}
			if resp.Header.Get(HeaderRequestID) == "" {
				t.Error("missing X-Request-ID header")
			}
		})
	}
}

func TestRouter_EndToEnd(t *testing.T) {
	srv := newTestServer(t, nil)

	// Seeded table at revision 3; a snapshot stamps everything 3.
	_, body := doRequest(t, http.MethodGet, srv.URL+"/table", "")
	var state domain.State
	if err := json.Unmarshal(body, &state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.Revision != 3 || len(state.Rows) != 3 {
		t.Fatalf("initial state = %+v", state)
	}

	_, body = doRequest(t, http.MethodGet, srv.URL+"/table/changes?since=3", "")
	if err := json.Unmarshal(body, &state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(state.Rows) != 0 || state.Revision != 3 {
		t.Fatalf("changes since 3 = %+v, want empty @3", state)
	}

	resp, _ := doRequest(t, http.MethodPost, srv.URL+"/table/remove?id=2", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("remove status = %d", resp.StatusCode)
	}

	_, body = doRequest(t, http.MethodGet, srv.URL+"/table", "")
	if err := json.Unmarshal(body, &state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.Revision != 4 || strings.Join(state.IDs(), ",") != "1,3" {
		t.Fatalf("after remove = %+v, want ids 1,3 @4", state)
	}
}

func TestRouter_RequestIDPropagation(t *testing.T) {
	srv := newTestServer(t, nil)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/table", nil)
	req.Header.Set(HeaderRequestID, "caller-chosen")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	resp.Body.Close()

	if got := resp.Header.Get(HeaderRequestID); got != "caller-chosen" {
		t.Errorf("X-Request-ID = %q, want caller-chosen", got)
	}
}

func TestRouter_Metrics(t *testing.T) {
	srv := newTestServer(t, nil)

	doRequest(t, http.MethodGet, srv.URL+"/table", "")
	doRequest(t, http.MethodPost, srv.URL+"/table/add", `{"id":"4","name":"XRP","price":1}`)
	doRequest(t, http.MethodGet, srv.URL+"/table/changes?since=1", "")
	doRequest(t, http.MethodGet, srv.URL+"/table/changes?since=2", "")

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/metrics", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics status = %d", resp.StatusCode)
	}

	text := string(body)
	for _, want := range []string{
		`tablesync_http_requests_total{route="/table",status="200"} 1`,
		`tablesync_http_requests_total{route="/table/changes",status="200"} 2`,
		`tablesync_mutations_total{op="add",result="ok"} 1`,
		`tablesync_table_revision 4`,
		`tablesync_table_rows 4`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestRouter_NoMetrics(t *testing.T) {
	srv := newTestServer(t, func(c *RouterConfig) { c.Metrics = nil })

	resp, _ := doRequest(t, http.MethodGet, srv.URL+"/metrics", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("metrics status = %d, want 404 when disabled", resp.StatusCode)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	srv := newTestServer(t, func(c *RouterConfig) {
		c.RateLimitRPS = 0.001
		c.RateLimitBurst = 2
	})

	var codes []int
	for i := 0; i < 3; i++ {
		resp, _ := doRequest(t, http.MethodGet, srv.URL+"/table", "")
		codes = append(codes, resp.StatusCode)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("status codes = %v, want [200 200 429]", codes)
	}

	// Health checks are never throttled.
	resp, _ := doRequest(t, http.MethodGet, srv.URL+"/health", "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d, want 200", resp.StatusCode)
	}
}
