package command

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tablesync-go/internal/core/domain"
)

// mockServer creates a test HTTP server with custom handlers.
type mockServer struct {
	*httptest.Server
	handlers map[string]http.HandlerFunc
}

// newMockServer creates a new mock server.
func newMockServer(t *testing.T) *mockServer {
	m := &mockServer{
		handlers: make(map[string]http.HandlerFunc),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := m.handlers[r.URL.Path]; ok {
			handler(w, r)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(m.Close)
	return m
}

// handle registers a handler for an exact path.
func (m *mockServer) handle(path string, handler http.HandlerFunc) {
	m.handlers[path] = handler
}

// jsonResponse writes a JSON response.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// testRun is a CLI context wired to buffers.
type testRun struct {
	ctx    *cli.Context
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

// makeTestContext creates a CLI context for testing actions against url.
// extraFlags maps command flag names to values; zero values are declared
// but not passed. An empty config file isolates the test from the user's
// own ~/.tablesync/cli.yaml.
func makeTestContext(t *testing.T, url string, extraFlags map[string]any, args ...string) *testRun {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "cli.yaml")
	if err := os.WriteFile(cfgPath, []byte("{}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	app := &cli.App{
		Name:      "test",
		Flags:     globalFlags(),
		Writer:    out,
		ErrWriter: errOut,
	}

	allFlags := append([]cli.Flag{}, globalFlags()...)
	for name, val := range extraFlags {
		switch v := val.(type) {
		case string:
			allFlags = append(allFlags, &cli.StringFlag{Name: name})
		case int64:
			allFlags = append(allFlags, &cli.Int64Flag{Name: name})
		case float64:
			allFlags = append(allFlags, &cli.Float64Flag{Name: name})
		case bool:
			allFlags = append(allFlags, &cli.BoolFlag{Name: name})
		case time.Duration:
			allFlags = append(allFlags, &cli.DurationFlag{Name: name})
		default:
			t.Fatalf("unsupported flag type %T", v)
		}
	}

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range allFlags {
		if err := f.Apply(set); err != nil {
			t.Fatal(err)
		}
	}

	cliArgs := []string{"--config", cfgPath, "--no-color"}
	if url != "" {
		cliArgs = append(cliArgs, "--server", url)
	}
	for name, val := range extraFlags {
		switch v := val.(type) {
		case string:
			if v != "" {
				cliArgs = append(cliArgs, "--"+name, v)
			}
		case int64:
			cliArgs = append(cliArgs, "--"+name, fmt.Sprintf("%d", v))
		case float64:
			cliArgs = append(cliArgs, "--"+name, fmt.Sprintf("%g", v))
		case bool:
			if v {
				cliArgs = append(cliArgs, "--"+name)
			}
		case time.Duration:
			if v != 0 {
				cliArgs = append(cliArgs, "--"+name, v.String())
			}
		}
	}
	cliArgs = append(cliArgs, args...)

	if err := set.Parse(cliArgs); err != nil {
		t.Fatal(err)
	}

	ctx := cli.NewContext(app, set, nil)
	ctx.Context = context.Background()
	return &testRun{ctx: ctx, out: out, errOut: errOut}
}

// withTimeout bounds the context the action sees.
func (r *testRun) withTimeout(t *testing.T, d time.Duration) *testRun {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	t.Cleanup(cancel)
	r.ctx.Context = ctx
	return r
}

// Sample data

func sampleState() domain.State {
	return domain.State{
		Rows: []domain.Row{
			{ID: "1", Name: "BTC", Price: 111, Revision: 3},
			{ID: "2", Name: "LTC", Price: 222, Revision: 3},
			{ID: "3", Name: "ETH", Price: 333, Revision: 3},
		},
		Revision: 3,
	}
}

func assertContains(t *testing.T, got string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}
