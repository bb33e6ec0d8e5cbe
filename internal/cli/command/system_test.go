package command

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"
)

func TestHealthAction(t *testing.T) {
	srv := newMockServer(t)
	srv.handle("/health", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]any{
			"status":   "healthy",
			"revision": 7,
			"time":     time.Now().UTC(),
		})
	})

	run := makeTestContext(t, srv.URL, nil)
	if err := healthAction(run.ctx); err != nil {
		t.Fatalf("healthAction() error = %v", err)
	}
	assertContains(t, run.out.String(), "Server is healthy at revision 7", srv.URL)
}

func TestHealthAction_Unhealthy(t *testing.T) {
	srv := newMockServer(t)
	srv.handle("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	run := makeTestContext(t, srv.URL, nil)
	if err := healthAction(run.ctx); err == nil {
		t.Error("healthAction() should fail on 503")
	}
}

func TestVersionAction_JSON(t *testing.T) {
	run := makeTestContext(t, "", nil)
	run.ctx.Set("output", "json")

	if err := versionAction(run.ctx); err != nil {
		t.Fatalf("versionAction() error = %v", err)
	}

	var info map[string]string
	if err := json.Unmarshal(run.out.Bytes(), &info); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	for _, key := range []string{"version", "commit", "build_time", "go_version"} {
		if _, ok := info[key]; !ok {
			t.Errorf("version output missing %q", key)
		}
	}
}

func TestVersionAction_Table(t *testing.T) {
	run := makeTestContext(t, "", nil)
	if err := versionAction(run.ctx); err != nil {
		t.Fatalf("versionAction() error = %v", err)
	}
	assertContains(t, run.out.String(), "FIELD", "version", "go_version")
}

func TestConfigShow(t *testing.T) {
	run := makeTestContext(t, "table.example.com:1", nil)
	if err := configShow(run.ctx); err != nil {
		t.Fatalf("configShow() error = %v", err)
	}
	assertContains(t, run.out.String(), "server", "table.example.com:1", "poll_interval", "1s", "5s")
}
