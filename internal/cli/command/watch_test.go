package command

import (
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yndnr/tablesync-go/internal/core/domain"
)

func TestWatchCommand_Flags(t *testing.T) {
	cmd := WatchCommand()

	flagNames := make(map[string]bool)
	for _, f := range cmd.Flags {
		flagNames[f.Names()[0]] = true
	}
	for _, name := range []string{"poll-interval", "retry-interval", "timeout"} {
		if !flagNames[name] {
			t.Errorf("watch should have --%s", name)
		}
	}
}

func TestWatchAction(t *testing.T) {
	var polls atomic.Int32

	srv := newMockServer(t)
	srv.handle("/table", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, sampleState())
	})
	srv.handle("/table/changes", func(w http.ResponseWriter, r *http.Request) {
		polls.Add(1)
		if r.URL.Query().Get("since") == "3" {
			jsonResponse(w, http.StatusOK, domain.State{
				Rows:     []domain.Row{{ID: "4", Name: "XRP", Price: 0.5, Revision: 4}},
				Revision: 4,
			})
			return
		}
		jsonResponse(w, http.StatusOK, domain.State{Rows: []domain.Row{}, Revision: 4})
	})

	run := makeTestContext(t, srv.URL, map[string]any{
		"poll-interval": 10 * time.Millisecond,
	}).withTimeout(t, 300*time.Millisecond)

	if err := watchAction(run.ctx); err != nil {
		t.Fatalf("watchAction() error = %v", err)
	}

	want := "1  BTC  111\n" +
		"2  LTC  222\n" +
		"3  ETH  333\n" +
		"Changes since revision 3:\n" +
		"4  XRP  0.5\n"
	if run.out.String() != want {
		t.Errorf("output =\n%q\nwant\n%q", run.out.String(), want)
	}
	if polls.Load() < 2 {
		t.Errorf("polls = %d, expected the loop to keep polling", polls.Load())
	}
}

func TestWatchAction_ConnectionLost(t *testing.T) {
	srv := newMockServer(t)
	url := srv.URL
	srv.Close()

	run := makeTestContext(t, url, map[string]any{
		"retry-interval": 20 * time.Millisecond,
	}).withTimeout(t, 200*time.Millisecond)

	if err := watchAction(run.ctx); err != nil {
		t.Fatalf("watchAction() error = %v, want clean exit on cancellation", err)
	}
	if run.out.Len() != 0 {
		t.Errorf("nothing should be rendered, got %q", run.out.String())
	}
	if !strings.Contains(run.errOut.String(), "connection lost") {
		t.Errorf("stderr = %q, want connection lost notice", run.errOut.String())
	}
}
