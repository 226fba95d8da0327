package gpsutil

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/dnaeon/go-vcr.v4/pkg/recorder"
)

// replayClient records the traffic produced by exercise against handler into
// a cassette, shuts the server down, and returns a client that replays the
// cassette. The returned base URL is the one the cassette was recorded with.
func replayClient(t *testing.T, handler http.Handler, exercise func(baseURL string, client *http.Client)) (string, *http.Client) {
	t.Helper()

	cassette := filepath.Join(t.TempDir(), "vcr", t.Name())
	server := httptest.NewServer(handler)

	rec, err := recorder.New(cassette, recorder.WithMode(recorder.ModeRecordOnly))
	if err != nil {
		t.Fatalf("Failed to create recorder: %v", err)
	}
	exercise(server.URL, &http.Client{Transport: rec, Timeout: 5 * time.Second})
	if err := rec.Stop(); err != nil {
		t.Fatalf("Failed to save cassette: %v", err)
	}
	server.Close()

	replay, err := recorder.New(cassette,
		recorder.WithMode(recorder.ModeReplayOnly),
		recorder.WithSkipRequestLatency(true),
	)
	if err != nil {
		t.Fatalf("Failed to load cassette: %v", err)
	}
	t.Cleanup(func() { replay.Stop() })

	return server.URL, &http.Client{Transport: replay, Timeout: 5 * time.Second}
}
