package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"tourguide.openclassrooms.org/internal/config"
	"tourguide.openclassrooms.org/internal/models"
)

var disneyland = models.Coordinate{Latitude: 33.817595, Longitude: -117.922008}

// newTestApplication builds an Application on the in-process simulators with
// a single traveler, "jon", who was last seen at Disneyland.
func newTestApplication(t *testing.T) (*Application, *models.Traveler) {
	t.Helper()

	cfg := config.NewConfig(4000, "testing")
	cfg.InternalUserCount = 0
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	app := New(cfg, logger, NewPooledClient(), "test-version")
	t.Cleanup(app.Service.Stop)

	jon := models.NewTraveler(uuid.New(), "jon", "000", "jon@tourGuide.com")
	jon.AddVisit(models.NewVisit(jon.ID, disneyland, time.Now()))
	app.Service.AddUser(jon)
	return app, jon
}

// newTestServer serves app.Routes until the test ends.
func newTestServer(t *testing.T, app *Application) *httptest.Server {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	server := httptest.NewServer(app.Routes(ctx))
	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return server
}

func doRequest(t *testing.T, server *httptest.Server, method, path string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, server.URL+path, nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	resp, err := server.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}
