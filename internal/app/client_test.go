package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"tourguide.openclassrooms.org/internal/metrics"
)

func sampleCount(t *testing.T, url, method, status string) uint64 {
	t.Helper()

	var m dto.Metric
	observer := metrics.OutgoingLatency.WithLabelValues(url, method, status)
	if err := observer.(prometheus.Metric).Write(&m); err != nil {
		t.Fatalf("failed to read histogram: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestPooledClientRecordsLatency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/users/") {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewPooledClient()
	label := server.URL + "/users/{id}/location"
	before := sampleCount(t, label, http.MethodGet, "200")

	for _, id := range []string{"6f1c2b8e-1d1a-4a5e-9a7e-2f9d0c1b3a4d", "a4e2d9f0-3b6c-4f1e-8d2a-5c7b9e0f1a23"} {
		resp, err := client.Get(server.URL + "/users/" + id + "/location?fresh=1")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
	}

	if got := sampleCount(t, label, http.MethodGet, "200") - before; got != 2 {
		t.Errorf("expected 2 samples under one normalized label, got %d", got)
	}

	resp, err := client.Get(server.URL + "/missing")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if got := sampleCount(t, server.URL+"/missing", http.MethodGet, "404"); got != 1 {
		t.Errorf("expected one 404 sample, got %d", got)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"/attractions", "/attractions"},
		{"/users/6f1c2b8e-1d1a-4a5e-9a7e-2f9d0c1b3a4d/location", "/users/{id}/location"},
		{"", ""},
		{"/rewardPoints", "/rewardPoints"},
	}
	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
