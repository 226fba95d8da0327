//go:build integration

package integration

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"tourguide.openclassrooms.org/internal/clients/gpsutil"
	"tourguide.openclassrooms.org/internal/clients/rewardcentral"
	"tourguide.openclassrooms.org/internal/gtfs"
)

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestGpsUtilConnection(t *testing.T) {
	if cfg.GpsUtilURL == "" {
		t.Skip("gps_util_url not configured")
	}
	client := gpsutil.NewClient(cfg.GpsUtilURL, http.DefaultClient, cfg.MaxRetries)
	ctx := testContext(t)

	attractions, err := client.Attractions(ctx)
	if err != nil {
		t.Fatalf("failed to fetch attractions: %v", err)
	}
	if len(attractions) == 0 {
		t.Fatal("expected a non-empty attraction catalog")
	}

	travelerID := uuid.New()
	visit, err := client.UserLocation(ctx, travelerID)
	if err != nil {
		t.Fatalf("failed to fetch user location: %v", err)
	}
	if visit.TravelerID != travelerID {
		t.Errorf("visit belongs to %s, want %s", visit.TravelerID, travelerID)
	}
}

func TestRewardCentralConnection(t *testing.T) {
	if cfg.RewardCentralURL == "" {
		t.Skip("reward_central_url not configured")
	}
	client := rewardcentral.NewClient(cfg.RewardCentralURL, http.DefaultClient, cfg.MaxRetries, cfg.RewardCentralRPS)

	points, err := client.AttractionRewardPoints(testContext(t), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("failed to fetch reward points: %v", err)
	}
	if points < 0 {
		t.Errorf("negative reward points %d", points)
	}
}

func TestGtfsCatalog(t *testing.T) {
	if cfg.CatalogGTFSPath == "" {
		t.Skip("catalog_gtfs_path not configured")
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	source := gtfs.NewSource(cfg.CatalogGTFSPath, http.DefaultClient, cfg.MaxRetries, logger)

	attractions, err := source.Attractions(testContext(t))
	if err != nil {
		t.Fatalf("failed to load GTFS catalog: %v", err)
	}
	t.Logf("loaded %d attractions from %s", len(attractions), cfg.CatalogGTFSPath)
}
