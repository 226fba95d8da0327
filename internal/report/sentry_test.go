package report_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"tourguide.openclassrooms.org/internal/models"
	"tourguide.openclassrooms.org/internal/report"
)

func TestSetupSentry(t *testing.T) {
	t.Run("Valid DSN", func(t *testing.T) {
		if err := report.SetupSentry("https://public@sentry.example.com/1", "testing", "test"); err != nil {
			t.Fatalf("SetupSentry failed: %v", err)
		}
		report.FlushSentry()
	})

	t.Run("Invalid DSN", func(t *testing.T) {
		if err := report.SetupSentry("not a dsn", "testing", "test"); err == nil {
			t.Error("expected error for an invalid DSN, got none")
		}
	})
}

func TestReportErrorWithSentryOptions(t *testing.T) {
	var (
		mu     sync.Mutex
		events []*sentry.Event
	)
	err := sentry.Init(sentry.ClientOptions{
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, event)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("sentry.Init failed: %v", err)
	}

	traveler := models.NewTraveler(uuid.New(), "jon", "000", "jon@tourGuide.com")
	report.ReportErrorWithSentryOptions(errors.New("oracle down"), report.SentryReportOptions{
		Tags:  report.TravelerTags(traveler),
		Level: sentry.LevelWarning,
	})
	report.ReportError(nil)

	mu.Lock()
	defer mu.Unlock()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if got := events[0].Tags["traveler_name"]; got != "jon" {
		t.Errorf("expected traveler_name tag 'jon', got %q", got)
	}
	if events[0].Level != sentry.LevelWarning {
		t.Errorf("expected level warning, got %q", events[0].Level)
	}
}

func TestReportSkipsCancellation(t *testing.T) {
	var (
		mu     sync.Mutex
		events []*sentry.Event
	)
	err := sentry.Init(sentry.ClientOptions{
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, event)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("sentry.Init failed: %v", err)
	}

	report.ReportError(fmt.Errorf("tracking jon: %w", context.Canceled))
	report.ReportErrorWithSentryOptions(errors.New("provider down"), report.SentryReportOptions{
		Fingerprint: []string{"location-provider"},
	})

	mu.Lock()
	defer mu.Unlock()
	if len(events) != 1 {
		t.Fatalf("expected only the provider failure to be reported, got %d events", len(events))
	}
	if fp := events[0].Fingerprint; len(fp) != 1 || fp[0] != "location-provider" {
		t.Errorf("unexpected fingerprint %v", fp)
	}
}
