package report

import (
	"context"
	"errors"
	"os"
	"runtime"

	"github.com/getsentry/sentry-go"
	"tourguide.openclassrooms.org/internal/models"
)

// ConfigureScope tags every event with the service identity and attaches the
// host it runs on.
func ConfigureScope(env, version string) {
	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTags(map[string]string{
			"service":     "tourguide",
			"env":         env,
			"app_version": version,
			"go_version":  runtime.Version(),
		})
		scope.SetContext("host_info", map[string]interface{}{
			"hostname": hostname(),
			"num_cpu":  runtime.NumCPU(),
			"platform": runtime.GOOS + "/" + runtime.GOARCH,
		})
	})
}

func hostname() string {
	if name, err := os.Hostname(); err == nil {
		return name
	}
	return "unknown"
}

// ReportError sends err to Sentry at the given level, LevelError when none
// is given.
func ReportError(err error, levels ...sentry.Level) {
	level := sentry.LevelError
	if len(levels) > 0 {
		level = levels[0]
	}
	ReportErrorWithSentryOptions(err, SentryReportOptions{Level: level})
}

// SentryReportOptions carries the scope data attached to a single report.
//
// Fingerprint, when set, groups events by operation instead of by stack
// trace, so a flapping collaborator opens one issue rather than one per
// traveler.
type SentryReportOptions struct {
	ExtraContext map[string]interface{}
	Tags         map[string]string
	Level        sentry.Level
	Fingerprint  []string
}

// ReportErrorWithSentryOptions sends err to Sentry inside a scope built from
// opts. Nil errors and cancellations are dropped: a cancelled request or a
// tracker shutting down is not a failure.
func ReportErrorWithSentryOptions(err error, opts SentryReportOptions) {
	if !reportable(err) {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		if opts.ExtraContext != nil {
			scope.SetContext("extra", opts.ExtraContext)
		}
		scope.SetTags(opts.Tags)
		if opts.Level != "" {
			scope.SetLevel(opts.Level)
		}
		if len(opts.Fingerprint) > 0 {
			scope.SetFingerprint(opts.Fingerprint)
		}
		sentry.CaptureException(err)
	})
}

func reportable(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled)
}

// TravelerTags returns the Sentry tags identifying a traveler.
func TravelerTags(t *models.Traveler) map[string]string {
	return map[string]string{
		"traveler_id":   t.ID.String(),
		"traveler_name": t.Name,
	}
}
