package main

import (
	"context"
	"runtime"

	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"tourguide.openclassrooms.org/internal/app"
	"tourguide.openclassrooms.org/internal/report"
	"tourguide.openclassrooms.org/internal/utils"
)

var buildInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "tourguide_build_info",
	Help: "Build information of the running TourGuide server, always 1",
}, []string{"version", "env", "go_version"})

func registerBuildInfo(env string) {
	buildInfo.WithLabelValues(version, env, runtime.Version()).Set(1)
}

// warmCatalog loads the attraction catalog once so the healthcheck turns
// ready without waiting for the first request.
func warmCatalog(ctx context.Context, application *app.Application) {
	attractions, err := application.Catalog.Attractions(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		application.Logger.Error("Failed to load attraction catalog", "error", err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("stage", "startup"),
			Level: sentry.LevelWarning,
		})
		return
	}
	application.Logger.Info("Attraction catalog loaded", "attractions", len(attractions))
}
