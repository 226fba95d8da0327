package app

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"tourguide.openclassrooms.org/internal/middleware"
)

// Routes registers every endpoint and wraps the router with the Sentry and
// security header middlewares. ctx bounds the lifetime of the /metrics cache.
//
//	GET    /v1/healthcheck
//	GET    /metrics
//	GET    /getLocation?userName=
//	POST   /trackLocation?userName=
//	GET    /getNearbyAttractions?userName=
//	GET    /getRewards?userName=
//	GET    /getTripDeals?userName=
//	PUT    /proximityBuffer?miles=
//	DELETE /proximityBuffer
//	GET    /getAttractions.kml
func (app *Application) Routes(ctx context.Context) http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errorResponse(w, http.StatusNotFound, "the requested resource could not be found")
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errorResponse(w, http.StatusMethodNotAllowed, r.Method+" is not supported for this resource")
	})

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)
	router.Handler(http.MethodGet, "/metrics", middleware.NewCachedPromHandler(ctx, prometheus.DefaultGatherer, 10*time.Second, app.Logger))

	router.HandlerFunc(http.MethodGet, "/getLocation", app.getLocationHandler)
	router.HandlerFunc(http.MethodPost, "/trackLocation", app.trackLocationHandler)
	router.HandlerFunc(http.MethodGet, "/getNearbyAttractions", app.getNearbyAttractionsHandler)
	router.HandlerFunc(http.MethodGet, "/getRewards", app.getRewardsHandler)
	router.HandlerFunc(http.MethodGet, "/getTripDeals", app.getTripDealsHandler)
	router.HandlerFunc(http.MethodPut, "/proximityBuffer", app.setProximityBufferHandler)
	router.HandlerFunc(http.MethodDelete, "/proximityBuffer", app.resetProximityBufferHandler)
	router.HandlerFunc(http.MethodGet, "/getAttractions.kml", app.attractionsKMLHandler)

	handler := middleware.SentryMiddleware(router)
	return middleware.SecurityHeaders(handler)
}
