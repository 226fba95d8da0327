package app

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"tourguide.openclassrooms.org/internal/models"
	"tourguide.openclassrooms.org/internal/utils"
)

// HealthStatus is the body of the /v1/healthcheck response.
//
// Ready is true once the attraction catalog has been loaded; until then the
// endpoint answers 503 so load balancers hold traffic back.
type HealthStatus struct {
	Status        string `json:"status"`
	Environment   string `json:"environment"`
	Version       string `json:"version"`
	Travelers     int    `json:"travelers"`
	CatalogLoaded bool   `json:"catalogLoaded"`
	Ready         bool   `json:"ready"`
}

func (app *Application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	loaded := app.Catalog.Loaded()
	status := HealthStatus{
		Status:        "available",
		Environment:   app.Config.Env,
		Version:       app.Version,
		Travelers:     app.Service.Directory.Len(),
		CatalogLoaded: loaded,
		Ready:         loaded,
	}

	code := http.StatusOK
	if !loaded {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

func (app *Application) getLocationHandler(w http.ResponseWriter, r *http.Request) {
	traveler, ok := app.travelerFromQuery(w, r)
	if !ok {
		return
	}
	visit, err := app.Service.GetUserLocation(r.Context(), traveler)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, visit)
}

func (app *Application) trackLocationHandler(w http.ResponseWriter, r *http.Request) {
	traveler, ok := app.travelerFromQuery(w, r)
	if !ok {
		return
	}
	visit, err := app.Service.TrackUserLocation(r.Context(), traveler)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, visit)
}

func (app *Application) getNearbyAttractionsHandler(w http.ResponseWriter, r *http.Request) {
	traveler, ok := app.travelerFromQuery(w, r)
	if !ok {
		return
	}
	nearby, err := app.Service.NearbyAttractionsFor(r.Context(), traveler)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nearby)
}

func (app *Application) getRewardsHandler(w http.ResponseWriter, r *http.Request) {
	traveler, ok := app.travelerFromQuery(w, r)
	if !ok {
		return
	}
	rewards := app.Service.GetUserRewards(traveler)
	if rewards == nil {
		rewards = []models.Reward{}
	}
	writeJSON(w, http.StatusOK, rewards)
}

func (app *Application) getTripDealsHandler(w http.ResponseWriter, r *http.Request) {
	traveler, ok := app.travelerFromQuery(w, r)
	if !ok {
		return
	}
	offers, err := app.Service.GetTripDeals(r.Context(), traveler)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, offers)
}

type proximityBuffer struct {
	Miles float64 `json:"miles"`
}

func (app *Application) setProximityBufferHandler(w http.ResponseWriter, r *http.Request) {
	miles, err := strconv.ParseFloat(r.URL.Query().Get("miles"), 64)
	if err != nil || miles < 0 || math.IsNaN(miles) || math.IsInf(miles, 0) {
		errorResponse(w, http.StatusBadRequest, "miles must be a finite non-negative number")
		return
	}
	app.Proximity.SetProximityBuffer(miles)
	app.Logger.Info("Proximity buffer updated", "miles", utils.FormatMiles(miles))
	writeJSON(w, http.StatusOK, proximityBuffer{Miles: app.Proximity.ProximityBuffer()})
}

func (app *Application) resetProximityBufferHandler(w http.ResponseWriter, r *http.Request) {
	app.Proximity.ResetProximityBuffer()
	app.Logger.Info("Proximity buffer reset", "miles", utils.FormatMiles(app.Proximity.ProximityBuffer()))
	writeJSON(w, http.StatusOK, proximityBuffer{Miles: app.Proximity.ProximityBuffer()})
}

func (app *Application) attractionsKMLHandler(w http.ResponseWriter, r *http.Request) {
	attractions, err := app.Catalog.Attractions(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.google-earth.kml+xml")
	if err := writeAttractionsKML(w, attractions); err != nil {
		app.Logger.Error("Failed to write KML", "error", err)
	}
}

// travelerFromQuery resolves the userName query parameter, answering 400 or
// 404 itself when it cannot.
func (app *Application) travelerFromQuery(w http.ResponseWriter, r *http.Request) (*models.Traveler, bool) {
	name := r.URL.Query().Get("userName")
	if name == "" {
		errorResponse(w, http.StatusBadRequest, "userName is required")
		return nil, false
	}
	traveler, ok := app.Service.GetUser(name)
	if !ok {
		errorResponse(w, http.StatusNotFound, "user not found: "+name)
		return nil, false
	}
	return traveler, true
}

// serverErrorResponse maps collaborator failures to 503 and anything else
// to 500.
func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrProviderUnavailable), errors.Is(err, models.ErrOracleUnavailable):
		app.Logger.Warn("Upstream unavailable", "method", r.Method, "uri", r.URL.RequestURI(), "error", err)
		errorResponse(w, http.StatusServiceUnavailable, err.Error())
	default:
		app.Logger.Error("Request failed", "method", r.Method, "uri", r.URL.RequestURI(), "error", err)
		errorResponse(w, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
