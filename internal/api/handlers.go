package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/neexbeast/skyglance/internal/condition"
	"github.com/neexbeast/skyglance/internal/weather"
)

const (
	msgEnterCity        = "Please enter a city name."
	msgCityNotFound     = "City not found. Try a different name."
	msgCitySearchFailed = "Something went wrong. Try again later."
	msgLocationFailed   = "Could not fetch weather for your location."
	msgBadCoordinates   = "lat and lon must both be valid numbers"
)

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	lookup WeatherLookup
	log    *slog.Logger
}

// NewHandlers constructs Handlers with all required dependencies.
func NewHandlers(lookup WeatherLookup, log *slog.Logger) *Handlers {
	return &Handlers{lookup: lookup, log: log}
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// GetWeather handles GET /api/v1/weather.
// ?city=<name> geocodes first; ?lat=&lon= looks up a position directly.
// ?wind_unit= selects m/s (default) or km/h.
func (h *Handlers) GetWeather(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	unit, err := weather.ParseWindUnit(q.Get("wind_unit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if q.Has("lat") || q.Has("lon") {
		h.byCoordinates(w, r, q.Get("lat"), q.Get("lon"), unit)
		return
	}

	city := strings.TrimSpace(q.Get("city"))
	if city == "" {
		writeError(w, http.StatusBadRequest, msgEnterCity)
		return
	}

	report, err := h.lookup.ByCity(r.Context(), city, unit)
	if err != nil {
		switch {
		case errors.Is(err, weather.ErrNotFound):
			writeError(w, http.StatusNotFound, msgCityNotFound)
		case errors.Is(err, weather.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, msgEnterCity)
		default:
			h.log.Error("city lookup failed", "city", city, "err", err)
			writeError(w, upstreamStatus(err), msgCitySearchFailed)
		}
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (h *Handlers) byCoordinates(w http.ResponseWriter, r *http.Request, rawLat, rawLon string, unit weather.WindUnit) {
	lat, latErr := strconv.ParseFloat(rawLat, 64)
	lon, lonErr := strconv.ParseFloat(rawLon, 64)
	if latErr != nil || lonErr != nil {
		writeError(w, http.StatusBadRequest, msgBadCoordinates)
		return
	}

	report, err := h.lookup.ByCoordinates(r.Context(), lat, lon, unit)
	if err != nil {
		if errors.Is(err, weather.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("coordinate lookup failed", "lat", lat, "lon", lon, "err", err)
		writeError(w, upstreamStatus(err), msgLocationFailed)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// upstreamStatus maps lookup failures that are not the caller's fault.
func upstreamStatus(err error) int {
	var svcErr *weather.ServiceError
	switch {
	case errors.As(err, &svcErr), errors.Is(err, weather.ErrDataUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// GetCondition handles GET /api/v1/conditions/{code}.
func (h *Handlers) GetCondition(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.Atoi(chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "weather code must be an integer")
		return
	}

	writeJSON(w, http.StatusOK, condition.Describe(code))
}

// HealthHandlerFunc returns an http.HandlerFunc reporting liveness.
// Upstream APIs are not probed.
func HealthHandlerFunc(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("health check")
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
