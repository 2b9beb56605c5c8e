package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/skyglance/internal/api"
	"github.com/neexbeast/skyglance/internal/condition"
	"github.com/neexbeast/skyglance/internal/weather"
)

// ---- mock implementations ----

type mockLookup struct {
	byCityFn        func(ctx context.Context, name string, unit weather.WindUnit) (*weather.Report, error)
	byCoordinatesFn func(ctx context.Context, lat, lon float64, unit weather.WindUnit) (*weather.Report, error)
}

func (m *mockLookup) ByCity(ctx context.Context, name string, unit weather.WindUnit) (*weather.Report, error) {
	return m.byCityFn(ctx, name, unit)
}

func (m *mockLookup) ByCoordinates(ctx context.Context, lat, lon float64, unit weather.WindUnit) (*weather.Report, error) {
	return m.byCoordinatesFn(ctx, lat, lon, unit)
}

// ---- helpers ----

func sampleReport() *weather.Report {
	return &weather.Report{
		Place:        weather.PlaceResult{Latitude: 48.85, Longitude: 2.35, Name: "Paris", Country: "France"},
		Conditions:   weather.CurrentConditions{TemperatureC: 22.5, WindSpeed: 3.4, WindUnit: weather.WindMetersPerSecond, WeatherCode: 0},
		TemperatureF: 72.5,
		Text:         "Clear",
		Emoji:        "☀️",
		Theme:        condition.ThemeLight,
		Background:   condition.BackgroundSunny,
		Overlay:      condition.OverlayNone,
	}
}

func unexpectedLookup(t *testing.T) *mockLookup {
	return &mockLookup{
		byCityFn: func(_ context.Context, _ string, _ weather.WindUnit) (*weather.Report, error) {
			t.Fatal("ByCity should not be called")
			return nil, nil
		},
		byCoordinatesFn: func(_ context.Context, _, _ float64, _ weather.WindUnit) (*weather.Report, error) {
			t.Fatal("ByCoordinates should not be called")
			return nil, nil
		},
	}
}

const testToken = "secret-token"

func buildRouter(lookup api.WeatherLookup, token string) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	handlers := api.NewHandlers(lookup, log)
	return api.NewRouter(handlers, api.RouterOptions{Token: token}, log)
}

func do(t *testing.T, router http.Handler, target string, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body["error"]
}

// ---- GET /api/v1/weather?city= ----

func TestGetWeather_ByCity(t *testing.T) {
	var gotCity string
	var gotUnit weather.WindUnit
	lookup := unexpectedLookup(t)
	lookup.byCityFn = func(_ context.Context, name string, unit weather.WindUnit) (*weather.Report, error) {
		gotCity, gotUnit = name, unit
		return sampleReport(), nil
	}

	w := do(t, buildRouter(lookup, testToken), "/api/v1/weather?city=%20Paris%20&wind_unit=km/h", testToken)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Paris", gotCity)
	assert.Equal(t, weather.WindKilometersPerHour, gotUnit)

	var got weather.Report
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "Paris", got.Place.Name)
	assert.Equal(t, 22.5, got.Conditions.TemperatureC)
	assert.Nil(t, got.Conditions.Humidity)
	assert.Equal(t, condition.BackgroundSunny, got.Background)
}

func TestGetWeather_BlankCity(t *testing.T) {
	router := buildRouter(unexpectedLookup(t), "")

	for _, target := range []string{"/api/v1/weather?city=%20%20", "/api/v1/weather"} {
		w := do(t, router, target, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Equal(t, "Please enter a city name.", decodeError(t, w))
	}
}

func TestGetWeather_BadWindUnit(t *testing.T) {
	w := do(t, buildRouter(unexpectedLookup(t), ""), "/api/v1/weather?city=Paris&wind_unit=knots", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetWeather_CityNotFound(t *testing.T) {
	lookup := unexpectedLookup(t)
	lookup.byCityFn = func(_ context.Context, name string, _ weather.WindUnit) (*weather.Report, error) {
		return nil, fmt.Errorf("resolving %q: %w", name, weather.ErrNotFound)
	}

	w := do(t, buildRouter(lookup, ""), "/api/v1/weather?city=Atlantis", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "City not found. Try a different name.", decodeError(t, w))
}

func TestGetWeather_UpstreamFailures(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"service error", &weather.ServiceError{Service: "forecast", StatusCode: 500}, http.StatusBadGateway},
		{"data unavailable", fmt.Errorf("fetching: %w", weather.ErrDataUnavailable), http.StatusBadGateway},
		{"deadline", fmt.Errorf("GET: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"other", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lookup := unexpectedLookup(t)
			lookup.byCityFn = func(_ context.Context, _ string, _ weather.WindUnit) (*weather.Report, error) {
				return nil, tc.err
			}

			w := do(t, buildRouter(lookup, ""), "/api/v1/weather?city=Paris", "")
			assert.Equal(t, tc.want, w.Code)
			assert.Equal(t, "Something went wrong. Try again later.", decodeError(t, w))
		})
	}
}

// ---- GET /api/v1/weather?lat=&lon= ----

func TestGetWeather_ByCoordinates(t *testing.T) {
	lookup := unexpectedLookup(t)
	lookup.byCoordinatesFn = func(_ context.Context, lat, lon float64, unit weather.WindUnit) (*weather.Report, error) {
		assert.Equal(t, 40.71, lat)
		assert.Equal(t, -74.01, lon)
		assert.Equal(t, weather.WindMetersPerSecond, unit)
		r := sampleReport()
		r.Place = weather.PlaceResult{Latitude: lat, Longitude: lon, Name: "Your location"}
		return r, nil
	}

	w := do(t, buildRouter(lookup, ""), "/api/v1/weather?lat=40.71&lon=-74.01", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var got weather.Report
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "Your location", got.Place.Name)
}

func TestGetWeather_CoordinatesMissingOrMalformed(t *testing.T) {
	router := buildRouter(unexpectedLookup(t), "")

	for _, target := range []string{
		"/api/v1/weather?lat=40.71",
		"/api/v1/weather?lon=-74.01",
		"/api/v1/weather?lat=north&lon=1",
	} {
		w := do(t, router, target, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestGetWeather_CoordinatesRejectedByLookup(t *testing.T) {
	lookup := unexpectedLookup(t)
	lookup.byCoordinatesFn = func(_ context.Context, _, _ float64, _ weather.WindUnit) (*weather.Report, error) {
		return nil, fmt.Errorf("%w: latitude 95 out of range", weather.ErrInvalidInput)
	}

	w := do(t, buildRouter(lookup, ""), "/api/v1/weather?lat=95&lon=0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetWeather_CoordinatesUpstreamFailure(t *testing.T) {
	lookup := unexpectedLookup(t)
	lookup.byCoordinatesFn = func(_ context.Context, _, _ float64, _ weather.WindUnit) (*weather.Report, error) {
		return nil, &weather.ServiceError{Service: "forecast", StatusCode: 503}
	}

	w := do(t, buildRouter(lookup, ""), "/api/v1/weather?lat=1&lon=2", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Could not fetch weather for your location.", decodeError(t, w))
}

// ---- GET /api/v1/conditions/{code} ----

func TestGetCondition(t *testing.T) {
	w := do(t, buildRouter(unexpectedLookup(t), ""), "/api/v1/conditions/2", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var got condition.Description
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "Partly cloudy", got.Text)
	assert.Equal(t, condition.ThemeDark, got.Theme)
	assert.Equal(t, condition.BackgroundCloudy, got.Background)
}

func TestGetCondition_NotAnInteger(t *testing.T) {
	w := do(t, buildRouter(unexpectedLookup(t), ""), "/api/v1/conditions/fog", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ---- GET /api/v1/health ----

func TestHealth_OK(t *testing.T) {
	w := do(t, buildRouter(unexpectedLookup(t), testToken), "/api/v1/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

// ---- Auth middleware ----

func TestBearerAuth_NoHeader(t *testing.T) {
	w := do(t, buildRouter(unexpectedLookup(t), testToken), "/api/v1/weather?city=Paris", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBearerAuth_WrongToken(t *testing.T) {
	w := do(t, buildRouter(unexpectedLookup(t), testToken), "/api/v1/weather?city=Paris", "wrong-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBearerAuth_MissingBearerPrefix(t *testing.T) {
	router := buildRouter(unexpectedLookup(t), testToken)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/conditions/0", nil)
	req.Header.Set("Authorization", testToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBearerAuth_DisabledWithoutToken(t *testing.T) {
	w := do(t, buildRouter(unexpectedLookup(t), ""), "/api/v1/conditions/0", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

// ---- Rate limiting ----

func TestRateLimit(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := api.NewRouter(api.NewHandlers(unexpectedLookup(t), log), api.RouterOptions{RateLimit: 2}, log)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, do(t, router, "/api/v1/health", "").Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
