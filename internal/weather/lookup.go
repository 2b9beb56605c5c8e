package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/neexbeast/skyglance/internal/condition"
)

// placeResolver is the interface satisfied by GeoClient.
type placeResolver interface {
	Resolve(ctx context.Context, name string) (*PlaceResult, error)
}

// conditionsFetcher is the interface satisfied by ForecastClient.
type conditionsFetcher interface {
	Fetch(ctx context.Context, latitude, longitude float64, unit WindUnit) (*CurrentConditions, error)
}

// currentLocationName labels reports looked up by raw coordinates.
const currentLocationName = "Your location"

// Lookup runs the geocode → forecast → classify pipeline.
// It holds no per-request state, so one Lookup serves concurrent callers.
type Lookup struct {
	geo      placeResolver
	forecast conditionsFetcher
}

// NewLookup constructs a Lookup against the production Open-Meteo endpoints.
func NewLookup() *Lookup {
	return &Lookup{
		geo:      NewGeoClient(),
		forecast: NewForecastClient(),
	}
}

// NewLookupWithURLs constructs a Lookup against custom endpoints.
func NewLookupWithURLs(geocodingURL, forecastURL string, timeout time.Duration) *Lookup {
	return &Lookup{
		geo:      NewGeoClientWithURL(geocodingURL, timeout),
		forecast: NewForecastClientWithURL(forecastURL, timeout),
	}
}

// NewLookupWithClients constructs a Lookup with injectable clients (used in tests).
func NewLookupWithClients(g placeResolver, f conditionsFetcher) *Lookup {
	return &Lookup{geo: g, forecast: f}
}

// ByCity resolves name and reports current conditions at the top match.
// Returns ErrNotFound when geocoding matches nothing.
func (l *Lookup) ByCity(ctx context.Context, name string, unit WindUnit) (*Report, error) {
	place, err := l.geo.Resolve(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", name, err)
	}
	if place == nil {
		return nil, fmt.Errorf("resolving %q: %w", name, ErrNotFound)
	}

	return l.report(ctx, *place, unit)
}

// ByCoordinates reports current conditions at a caller-supplied position.
func (l *Lookup) ByCoordinates(ctx context.Context, latitude, longitude float64, unit WindUnit) (*Report, error) {
	place := PlaceResult{
		Latitude:  latitude,
		Longitude: longitude,
		Name:      currentLocationName,
	}
	return l.report(ctx, place, unit)
}

func (l *Lookup) report(ctx context.Context, place PlaceResult, unit WindUnit) (*Report, error) {
	cond, err := l.forecast.Fetch(ctx, place.Latitude, place.Longitude, unit)
	if err != nil {
		return nil, fmt.Errorf("fetching conditions for %s: %w", place.Name, err)
	}

	code := cond.WeatherCode
	return &Report{
		Place:        place,
		Conditions:   *cond,
		TemperatureF: condition.CelsiusToFahrenheit(cond.TemperatureC),
		Text:         condition.Text(code),
		Emoji:        condition.Emoji(code),
		Theme:        condition.ThemeOf(code),
		Background:   condition.BackgroundOf(code),
		Overlay:      condition.OverlayOf(code),
	}, nil
}
