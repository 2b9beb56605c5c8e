package api

import (
	"context"

	"github.com/neexbeast/skyglance/internal/weather"
)

// WeatherLookup defines the lookup pipeline needed by handlers.
type WeatherLookup interface {
	ByCity(ctx context.Context, name string, unit weather.WindUnit) (*weather.Report, error)
	ByCoordinates(ctx context.Context, latitude, longitude float64, unit weather.WindUnit) (*weather.Report, error)
}
