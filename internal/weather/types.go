package weather

import "github.com/neexbeast/skyglance/internal/condition"

// WindUnit selects the unit wind speed is reported in.
type WindUnit string

const (
	WindMetersPerSecond   WindUnit = "m/s"
	WindKilometersPerHour WindUnit = "km/h"
)

// ParseWindUnit validates s. An empty string selects m/s.
func ParseWindUnit(s string) (WindUnit, error) {
	switch WindUnit(s) {
	case "", WindMetersPerSecond:
		return WindMetersPerSecond, nil
	case WindKilometersPerHour:
		return WindKilometersPerHour, nil
	default:
		return "", invalidInput("unsupported wind unit %q", s)
	}
}

// PlaceResult is the top geocoding match for a place name.
type PlaceResult struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	AdminRegion string  `json:"admin_region,omitempty"`
}

// CurrentConditions is the normalized current observation at a location.
// Humidity is nil when no hourly value lines up with the observation time.
type CurrentConditions struct {
	TemperatureC float64  `json:"temperature_c"`
	WindSpeed    float64  `json:"wind_speed"`
	WindUnit     WindUnit `json:"wind_unit"`
	WeatherCode  int      `json:"weather_code"`
	ObservedAt   string   `json:"observed_at"`
	Humidity     *int     `json:"humidity"`
}

// Report is the result of a full lookup: where, what, and how to show it.
type Report struct {
	Place        PlaceResult          `json:"place"`
	Conditions   CurrentConditions    `json:"conditions"`
	TemperatureF float64              `json:"temperature_f"`
	Text         string               `json:"text"`
	Emoji        string               `json:"emoji"`
	Theme        condition.Theme      `json:"theme"`
	Background   condition.Background `json:"background"`
	Overlay      condition.Overlay    `json:"overlay"`
}
