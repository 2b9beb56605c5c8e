package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultHTTPTimeout = 10 * time.Second

// newHTTPClient returns an http.Client with the given timeout, or 10 seconds when timeout is not positive.
func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

// doGet performs a GET request and decodes the JSON response into dst.
// A non-200 answer yields a *ServiceError tagged with service.
func doGet(ctx context.Context, client *http.Client, service, rawURL string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", rawURL, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ServiceError{Service: service, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding response from %s: %w: %w", rawURL, ErrDataUnavailable, err)
	}

	return nil
}

// withQuery appends q to baseURL, keeping any query already present.
func withQuery(baseURL string, q url.Values) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL %s: %w", baseURL, err)
	}
	merged := u.Query()
	for k, vs := range q {
		merged[k] = vs
	}
	u.RawQuery = merged.Encode()
	return u.String(), nil
}

// ---- Geocoding ----

// GeoClient resolves place names through the Open-Meteo geocoding API.
type GeoClient struct {
	baseURL string
	client  *http.Client
}

const geocodingDefaultURL = "https://geocoding-api.open-meteo.com/v1/search"

// NewGeoClient constructs a GeoClient using the production URL.
func NewGeoClient() *GeoClient {
	return &GeoClient{baseURL: geocodingDefaultURL, client: newHTTPClient(0)}
}

// NewGeoClientWithURL constructs a GeoClient pointing at a custom base URL.
func NewGeoClientWithURL(baseURL string, timeout time.Duration) *GeoClient {
	return &GeoClient{baseURL: baseURL, client: newHTTPClient(timeout)}
}

type geocodingResponse struct {
	Results []struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Name      string  `json:"name"`
		Country   string  `json:"country"`
		Admin1    string  `json:"admin1"`
	} `json:"results"`
}

// Resolve returns the top match for name.
// Returns nil, nil when the service answers but matches nothing.
func (c *GeoClient) Resolve(ctx context.Context, name string) (*PlaceResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidInput("place name is blank")
	}

	endpoint, err := withQuery(c.baseURL, url.Values{
		"name":  {name},
		"count": {"1"},
	})
	if err != nil {
		return nil, err
	}

	var raw geocodingResponse
	if err := doGet(ctx, c.client, "geocoding", endpoint, &raw); err != nil {
		return nil, fmt.Errorf("geocoding %s: %w", name, err)
	}

	if len(raw.Results) == 0 {
		return nil, nil
	}

	top := raw.Results[0]
	return &PlaceResult{
		Latitude:    top.Latitude,
		Longitude:   top.Longitude,
		Name:        top.Name,
		Country:     top.Country,
		AdminRegion: top.Admin1,
	}, nil
}

// ---- Forecast ----

// ForecastClient fetches current conditions from the Open-Meteo forecast API.
type ForecastClient struct {
	baseURL string
	client  *http.Client
}

const forecastDefaultURL = "https://api.open-meteo.com/v1/forecast"

// NewForecastClient constructs a ForecastClient using the production URL.
func NewForecastClient() *ForecastClient {
	return &ForecastClient{baseURL: forecastDefaultURL, client: newHTTPClient(0)}
}

// NewForecastClientWithURL constructs a ForecastClient pointing at a custom base URL.
func NewForecastClientWithURL(baseURL string, timeout time.Duration) *ForecastClient {
	return &ForecastClient{baseURL: baseURL, client: newHTTPClient(timeout)}
}

type forecastResponse struct {
	CurrentWeather *struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
		Time        string  `json:"time"`
	} `json:"current_weather"`
	Hourly *struct {
		Time             []string   `json:"time"`
		RelativeHumidity []*float64 `json:"relativehumidity_2m"`
	} `json:"hourly"`
}

// Fetch retrieves current conditions at the given coordinates.
// Wind speed arrives in km/h and is converted to unit.
func (c *ForecastClient) Fetch(ctx context.Context, latitude, longitude float64, unit WindUnit) (*CurrentConditions, error) {
	if err := validateCoordinates(latitude, longitude); err != nil {
		return nil, err
	}
	unit, err := ParseWindUnit(string(unit))
	if err != nil {
		return nil, err
	}

	endpoint, err := withQuery(c.baseURL, url.Values{
		"latitude":        {strconv.FormatFloat(latitude, 'f', -1, 64)},
		"longitude":       {strconv.FormatFloat(longitude, 'f', -1, 64)},
		"current_weather": {"true"},
		"hourly":          {"relativehumidity_2m"},
		"timezone":        {"auto"},
	})
	if err != nil {
		return nil, err
	}

	var raw forecastResponse
	if err := doGet(ctx, c.client, "forecast", endpoint, &raw); err != nil {
		return nil, fmt.Errorf("forecast for %g,%g: %w", latitude, longitude, err)
	}

	current := raw.CurrentWeather
	if current == nil {
		return nil, fmt.Errorf("forecast for %g,%g: %w: no current weather in response", latitude, longitude, ErrDataUnavailable)
	}

	var humidity *int
	if raw.Hourly != nil {
		humidity = matchHumidity(current.Time, raw.Hourly.Time, raw.Hourly.RelativeHumidity)
	}

	return &CurrentConditions{
		TemperatureC: current.Temperature,
		WindSpeed:    convertWind(current.WindSpeed, unit),
		WindUnit:     unit,
		WeatherCode:  current.WeatherCode,
		ObservedAt:   current.Time,
		Humidity:     humidity,
	}, nil
}

func validateCoordinates(latitude, longitude float64) error {
	if math.IsNaN(latitude) || math.IsNaN(longitude) {
		return invalidInput("latitude and longitude are required")
	}
	if latitude < -90 || latitude > 90 {
		return invalidInput("latitude %g out of range", latitude)
	}
	if longitude < -180 || longitude > 180 {
		return invalidInput("longitude %g out of range", longitude)
	}
	return nil
}

// convertWind converts a km/h reading to unit, rounded to one decimal.
func convertWind(kmh float64, unit WindUnit) float64 {
	if unit == WindMetersPerSecond {
		return roundTenth(kmh / 3.6)
	}
	return roundTenth(kmh)
}

// roundTenth rounds half away from zero at one decimal place.
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
