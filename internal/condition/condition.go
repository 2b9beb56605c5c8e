package condition

// Theme is the coarse light/dark signal derived from a weather code.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Background is the decorative mood derived from a weather code.
type Background string

const (
	BackgroundSunny   Background = "sunny"
	BackgroundCloudy  Background = "cloudy"
	BackgroundRainy   Background = "rainy"
	BackgroundSnowy   Background = "snowy"
	BackgroundFoggy   Background = "foggy"
	BackgroundThunder Background = "thunder"
)

// Overlay is the animated precipitation layer drawn over a weather card.
type Overlay string

const (
	OverlayNone Overlay = "none"
	OverlayRain Overlay = "rain"
	OverlaySnow Overlay = "snow"
)

const (
	unknownText  = "Unknown"
	unknownEmoji = "🌈"
)

var codeText = map[int]string{
	0:  "Clear",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	71: "Light snow",
	73: "Moderate snow",
	75: "Heavy snow",
	80: "Rain showers",
	81: "Moderate showers",
	82: "Violent showers",
	95: "Thunderstorm",
	96: "Thunder + slight hail",
	99: "Thunder + heavy hail",
}

var codeEmoji = map[int]string{
	0:  "☀️",
	1:  "🌤️",
	2:  "⛅",
	3:  "☁️",
	45: "🌫️",
	48: "🌫️",
	51: "🌦️",
	53: "🌦️",
	55: "🌧️",
	61: "🌧️",
	63: "🌧️",
	65: "🌧️",
	71: "❄️",
	73: "❄️",
	75: "❄️",
	80: "🌦️",
	81: "🌧️",
	82: "⛈️",
	95: "⛈️",
	96: "⛈️",
	99: "⛈️",
}

type codeSet map[int]struct{}

func newCodeSet(codes ...int) codeSet {
	s := make(codeSet, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

func (s codeSet) has(code int) bool {
	_, ok := s[code]
	return ok
}

var (
	darkCodes  = newCodeSet(3, 45, 48, 51, 53, 55, 61, 63, 65, 80, 81, 82, 95, 96, 99, 71, 73, 75)
	lightCodes = newCodeSet(0, 1)

	thunderCodes = newCodeSet(95, 96, 99)
	rainCodes    = newCodeSet(51, 53, 55, 61, 63, 65, 80, 81, 82)
	snowCodes    = newCodeSet(71, 73, 75)
	fogCodes     = newCodeSet(45, 48)
	cloudyCodes  = newCodeSet(2, 3)
	sunnyCodes   = newCodeSet(0, 1)

	rainOverlayCodes = newCodeSet(51, 53, 55, 61, 63, 65, 80, 81, 82, 95, 96, 99)
	snowOverlayCodes = newCodeSet(71, 73, 75, 77, 85, 86)
)

// Text returns a human-readable description of code, or "Unknown".
func Text(code int) string {
	if t, ok := codeText[code]; ok {
		return t
	}
	return unknownText
}

// Emoji returns a glyph for code, or a rainbow for unmapped codes.
func Emoji(code int) string {
	if e, ok := codeEmoji[code]; ok {
		return e
	}
	return unknownEmoji
}

// ThemeOf returns the light/dark theme for code.
// Partly cloudy (2) is dark even though its background is cloudy rather than gloomy.
func ThemeOf(code int) Theme {
	switch {
	case darkCodes.has(code):
		return ThemeDark
	case lightCodes.has(code):
		return ThemeLight
	case code == 2:
		return ThemeDark
	default:
		return ThemeLight
	}
}

// BackgroundOf returns the background mood for code. Unknown codes are sunny.
func BackgroundOf(code int) Background {
	switch {
	case thunderCodes.has(code):
		return BackgroundThunder
	case rainCodes.has(code):
		return BackgroundRainy
	case snowCodes.has(code):
		return BackgroundSnowy
	case fogCodes.has(code):
		return BackgroundFoggy
	case cloudyCodes.has(code):
		return BackgroundCloudy
	case sunnyCodes.has(code):
		return BackgroundSunny
	default:
		return BackgroundSunny
	}
}

// OverlayOf returns the precipitation layer for code. Thunder codes draw rain.
func OverlayOf(code int) Overlay {
	switch {
	case rainOverlayCodes.has(code):
		return OverlayRain
	case snowOverlayCodes.has(code):
		return OverlaySnow
	default:
		return OverlayNone
	}
}

// CelsiusToFahrenheit converts without rounding.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// Description bundles every presentation hint for a single weather code.
type Description struct {
	Code       int        `json:"code"`
	Text       string     `json:"text"`
	Emoji      string     `json:"emoji"`
	Theme      Theme      `json:"theme"`
	Background Background `json:"background"`
	Overlay    Overlay    `json:"overlay"`
}

// Describe classifies code along every axis.
func Describe(code int) Description {
	return Description{
		Code:       code,
		Text:       Text(code),
		Emoji:      Emoji(code),
		Theme:      ThemeOf(code),
		Background: BackgroundOf(code),
		Overlay:    OverlayOf(code),
	}
}
