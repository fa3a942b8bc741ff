package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/firebase/genkit/go/genkit"

	"github.com/asmaiqbal85/ai-weather-agent/config"
	"github.com/asmaiqbal85/ai-weather-agent/log"
	"github.com/asmaiqbal85/ai-weather-agent/tools"
)

const (
	// BaseURL is the OpenWeatherMap current-conditions endpoint root
	BaseURL = "https://api.openweathermap.org/data/2.5"

	// DefaultUnits is the measurement system requested from the provider
	DefaultUnits = "metric"
)

// Client is the OpenWeatherMap API client
type Client struct {
	BaseURL    string
	Units      string
	HTTPClient *http.Client

	apiKey string
}

// NewClient creates a new OpenWeatherMap client and registers its tools
func NewClient(cfg config.WeatherConfig, gk *genkit.Genkit, registry *tools.Registry) *Client {
	if cfg.APIKey == "" {
		log.Warn(context.Background(), "OpenWeatherMap API key is empty, weather lookups will fail")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = BaseURL
	}
	units := cfg.Units
	if units == "" {
		units = DefaultUnits
	}
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}

	client := &Client{
		BaseURL:    baseURL,
		Units:      units,
		HTTPClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
		apiKey:     cfg.APIKey,
	}

	client.registerTools(gk, registry)

	return client
}

// Observation is the structured result of one current-conditions lookup
type Observation struct {
	City        string   `json:"city"`
	Temperature float64  `json:"temperature"`
	FeelsLike   float64  `json:"feels_like"`
	Description string   `json:"description"`
	Humidity    int      `json:"humidity"`
	WindSpeed   float64  `json:"wind_speed"`
	Pressure    int      `json:"pressure"`
	Visibility  *int     `json:"visibility,omitempty"`
	Rain1h      *float64 `json:"rain_1h,omitempty"`
}

// currentResponse mirrors the provider's /weather payload
type currentResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Visibility *int `json:"visibility"`
	Rain       *struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
	// cod is a number on success and a string on error payloads
	Cod     json.RawMessage `json:"cod"`
	Message string          `json:"message"`
}

func (r *currentResponse) codValue() int {
	cod := strings.Trim(string(r.Cod), `"`)
	var n int
	fmt.Sscanf(cod, "%d", &n)
	return n
}

// CurrentWeather fetches current conditions for a city.
// It issues exactly one GET with no retries; all failures come back
// as a *LookupError.
func (c *Client) CurrentWeather(ctx context.Context, city string) (*Observation, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		// Caller error, never attempted against the network
		return nil, &LookupError{Kind: KindInvalidResponse, City: city, Err: fmt.Errorf("city is required")}
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", c.Units)

	reqURL := fmt.Sprintf("%s/weather?%s", c.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &LookupError{Kind: KindInvalidResponse, City: city, Err: err}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		// DNS, refused connection, transport-level timeout
		return nil, &LookupError{Kind: KindNetworkError, City: city, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &LookupError{Kind: KindNotFound, City: city, StatusCode: resp.StatusCode}
	case resp.StatusCode >= 500:
		return nil, &LookupError{Kind: KindProviderUnavailable, City: city, StatusCode: resp.StatusCode}
	case resp.StatusCode != http.StatusOK:
		return nil, &LookupError{
			Kind: KindInvalidResponse, City: city, StatusCode: resp.StatusCode,
			Err: fmt.Errorf("unexpected status"),
		}
	}

	var payload currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &LookupError{Kind: KindInvalidResponse, City: city, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	// Some gateways return 200 with an error body; trust the provider code
	if cod := payload.codValue(); cod != 0 && cod != http.StatusOK {
		kind := KindInvalidResponse
		if cod == http.StatusNotFound {
			kind = KindNotFound
		} else if cod >= 500 {
			kind = KindProviderUnavailable
		}
		return nil, &LookupError{Kind: kind, City: city, StatusCode: cod, Err: fmt.Errorf("%s", payload.Message)}
	}

	if err := validatePayload(&payload); err != nil {
		return nil, &LookupError{Kind: KindInvalidResponse, City: city, StatusCode: resp.StatusCode, Err: err}
	}

	obs := &Observation{
		City:        payload.Name,
		Temperature: payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		Description: payload.Weather[0].Description,
		Humidity:    payload.Main.Humidity,
		WindSpeed:   payload.Wind.Speed,
		Pressure:    payload.Main.Pressure,
		Visibility:  payload.Visibility,
	}
	if payload.Rain != nil {
		rain := payload.Rain.OneHour
		obs.Rain1h = &rain
	}

	log.Debugf(ctx, "OpenWeatherMap lookup for %q: %.1f° %s, humidity %d%%", city, obs.Temperature, obs.Description, obs.Humidity)
	return obs, nil
}

// validatePayload rejects 200 bodies missing the documented weather shape.
// An absent field is an invalid response, not a default.
func validatePayload(p *currentResponse) error {
	if p.Name == "" {
		return fmt.Errorf("missing location name")
	}
	if len(p.Weather) == 0 {
		return fmt.Errorf("missing weather conditions")
	}
	if p.Main.Humidity < 0 || p.Main.Humidity > 100 {
		return fmt.Errorf("humidity %d out of range", p.Main.Humidity)
	}
	return nil
}
