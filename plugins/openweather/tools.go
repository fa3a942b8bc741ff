package openweather

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/asmaiqbal85/ai-weather-agent/log"
	toolspkg "github.com/asmaiqbal85/ai-weather-agent/tools"
)

// ToolName is the name the model uses to invoke the weather lookup
const ToolName = "get_weather"

// registerTools registers all OpenWeatherMap tools
func (c *Client) registerTools(gk *genkit.Genkit, registry *toolspkg.Registry) {
	if gk == nil || registry == nil {
		return
	}
	NewWeatherTool(c, gk, registry)
}

// WeatherInput is the input schema for the get_weather tool
type WeatherInput struct {
	City string `json:"city" description:"Name of the city to get current weather for"`
}

// WeatherTool exposes the weather client as an agent-callable tool.
// It is the boundary between deterministic lookup logic and the model:
// every failure is converted to user-facing text here, so the agent
// always receives a plain sentence it can relay.
type WeatherTool struct {
	client *Client
}

// NewWeatherTool creates the get_weather tool and registers it
func NewWeatherTool(client *Client, gk *genkit.Genkit, registry *toolspkg.Registry) *WeatherTool {
	t := &WeatherTool{client: client}
	if gk == nil || registry == nil {
		return t
	}

	registry.Register(genkit.DefineTool[*WeatherInput, string](
		gk,
		ToolName,
		t.Description(),
		func(ctx *ai.ToolContext, input *WeatherInput) (string, error) {
			return t.Report(ctx, input.City), nil
		},
	), t.Execute)
	return t
}

func (t *WeatherTool) Name() string {
	return ToolName
}

func (t *WeatherTool) Description() string {
	return "Get current weather for a given city."
}

// Execute adapts Report to the generic tool contract
func (t *WeatherTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	city, _ := args["city"].(string)
	return t.Report(ctx, city), nil
}

var _ toolspkg.Tool = (*WeatherTool)(nil)

// Report looks up current conditions and renders them as one sentence.
// It never returns an error: lookup failures become apology text.
func (t *WeatherTool) Report(ctx context.Context, city string) string {
	log.Debugf(ctx, "WeatherTool executing for city %q", city)

	obs, err := t.client.CurrentWeather(ctx, city)
	if err != nil {
		log.Warnf(ctx, "WeatherTool lookup failed: %v", err)
		return apology(err, city)
	}

	return FormatObservation(obs)
}

// FormatObservation renders an observation as a short weather report
func FormatObservation(obs *Observation) string {
	return fmt.Sprintf("It is %s in %s with a temperature of %s and humidity of %d%%.",
		obs.Description, obs.City, formatNumber(obs.Temperature), obs.Humidity)
}

// formatNumber prints 29.0 as "29" and 28.5 as "28.5"
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func apology(err error, city string) string {
	switch KindOf(err) {
	case KindNotFound:
		return fmt.Sprintf("I could not find weather data for %s.", city)
	case KindProviderUnavailable:
		return "The weather service is unavailable right now. Please try again in a moment."
	case KindNetworkError:
		return "I could not reach the weather service. Please try again later."
	default:
		if strings.TrimSpace(city) == "" {
			return "I need a city name to look up the weather."
		}
		return fmt.Sprintf("I got an unexpected answer from the weather service for %s.", city)
	}
}
