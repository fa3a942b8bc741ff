package agents

import (
	"context"
	"fmt"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/asmaiqbal85/ai-weather-agent/log"
	"github.com/asmaiqbal85/ai-weather-agent/tools"
)

const systemPrompt = `You are a weather assistant that provides current weather information.

When asked about the weather, use the get_weather tool to fetch accurate data.
If the user doesn't specify a country code and ambiguity exists,
ask for clarification (e.g., Paris, France vs. Paris, Texas).

In addition to weather details, always generate friendly commentary,
including clothing suggestions or activity recommendations based on conditions.`

// WeatherAssistant binds the model, the weather instructions and the
// registered tools. Whether and how often the model calls the tool per
// turn is the model's decision; the assistant only bounds the loop.
type WeatherAssistant struct {
	genkit   *genkit.Genkit
	registry *tools.Registry
	model    ai.Model
}

// NewWeatherAssistant creates the conversational weather agent
func NewWeatherAssistant(gk *genkit.Genkit, registry *tools.Registry, model ai.Model) *WeatherAssistant {
	return &WeatherAssistant{
		genkit:   gk,
		registry: registry,
		model:    model,
	}
}

// Reply answers one user message, replaying prior turns as context
func (a *WeatherAssistant) Reply(ctx context.Context, history []Turn, message string) (string, error) {
	log.Infof(ctx, "WeatherAssistant replying to: %s", message)

	var toolRefs []ai.ToolRef
	if a.registry != nil {
		for _, tool := range a.registry.GetTools() {
			toolRefs = append(toolRefs, tool)
		}
	}

	system := fmt.Sprintf("Today is %s.\n%s", time.Now().Format("2006-01-02"), systemPrompt)

	response, err := genkit.Generate(ctx,
		a.genkit,
		ai.WithModel(a.model),
		ai.WithSystem(system),
		ai.WithMessages(historyMessages(history)...),
		ai.WithPrompt(message),
		ai.WithTools(toolRefs...),
		ai.WithMaxTurns(5),
	)
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}

	log.Debugf(ctx, "WeatherAssistant finish reason: %v", response.FinishReason)
	return response.Text(), nil
}

// historyMessages converts stored turns into model messages
func historyMessages(history []Turn) []*ai.Message {
	msgs := make([]*ai.Message, 0, len(history))
	for _, turn := range history {
		switch turn.Role {
		case RoleModel:
			msgs = append(msgs, ai.NewModelTextMessage(turn.Content))
		default:
			msgs = append(msgs, ai.NewUserTextMessage(turn.Content))
		}
	}
	return msgs
}
