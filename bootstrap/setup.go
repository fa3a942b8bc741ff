package bootstrap

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/ollama"
	"gorm.io/gorm"

	"github.com/asmaiqbal85/ai-weather-agent/agents"
	"github.com/asmaiqbal85/ai-weather-agent/config"
	"github.com/asmaiqbal85/ai-weather-agent/log"
	"github.com/asmaiqbal85/ai-weather-agent/orm"
	"github.com/asmaiqbal85/ai-weather-agent/plugins/openweather"
	"github.com/asmaiqbal85/ai-weather-agent/tools"
)

// App holds the initialized components of the application
type App struct {
	Assistant *agents.WeatherAssistant
	Genkit    *genkit.Genkit
	Registry  *tools.Registry
	Weather   *openweather.Client
	DB        *gorm.DB
	Model     ai.Model
}

// Setup initializes the application components based on the configuration
func Setup(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// 1. Setup Genkit with AI Plugin
	var gk *genkit.Genkit
	var model ai.Model

	if cfg.AI.Plugin == "ollama" {
		log.Infof(ctx, "Using Ollama Plugin (Model: %s)...", cfg.AI.Ollama.Model)
		ollamaPlugin := &ollama.Ollama{
			ServerAddress: cfg.AI.Ollama.BaseURL,
		}
		gk = genkit.Init(ctx, genkit.WithPlugins(ollamaPlugin))

		model = ollamaPlugin.DefineModel(gk, ollama.ModelDefinition{
			Name: cfg.AI.Ollama.Model,
			Type: "chat",
		}, &ai.ModelOptions{
			Supports: &ai.ModelSupports{
				Multiturn:  true,
				SystemRole: true,
				Tools:      true,
				Media:      false,
			},
		})
	} else {
		log.Infof(ctx, "Using Gemini Plugin (Model: %s)...", cfg.AI.Gemini.Model)
		gk = genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{
			APIKey: cfg.AI.Gemini.APIKey,
		}))
		model = googlegenai.GoogleAIModel(gk, cfg.AI.Gemini.Model)
	}

	// 2. Init Tools Registry
	registry := tools.NewRegistry()

	// Initializing the weather client registers its tool automatically
	weather := openweather.NewClient(cfg.Weather, gk, registry)

	// 3. Conversation store
	db, err := orm.Open(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open conversation store: %w", err)
	}

	// 4. Assistant
	assistant := agents.NewWeatherAssistant(gk, registry, model)

	return &App{
		Assistant: assistant,
		Genkit:    gk,
		Registry:  registry,
		Weather:   weather,
		DB:        db,
		Model:     model,
	}, nil
}
