package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config aggregates all application configuration
type Config struct {
	AI      AIConfig      `yaml:"ai"`
	Weather WeatherConfig `yaml:"weather"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
}

type AIConfig struct {
	Plugin string       `yaml:"plugin" env:"AI_PLUGIN" env-default:"gemini"`
	Gemini GeminiConfig `yaml:"gemini"`
	Ollama OllamaConfig `yaml:"ollama"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model  string `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-2.0-flash"`
}

type OllamaConfig struct {
	Model   string `yaml:"model" env:"OLLAMA_MODEL" env-default:"qwen3:4b"`
	BaseURL string `yaml:"base_url" env:"OLLAMA_BASE_URL" env-default:"http://localhost:11434"`
}

// WeatherConfig holds the OpenWeatherMap provider settings
type WeatherConfig struct {
	APIKey         string `yaml:"api_key" env:"WEATHER_API_KEY"`
	BaseURL        string `yaml:"base_url" env:"WEATHER_BASE_URL" env-default:"https://api.openweathermap.org/data/2.5"`
	Units          string `yaml:"units" env:"WEATHER_UNITS" env-default:"metric"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env:"WEATHER_TIMEOUT_SECONDS" env-default:"10"`
}

type ServerConfig struct {
	Port string `yaml:"port" env:"PORT" env-default:"8000"`
}

type StorageConfig struct {
	Path string `yaml:"path" env:"STORAGE_PATH" env-default:"weather-agent.db"`
}

// Load reads configuration from config.yaml and environment variables
// Priority: Env Vars > Config File > Defaults
func Load() (*Config, error) {
	var cfg Config

	// Read config.yaml if present, then override with envs.
	err := cleanenv.ReadConfig("config.yaml", &cfg)
	if err != nil {
		// If file doesn't exist, just read env vars
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read env config: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks configuration the application cannot run without.
// A missing provider key is a fatal startup failure, never a per-query error.
func (c *Config) Validate() error {
	if c.Weather.APIKey == "" {
		return fmt.Errorf("WEATHER_API_KEY must be set")
	}
	if c.AI.Plugin != "ollama" && c.AI.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY must be set (or set AI_PLUGIN=ollama)")
	}
	return nil
}
