package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log    Log    `yaml:"log"`
	Server Server `yaml:"server"`
	OpenAI Model  `yaml:"openai"`
	Events Events `yaml:"events"`
	MCP    MCP    `yaml:"mcp"`
}

type Model struct {
	// OpenAI-compatible base url
	BaseURL string `yaml:"base_url" example:"https://api.openai.com/v1" validate:"required"`
	// OpenAI token, overridable via the OPENAI_API_KEY env var
	Token string `yaml:"token" example:"sk-proj-abc123456789DEF789ghi012JKL345mno678PQR901stu234VWX"`
	// Model name
	Model string `yaml:"model" example:"gpt-4" validate:"required"`
	// Sampling temperature
	Temperature float64 `yaml:"temperature" example:"1.0"`
	// Completion token cap
	MaxTokens int `yaml:"max_tokens" example:"800"`
}

type Server struct {
	// HTTP listen address for the chat API
	Listen string `yaml:"listen" example:":8080"`
}

type Events struct {
	// Path to the events dataset CSV
	Path string `yaml:"path" example:"data/athens_events.csv" validate:"required"`
}

type MCP struct {
	// Serve the event table as MCP tools over stdio
	Enabled bool `yaml:"enabled" example:"false"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	if result.Server.Listen == "" {
		result.Server.Listen = ":8080"
	}
	if result.Events.Path == "" {
		result.Events.Path = "data/athens_events.csv"
	}
	if result.OpenAI.Temperature == 0 {
		result.OpenAI.Temperature = 1.0
	}
	if result.OpenAI.MaxTokens == 0 {
		result.OpenAI.MaxTokens = 800
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		result.OpenAI.Token = key
	}
	if result.OpenAI.Token == "" {
		return nil, oops.Errorf("openai token is not set (config or OPENAI_API_KEY)")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}
