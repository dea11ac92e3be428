package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config.yaml"

type Config struct {
	Log    Log    `yaml:"log"`
	Server Server `yaml:"server"`
	OpenAI OpenAI `yaml:"openai"`
	Client Client `yaml:"client"`
}

type Server struct {
	// Listen address of the completion gateway
	Addr string `yaml:"addr" example:":3001" validate:"required"`
}

type OpenAI struct {
	// OpenAI base url
	BaseURL string `yaml:"base_url" example:"https://api.openai.com/v1" validate:"required,url"`
	// OpenAI token, OPENAI_API_KEY overrides it
	Token string `yaml:"token" example:"sk-proj-abc123456789DEF789ghi012JKL345mno678PQR901stu234VWX"`
	// OpenAI model
	Model string `yaml:"model" example:"gpt-4o-mini" validate:"required"`
	// Completion length limit
	MaxTokens int `yaml:"max_tokens" example:"150" validate:"gt=0"`
	// Upper bound for a single completion call
	Timeout time.Duration `yaml:"timeout" example:"30s" validate:"gt=0"`
}

type Client struct {
	// Base url of the completion gateway, REPLYGEN_GATEWAY_URL overrides it
	GatewayURL string `yaml:"gateway_url" example:"http://localhost:3001" validate:"required,url"`
	// Directory the favorites file is written to
	ExportDir string `yaml:"export_dir" example:"." validate:"required"`
}

type Log struct {
	// Log file used by the terminal front end
	File string `yaml:"file" example:"replygen.log"`
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

// Load reads the YAML file at path. A missing file is not an error: defaults
// and environment overrides still apply.
func Load(path string) (*Config, error) {
	var result Config

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if len(data) > 0 {
		if err = yaml.Unmarshal(data, &result); err != nil {
			return nil, oops.Errorf("failed to parse YAML config: %w", err)
		}
	}

	result.applyEnvOverrides()
	result.applyDefaults()

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":3001"
	}
	if c.OpenAI.BaseURL == "" {
		c.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.OpenAI.MaxTokens == 0 {
		c.OpenAI.MaxTokens = 150
	}
	if c.OpenAI.Timeout == 0 {
		c.OpenAI.Timeout = 30 * time.Second
	}
	if c.Client.GatewayURL == "" {
		c.Client.GatewayURL = "http://localhost:3001"
	}
	if c.Client.ExportDir == "" {
		c.Client.ExportDir = "."
	}
	if c.Log.File == "" {
		c.Log.File = "replygen.log"
	}
}

func (c *Config) applyEnvOverrides() {
	if token := os.Getenv("OPENAI_API_KEY"); token != "" {
		c.OpenAI.Token = token
	}
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
	if url := os.Getenv("REPLYGEN_GATEWAY_URL"); url != "" {
		c.Client.GatewayURL = url
	}
}
