package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	ProviderAPIHub = "apihub"
	ProviderOpenAI = "openai"
)

type Config struct {
	TelegramToken  string  `env:"TELEGRAM_BOT_TOKEN"`
	AdminUserIDs   []int64 `env:"ADMIN_USER_IDS" envSeparator:","`
	AllowedUserIDs []int64 `env:"ALLOWED_TELEGRAM_USER_IDS" envSeparator:","`

	Consultation ConsultationConfig `envPrefix:"CONSULTATION_"`
	OpenAIKey    string             `env:"OPENAI_API_KEY"`

	// Optional OpenAI-compatible server, e.g. https://proxy.local/v1.
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`

	// Idle time after which an unfinished intake is forgotten.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	LogLevel   string        `env:"LOG_LEVEL" envDefault:"info"`
}

type ConsultationConfig struct {
	Provider     string `env:"PROVIDER" envDefault:"apihub"`
	URL          string `env:"URL" envDefault:"https://apihub.staging.appply.link/chatgpt"`
	Model        string `env:"MODEL" envDefault:"gpt-4o"`
	SystemPrompt string `env:"SYSTEM_PROMPT" envDefault:"You are a helpful legal assistant. Please provide a brief consultation based on the information given about a legal case."`
}

// Load reads path as a dotenv file (a missing file is fine) and parses the
// environment into a Config. Variables already set win over the file.
func Load(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.Consultation.Provider = strings.ToLower(strings.TrimSpace(cfg.Consultation.Provider))
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.Consultation.Provider {
	case ProviderAPIHub:
		if strings.TrimSpace(c.Consultation.URL) == "" {
			return errors.New("CONSULTATION_URL is required for the apihub provider")
		}
	case ProviderOpenAI:
		if c.OpenAIKey == "" {
			return errors.New("OPENAI_API_KEY is required for the openai provider")
		}
	default:
		return fmt.Errorf("unknown CONSULTATION_PROVIDER %q", c.Consultation.Provider)
	}
	return nil
}
