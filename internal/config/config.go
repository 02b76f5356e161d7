package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

const (
	StoreSQLite = "sqlite"
	StoreJSONL  = "jsonl"

	ChannelConsole  = "console"
	ChannelTelegram = "telegram"
)

type Config struct {
	// LLM settings
	LLMProvider      LLMProvider `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey     string      `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string      `env:"OPENAI_BASE_URL"`
	OpenAIModel      string      `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	Temperature      float32     `env:"OPENAI_TEMPERATURE" envDefault:"0.7"`
	MaxTokens        int         `env:"OPENAI_MAX_TOKENS" envDefault:"200"`
	YandexOAuthToken string      `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string      `env:"YANDEX_FOLDER_ID"`

	// OpenRouter (optional)
	OpenRouterReferrer string `env:"OPENROUTER_REFERRER"`
	OpenRouterTitle    string `env:"OPENROUTER_TITLE"`

	// Storage
	StoreDriver string `env:"STORE_DRIVER" envDefault:"sqlite"`
	StorePath   string `env:"STORE_PATH" envDefault:"interview_data.db"`

	// Interview guide; built-in wine guide when empty
	GuidePath string `env:"GUIDE_PATH"`

	// Conversation channel
	Channel          string `env:"CHANNEL" envDefault:"console"`
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   int64  `env:"TELEGRAM_CHAT_ID"`

	// Interview policy
	MinSubtopicQuestions int `env:"MIN_SUBTOPIC_QUESTIONS" envDefault:"2"`
	MaxEmptyAttempts     int `env:"MAX_EMPTY_ATTEMPTS" envDefault:"5"`
	HistoryWindow        int `env:"HISTORY_WINDOW" envDefault:"2"`
}

func New() *Config {
	cfg, err := Parse()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}

// Load reads the configuration from the environment without validating it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse reads the configuration from the environment and validates it.
func Parse() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	switch LLMProvider(strings.ToLower(string(c.LLMProvider))) {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required for the openai provider"))
		}
	case ProviderYandex:
		if c.YandexOAuthToken == "" || c.YandexFolderID == "" {
			errs = append(errs, errors.New("YANDEX_OAUTH_TOKEN and YANDEX_FOLDER_ID are required for the yandex provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider))
	}
	switch c.StoreDriver {
	case StoreSQLite, StoreJSONL:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}
	switch c.Channel {
	case ChannelConsole:
	case ChannelTelegram:
		if c.TelegramBotToken == "" || c.TelegramChatID == 0 {
			errs = append(errs, errors.New("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are required for the telegram channel"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown CHANNEL %q", c.Channel))
	}
	if c.MinSubtopicQuestions < 2 {
		errs = append(errs, errors.New("MIN_SUBTOPIC_QUESTIONS must be at least 2"))
	}
	if c.MaxEmptyAttempts < 1 {
		errs = append(errs, errors.New("MAX_EMPTY_ATTEMPTS must be at least 1"))
	}
	if c.HistoryWindow < 0 {
		errs = append(errs, errors.New("HISTORY_WINDOW must not be negative"))
	}
	return errors.Join(errs...)
}
