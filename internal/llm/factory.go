package llm

import (
	"context"
	"fmt"
	"log"
	"strings"

	"wine-interviewer/internal/config"
)

const (
	ProviderOpenAI = "openai"
	ProviderYandex = "yandex"
)

// Factory creates LLM clients from the loaded configuration.
type Factory struct {
	OpenAI           OpenAIOptions
	YandexOAuthToken string
	YandexFolderID   string
}

func NewFactory(cfg *config.Config) *Factory {
	return &Factory{
		OpenAI: OpenAIOptions{
			APIKey:      cfg.OpenAIAPIKey,
			BaseURL:     cfg.OpenAIBaseURL,
			Model:       cfg.OpenAIModel,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Referrer:    cfg.OpenRouterReferrer,
			Title:       cfg.OpenRouterTitle,
		},
		YandexOAuthToken: cfg.YandexOAuthToken,
		YandexFolderID:   cfg.YandexFolderID,
	}
}

func (f *Factory) CreateClient(provider string) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case ProviderOpenAI:
		return NewOpenAI(f.OpenAI), nil
	case ProviderYandex:
		return NewYandex(f.YandexOAuthToken, f.YandexFolderID)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}

// Logged wraps a client and logs token usage of every call.
func Logged(name string, c Client) Client { return loggedClient{name: name, next: c} }

type loggedClient struct {
	name string
	next Client
}

func (l loggedClient) Generate(ctx context.Context, messages []Message) (Response, error) {
	resp, err := l.next.Generate(ctx, messages)
	if err != nil {
		log.Printf("[%s] llm call failed: %v", l.name, err)
		return resp, err
	}
	log.Printf("[%s] LLM response [model=%s, tokens: prompt=%d, completion=%d, total=%d]",
		l.name, resp.Model, resp.PromptTokens, resp.CompletionTokens, resp.TotalTokens)
	return resp, nil
}
