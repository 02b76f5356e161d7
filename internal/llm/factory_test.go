package llm

import (
	"context"
	"errors"
	"testing"

	"wine-interviewer/internal/config"
)

func TestFactory_CreateClient(t *testing.T) {
	f := NewFactory(&config.Config{OpenAIAPIKey: "k", OpenAIModel: "gpt-3.5-turbo", Temperature: 0.7, MaxTokens: 200})
	if f.OpenAI.Model != "gpt-3.5-turbo" || f.OpenAI.MaxTokens != 200 {
		t.Fatalf("options not copied: %+v", f.OpenAI)
	}

	c, err := f.CreateClient(" OpenAI ")
	if err != nil {
		t.Fatalf("create openai: %v", err)
	}
	if _, ok := c.(*OpenAIClient); !ok {
		t.Fatalf("unexpected client type %T", c)
	}

	if _, err := f.CreateClient("gigachat"); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

type stubClient struct {
	resp Response
	err  error
}

func (s stubClient) Generate(ctx context.Context, msgs []Message) (Response, error) {
	return s.resp, s.err
}

func TestLogged_PassesThrough(t *testing.T) {
	c := Logged("test", stubClient{resp: Response{Content: "ok", Model: "m"}})
	resp, err := c.Generate(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	if err != nil || resp.Content != "ok" {
		t.Fatalf("unexpected: %+v %v", resp, err)
	}

	boom := errors.New("boom")
	c = Logged("test", stubClient{err: boom})
	if _, err := c.Generate(context.Background(), nil); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
