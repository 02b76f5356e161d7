package interview

import (
	"context"
	"errors"
	"strings"

	"wine-interviewer/internal/llm"
)

// Normalizer corrects spelling and grammar of a participant answer.
type Normalizer interface {
	Normalize(ctx context.Context, raw string) (string, error)
}

// ClassifyRequest asks which candidates a response addresses.
// Topic is empty when classifying main topics.
type ClassifyRequest struct {
	Response   string
	Candidates []string
	Topic      string
}

// Classifier returns the subset of candidates judged addressed.
type Classifier interface {
	Classify(ctx context.Context, req ClassifyRequest) ([]string, error)
}

type IntroRequest struct {
	Transcript   string
	LastResponse string
	Topic        string
	Remaining    []string
}

type SubtopicRequest struct {
	Transcript   string
	LastResponse string
	Topic        string
	Subtopic     string
	Covered      []string
	Remaining    []string
}

// QuestionGenerator writes the next interview question.
type QuestionGenerator interface {
	IntroQuestion(ctx context.Context, req IntroRequest) (string, error)
	SubtopicQuestion(ctx context.Context, req SubtopicRequest) (string, error)
}

// LLMNormalizer implements Normalizer on top of a language model.
type LLMNormalizer struct {
	client llm.Client
}

func NewLLMNormalizer(c llm.Client) *LLMNormalizer { return &LLMNormalizer{client: c} }

// Normalize returns "" for blank input without calling the model.
func (n *LLMNormalizer) Normalize(ctx context.Context, raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", nil
	}
	resp, err := n.client.Generate(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: grammarSystemPrompt},
		{Role: llm.RoleUser, Content: grammarPrompt(text)},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Content), nil
}

// LLMClassifier implements Classifier on top of a language model.
type LLMClassifier struct {
	client llm.Client
}

func NewLLMClassifier(c llm.Client) *LLMClassifier { return &LLMClassifier{client: c} }

func (c *LLMClassifier) Classify(ctx context.Context, req ClassifyRequest) ([]string, error) {
	if len(req.Candidates) == 0 || strings.TrimSpace(req.Response) == "" {
		return nil, nil
	}
	resp, err := c.client.Generate(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: personaPrompt},
		{Role: llm.RoleUser, Content: classifyPrompt(req)},
	})
	if err != nil {
		return nil, err
	}
	return ParseLabels(resp.Content, req.Candidates), nil
}

// LLMQuestioner implements QuestionGenerator on top of a language model.
type LLMQuestioner struct {
	client llm.Client
}

func NewLLMQuestioner(c llm.Client) *LLMQuestioner { return &LLMQuestioner{client: c} }

func (q *LLMQuestioner) IntroQuestion(ctx context.Context, req IntroRequest) (string, error) {
	return q.ask(ctx, introPrompt(req))
}

func (q *LLMQuestioner) SubtopicQuestion(ctx context.Context, req SubtopicRequest) (string, error) {
	return q.ask(ctx, subtopicPrompt(req))
}

func (q *LLMQuestioner) ask(ctx context.Context, prompt string) (string, error) {
	resp, err := q.client.Generate(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: personaPrompt},
		{Role: llm.RoleUser, Content: prompt},
	})
	if err != nil {
		return "", err
	}
	question := cleanQuestion(resp.Content)
	if question == "" {
		return "", errors.New("model returned an empty question")
	}
	return question, nil
}

// cleanQuestion drops speaker labels and wrapping quotes models like to add.
func cleanQuestion(s string) string {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"Interviewer:", "Question:"} {
		if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
			s = strings.TrimSpace(s[len(prefix):])
		}
	}
	if len(s) >= 2 && (s[0] == '"' && s[len(s)-1] == '"' || s[0] == '\'' && s[len(s)-1] == '\'') {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
