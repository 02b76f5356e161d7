package interview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"wine-interviewer/internal/llm"
	"wine-interviewer/internal/storage"
)

type scriptedChannel struct {
	inputs []string
	said   []string
}

func (c *scriptedChannel) Say(ctx context.Context, text string) error {
	c.said = append(c.said, text)
	return nil
}

func (c *scriptedChannel) Listen(ctx context.Context) (string, error) {
	if len(c.inputs) == 0 {
		return "", io.EOF
	}
	in := c.inputs[0]
	c.inputs = c.inputs[1:]
	return in, nil
}

func (c *scriptedChannel) count(text string) int {
	n := 0
	for _, s := range c.said {
		if s == text {
			n++
		}
	}
	return n
}

type trimNormalizer struct{ calls int }

func (n *trimNormalizer) Normalize(ctx context.Context, raw string) (string, error) {
	n.calls++
	return strings.TrimSpace(raw), nil
}

// fakeClassifier answers topic requests with topics and subtopic requests
// with subs[response]; results are filtered to the candidates.
type fakeClassifier struct {
	topics []string
	subs   map[string][]string
	err    error
	calls  []ClassifyRequest
}

func (f *fakeClassifier) Classify(ctx context.Context, req ClassifyRequest) ([]string, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	labels := f.topics
	if req.Topic != "" {
		labels = f.subs[req.Response]
	}
	if len(labels) == 0 {
		return ParseLabels("none", req.Candidates), nil
	}
	return ParseLabels(strings.Join(labels, ", "), req.Candidates), nil
}

type fakeQuestioner struct {
	err       error
	intros    []string
	subtopics []string
}

func (q *fakeQuestioner) IntroQuestion(ctx context.Context, req IntroRequest) (string, error) {
	if q.err != nil {
		return "", q.err
	}
	q.intros = append(q.intros, req.Topic)
	return "intro " + req.Topic + "?", nil
}

func (q *fakeQuestioner) SubtopicQuestion(ctx context.Context, req SubtopicRequest) (string, error) {
	if q.err != nil {
		return "", q.err
	}
	q.subtopics = append(q.subtopics, req.Topic+"/"+req.Subtopic)
	return fmt.Sprintf("about %s/%s?", req.Topic, req.Subtopic), nil
}

type memRecorder struct {
	records []storage.Record
	err     error
}

func (r *memRecorder) AppendRecord(ctx context.Context, rec storage.Record) error {
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, rec)
	return nil
}

func (r *memRecorder) LoadRecords(ctx context.Context) ([]storage.Record, error) {
	return r.records, nil
}

func (r *memRecorder) Close() error { return nil }

// scriptedLLM replays replies in order and records every request.
type scriptedLLM struct {
	replies []string
	err     error
	calls   [][]llm.Message
}

func (s *scriptedLLM) Generate(ctx context.Context, msgs []llm.Message) (llm.Response, error) {
	s.calls = append(s.calls, msgs)
	if s.err != nil {
		return llm.Response{}, s.err
	}
	if len(s.replies) == 0 {
		return llm.Response{}, errors.New("no scripted reply")
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	return llm.Response{Content: r, Model: "scripted"}, nil
}

func answers(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("answer %d", i+1)
	}
	return out
}
