// Package interview runs a topic-coverage interview: it asks a fixed
// opening question, walks the guide's topics asking at least a minimum
// number of subtopic questions for each, and ends with a fixed closing
// question. A language-model classifier marks topics and subtopics the
// participant already talked about so they are not asked again.
package interview

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"wine-interviewer/internal/storage"
)

// ErrNoResponse is returned when the participant keeps giving blank answers.
var ErrNoResponse = errors.New("no response from participant")

// Channel carries the conversation with the participant.
type Channel interface {
	Say(ctx context.Context, text string) error
	Listen(ctx context.Context) (string, error)
}

type Options struct {
	// MinSubtopicQuestions is the number of subtopic questions asked per
	// topic unless the topic runs out of uncovered subtopics first.
	// Values below MinSubtopicFloor are raised to it.
	MinSubtopicQuestions int
	// MaxEmptyAttempts bounds how many blank answers are read for one question.
	MaxEmptyAttempts int
	// HistoryWindow is the number of recent exchanges given to the question generator.
	HistoryWindow int
	// EchoCorrected repeats each accepted answer back to the participant.
	EchoCorrected bool
}

// MinSubtopicFloor is the least number of subtopic questions per topic.
const MinSubtopicFloor = 2

func DefaultOptions() Options {
	return Options{
		MinSubtopicQuestions: MinSubtopicFloor,
		MaxEmptyAttempts:     5,
		HistoryWindow:        2,
	}
}

type Controller struct {
	guide      Guide
	opts       Options
	channel    Channel
	normalizer Normalizer
	classifier Classifier
	questioner QuestionGenerator
	recorder   storage.Recorder
	now        func() time.Time
}

func NewController(
	guide Guide,
	opts Options,
	channel Channel,
	normalizer Normalizer,
	classifier Classifier,
	questioner QuestionGenerator,
	recorder storage.Recorder,
) *Controller {
	if opts.MinSubtopicQuestions < MinSubtopicFloor {
		opts.MinSubtopicQuestions = MinSubtopicFloor
	}
	if opts.MaxEmptyAttempts < 1 {
		opts.MaxEmptyAttempts = 1
	}
	return &Controller{
		guide:      guide,
		opts:       opts,
		channel:    channel,
		normalizer: normalizer,
		classifier: classifier,
		questioner: questioner,
		recorder:   recorder,
		now:        time.Now,
	}
}

// Run conducts one interview. The returned session is non-nil even on
// error and reflects the coverage reached before the failure.
func (c *Controller) Run(ctx context.Context) (*Session, error) {
	s := NewSession(c.guide)

	c.enter(s, PhaseOpening)
	answer, err := c.exchange(ctx, s, c.guide.Opening, c.guide.OpeningReprompt)
	if err != nil {
		return s, err
	}
	for _, name := range c.classify(ctx, ClassifyRequest{Response: answer, Candidates: c.guide.TopicNames()}) {
		s.MarkTopic(name)
	}
	log.Printf("opening answer covers topics: %v", s.CoveredTopics())

	c.enter(s, PhaseTopics)
	for _, topic := range c.guide.Topics {
		if err := c.runTopic(ctx, s, topic); err != nil {
			return s, fmt.Errorf("topic %s: %w", topic.Name, err)
		}
	}

	c.enter(s, PhaseClosing)
	if _, err := c.exchange(ctx, s, c.guide.Closing, c.guide.Reprompt); err != nil {
		return s, err
	}
	if err := c.channel.Say(ctx, c.guide.Farewell); err != nil {
		return s, fmt.Errorf("say farewell: %w", err)
	}
	c.enter(s, PhaseEnded)
	return s, nil
}

func (c *Controller) runTopic(ctx context.Context, s *Session, topic Topic) error {
	if !s.TopicCovered(topic.Name) {
		question := c.introQuestion(ctx, s, topic)
		answer, err := c.exchange(ctx, s, question, c.guide.Reprompt)
		if err != nil {
			return err
		}
		s.MarkTopic(topic.Name)
		c.markSubtopics(ctx, s, topic, answer)
	} else {
		// Already introduced by an earlier answer.
		c.markSubtopics(ctx, s, topic, s.LastResponse)
	}

	s.setTopicState(topic.Name, TopicSubtopicsInProgress)
	for asked := 0; asked < c.opts.MinSubtopicQuestions; asked++ {
		remaining := s.RemainingSubtopics(topic.Name)
		if len(remaining) == 0 {
			log.Printf("topic %s: all subtopics covered after %d questions", topic.Name, asked)
			break
		}
		sub := remaining[0]
		question := c.subtopicQuestion(ctx, s, topic, sub, remaining)
		answer, err := c.exchange(ctx, s, question, c.guide.Reprompt)
		if err != nil {
			return err
		}
		s.MarkSubtopic(topic.Name, sub)
		c.markSubtopics(ctx, s, topic, answer)
	}
	s.setTopicState(topic.Name, TopicDone)
	log.Printf("topic %s done: covered=%v", topic.Name, s.CoveredSubtopics(topic.Name))
	return nil
}

// exchange asks a question, collects a valid answer, persists it and
// appends both to the history.
func (c *Controller) exchange(ctx context.Context, s *Session, question, reprompt string) (string, error) {
	if err := c.channel.Say(ctx, question); err != nil {
		return "", fmt.Errorf("ask question: %w", err)
	}
	answer, err := c.collect(ctx, reprompt)
	if err != nil {
		return "", err
	}
	rec := storage.Record{Question: question, Response: answer, Timestamp: c.now()}
	if err := c.recorder.AppendRecord(ctx, rec); err != nil {
		return "", fmt.Errorf("persist answer: %w", err)
	}
	if c.opts.EchoCorrected {
		if err := c.channel.Say(ctx, fmt.Sprintf("Response (Corrected): %s\n", answer)); err != nil {
			return "", fmt.Errorf("echo answer: %w", err)
		}
	}
	s.History.AppendExchange(question, answer)
	s.LastResponse = answer
	s.QuestionsAsked++
	return answer, nil
}

// collect reads answers until one survives normalization, reprompting
// after each blank one.
func (c *Controller) collect(ctx context.Context, reprompt string) (string, error) {
	for attempt := 1; ; attempt++ {
		raw, err := c.channel.Listen(ctx)
		if err != nil {
			return "", fmt.Errorf("read answer: %w", err)
		}
		corrected, err := c.normalizer.Normalize(ctx, raw)
		if err != nil {
			return "", fmt.Errorf("normalize response: %w", err)
		}
		if strings.TrimSpace(corrected) != "" {
			return corrected, nil
		}
		if attempt >= c.opts.MaxEmptyAttempts {
			return "", fmt.Errorf("%w after %d attempts", ErrNoResponse, attempt)
		}
		if err := c.channel.Say(ctx, reprompt); err != nil {
			return "", fmt.Errorf("reprompt: %w", err)
		}
	}
}

// classify treats classifier failures as "nothing covered"; the subtopic
// question floor keeps the interview moving either way.
func (c *Controller) classify(ctx context.Context, req ClassifyRequest) []string {
	if len(req.Candidates) == 0 {
		return nil
	}
	covered, err := c.classifier.Classify(ctx, req)
	if err != nil {
		log.Printf("classification failed, assuming nothing covered: %v", err)
		return nil
	}
	return covered
}

func (c *Controller) markSubtopics(ctx context.Context, s *Session, topic Topic, response string) {
	req := ClassifyRequest{
		Response:   response,
		Candidates: s.RemainingSubtopics(topic.Name),
		Topic:      topic.Name,
	}
	for _, sub := range c.classify(ctx, req) {
		s.MarkSubtopic(topic.Name, sub)
	}
}

func (c *Controller) introQuestion(ctx context.Context, s *Session, topic Topic) string {
	q, err := c.questioner.IntroQuestion(ctx, IntroRequest{
		Transcript:   s.History.Transcript(c.opts.HistoryWindow),
		LastResponse: s.LastResponse,
		Topic:        topic.Name,
		Remaining:    s.RemainingSubtopics(topic.Name),
	})
	if err != nil {
		log.Printf("topic %s: question generation failed, using fixed question: %v", topic.Name, err)
		return topic.Question
	}
	return q
}

func (c *Controller) subtopicQuestion(ctx context.Context, s *Session, topic Topic, sub string, remaining []string) string {
	q, err := c.questioner.SubtopicQuestion(ctx, SubtopicRequest{
		Transcript:   s.History.Transcript(c.opts.HistoryWindow),
		LastResponse: s.LastResponse,
		Topic:        topic.Name,
		Subtopic:     sub,
		Covered:      s.CoveredSubtopics(topic.Name),
		Remaining:    remaining,
	})
	if err != nil {
		log.Printf("topic %s/%s: question generation failed, using template: %v", topic.Name, sub, err)
		return fallbackSubtopicQuestion(topic.Name, sub)
	}
	return q
}

func (c *Controller) enter(s *Session, p Phase) {
	s.phase = p
	log.Printf("interview phase: %s (questions asked: %d)", p, s.QuestionsAsked)
}
