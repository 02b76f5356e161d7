package interview

import (
	"fmt"
	"strings"

	"wine-interviewer/internal/history"
)

// Phase is the global position of the interview.
type Phase int

const (
	PhaseOpening Phase = iota
	PhaseTopics
	PhaseClosing
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseOpening:
		return "opening"
	case PhaseTopics:
		return "topic_loop"
	case PhaseClosing:
		return "closing"
	case PhaseEnded:
		return "ended"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// TopicState tracks one topic through the topic loop.
type TopicState int

const (
	TopicNotStarted TopicState = iota
	TopicIntroduced
	TopicSubtopicsInProgress
	TopicDone
)

func (s TopicState) String() string {
	switch s {
	case TopicNotStarted:
		return "not_started"
	case TopicIntroduced:
		return "introduced"
	case TopicSubtopicsInProgress:
		return "subtopics_in_progress"
	case TopicDone:
		return "done"
	default:
		return fmt.Sprintf("topic_state(%d)", int(s))
	}
}

// Session is the state of a single interview. It is owned by the
// controller goroutine and is not safe for concurrent use.
type Session struct {
	History        *history.Manager
	LastResponse   string
	QuestionsAsked int

	phase            Phase
	topics           []Topic
	states           map[string]TopicState
	coveredTopics    map[string]bool
	coveredSubtopics map[string]map[string]bool
}

func NewSession(g Guide) *Session {
	s := &Session{
		History:          history.NewManager(),
		topics:           g.Topics,
		states:           make(map[string]TopicState, len(g.Topics)),
		coveredTopics:    make(map[string]bool, len(g.Topics)),
		coveredSubtopics: make(map[string]map[string]bool, len(g.Topics)),
	}
	for _, t := range g.Topics {
		s.coveredSubtopics[t.Name] = make(map[string]bool)
	}
	return s
}

func (s *Session) Phase() Phase { return s.phase }

func (s *Session) TopicState(topic string) TopicState {
	t, ok := s.lookup(topic)
	if !ok {
		return TopicNotStarted
	}
	return s.states[t.Name]
}

func (s *Session) setTopicState(topic string, st TopicState) {
	if t, ok := s.lookup(topic); ok {
		s.states[t.Name] = st
	}
}

// TopicCovered reports whether the topic was asked or inferred.
func (s *Session) TopicCovered(topic string) bool {
	t, ok := s.lookup(topic)
	return ok && s.coveredTopics[t.Name]
}

// MarkTopic marks a known topic covered. Unknown names are ignored.
func (s *Session) MarkTopic(topic string) bool {
	t, ok := s.lookup(topic)
	if !ok {
		return false
	}
	s.coveredTopics[t.Name] = true
	if s.states[t.Name] == TopicNotStarted {
		s.states[t.Name] = TopicIntroduced
	}
	return true
}

// MarkSubtopic marks sub covered under topic. Names outside the topic's
// subtopic set are ignored, so covered ⊆ subtopics always holds.
func (s *Session) MarkSubtopic(topic, sub string) bool {
	t, ok := s.lookup(topic)
	if !ok {
		return false
	}
	canon := t.subtopic(sub)
	if canon == "" {
		return false
	}
	s.coveredSubtopics[t.Name][canon] = true
	return true
}

func (s *Session) SubtopicCovered(topic, sub string) bool {
	t, ok := s.lookup(topic)
	if !ok {
		return false
	}
	return s.coveredSubtopics[t.Name][t.subtopic(sub)]
}

// CoveredTopics returns covered topics in enumeration order.
func (s *Session) CoveredTopics() []string {
	var out []string
	for _, t := range s.topics {
		if s.coveredTopics[t.Name] {
			out = append(out, t.Name)
		}
	}
	return out
}

// CoveredSubtopics returns covered subtopics of topic in guide order.
func (s *Session) CoveredSubtopics(topic string) []string {
	return s.subtopics(topic, true)
}

// RemainingSubtopics returns uncovered subtopics of topic in guide order.
func (s *Session) RemainingSubtopics(topic string) []string {
	return s.subtopics(topic, false)
}

func (s *Session) subtopics(topic string, covered bool) []string {
	t, ok := s.lookup(topic)
	if !ok {
		return nil
	}
	var out []string
	for _, sub := range t.Subtopics {
		if s.coveredSubtopics[t.Name][sub] == covered {
			out = append(out, sub)
		}
	}
	return out
}

// Summary renders per-topic coverage, e.g. "sensory=2/8 environment=3/8".
func (s *Session) Summary() string {
	parts := make([]string, 0, len(s.topics))
	for _, t := range s.topics {
		parts = append(parts, fmt.Sprintf("%s=%d/%d", t.Name, len(s.CoveredSubtopics(t.Name)), len(t.Subtopics)))
	}
	return strings.Join(parts, " ")
}

func (s *Session) lookup(topic string) (Topic, bool) {
	for _, t := range s.topics {
		if strings.EqualFold(t.Name, strings.TrimSpace(topic)) {
			return t, true
		}
	}
	return Topic{}, false
}
