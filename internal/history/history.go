// Package history keeps the append-only transcript of an interview.
package history

import (
	"strings"

	"wine-interviewer/internal/llm"
)

const (
	interviewerLabel = "Interviewer"
	participantLabel = "Participant"
)

// Manager holds interview turns in order. Turns are never removed;
// Recent only narrows what is handed to the model.
type Manager struct {
	turns []llm.Message
}

func NewManager() *Manager {
	return &Manager{}
}

// AppendInterviewer records a question asked by the interviewer.
func (m *Manager) AppendInterviewer(content string) {
	m.turns = append(m.turns, llm.Message{Role: llm.RoleAssistant, Content: content})
}

// AppendParticipant records a corrected participant answer.
func (m *Manager) AppendParticipant(content string) {
	m.turns = append(m.turns, llm.Message{Role: llm.RoleUser, Content: content})
}

// AppendExchange records a question and its answer.
func (m *Manager) AppendExchange(question, answer string) {
	m.AppendInterviewer(question)
	m.AppendParticipant(answer)
}

func (m *Manager) Len() int { return len(m.turns) }

// All returns a copy of every turn.
func (m *Manager) All() []llm.Message {
	out := make([]llm.Message, len(m.turns))
	copy(out, m.turns)
	return out
}

// Recent returns a copy of the last n exchanges (2n turns).
func (m *Manager) Recent(exchanges int) []llm.Message {
	if exchanges <= 0 {
		return nil
	}
	start := len(m.turns) - 2*exchanges
	if start < 0 {
		start = 0
	}
	out := make([]llm.Message, len(m.turns)-start)
	copy(out, m.turns[start:])
	return out
}

// Transcript renders the last n exchanges as "Interviewer: ..." / "Participant: ..." lines.
func (m *Manager) Transcript(exchanges int) string {
	var sb strings.Builder
	for _, t := range m.Recent(exchanges) {
		label := participantLabel
		if t.Role == llm.RoleAssistant {
			label = interviewerLabel
		}
		sb.WriteString(label)
		sb.WriteString(": ")
		sb.WriteString(strings.TrimSpace(t.Content))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
