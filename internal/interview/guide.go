package interview

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Topic is a theme the interview must cover. Subtopic order is the order
// in which uncovered subtopics are asked about.
type Topic struct {
	Name      string   `toml:"name"`
	Question  string   `toml:"question"`
	Subtopics []string `toml:"subtopics"`
}

// subtopic returns the canonical spelling of sub, or "" if unknown.
func (t Topic) subtopic(sub string) string {
	for _, s := range t.Subtopics {
		if strings.EqualFold(s, strings.TrimSpace(sub)) {
			return s
		}
	}
	return ""
}

// Guide is the fixed script around the generated questions.
type Guide struct {
	Opening         string  `toml:"opening"`
	Closing         string  `toml:"closing"`
	Farewell        string  `toml:"farewell"`
	OpeningReprompt string  `toml:"opening_reprompt"`
	Reprompt        string  `toml:"reprompt"`
	Topics          []Topic `toml:"topics"`
}

// DefaultGuide is the memorable wine experience interview.
func DefaultGuide() Guide {
	return Guide{
		Opening:         "Tell me about the last memorable wine experience you've had.",
		Closing:         "To conclude, could you tell me about your level of experience with wine? Do you have any training, how often do you drink wine, and on what occasions?",
		Farewell:        "Thank you for sharing your experiences and memories. It's been a pleasure to learn about your memorable wine experience.",
		OpeningReprompt: "I'm sorry, I didn't catch that. Could you please share your experience?",
		Reprompt:        "I'm sorry, could you please provide more details?",
		Topics: []Topic{
			{
				Name:      "sensory",
				Question:  "What aromas, flavors, or textures were notable in that wine?",
				Subtopics: []string{"aromas", "flavors", "sight", "colors", "textures", "temperature", "tannins", "sounds"},
			},
			{
				Name:      "environment",
				Question:  "Where did this experience take place, and who were you with?",
				Subtopics: []string{"location", "occasion", "time of day", "people with you", "atmosphere", "music", "description of the surroundings", "landscape"},
			},
			{
				Name:      "emotion",
				Question:  "Reflecting on this memory, how does it make you feel now?",
				Subtopics: []string{"emotions now", "emotions during the event", "pleasure associated", "surprise", "unexpected part", "anything out of the ordinary"},
			},
		},
	}
}

// LoadGuide reads a guide from a TOML file. Missing script lines fall
// back to the default guide; topics must be given in the file.
func LoadGuide(path string) (Guide, error) {
	def := DefaultGuide()
	g := Guide{}
	md, err := toml.DecodeFile(path, &g)
	if err != nil {
		return Guide{}, fmt.Errorf("parse guide %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Guide{}, fmt.Errorf("parse guide %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if g.Opening == "" {
		g.Opening = def.Opening
	}
	if g.Closing == "" {
		g.Closing = def.Closing
	}
	if g.Farewell == "" {
		g.Farewell = def.Farewell
	}
	if g.OpeningReprompt == "" {
		g.OpeningReprompt = def.OpeningReprompt
	}
	if g.Reprompt == "" {
		g.Reprompt = def.Reprompt
	}
	if err := g.Validate(); err != nil {
		return Guide{}, fmt.Errorf("invalid guide %s: %w", path, err)
	}
	return g, nil
}

// Validate checks that topic and subtopic names are non-empty, unique and
// can be matched in a classifier reply by ParseLabels.
func (g Guide) Validate() error {
	var errs []error
	if strings.TrimSpace(g.Opening) == "" {
		errs = append(errs, errors.New("opening question is empty"))
	}
	if strings.TrimSpace(g.Closing) == "" {
		errs = append(errs, errors.New("closing question is empty"))
	}
	if len(g.Topics) == 0 {
		errs = append(errs, errors.New("no topics defined"))
	}
	seen := make(map[string]bool)
	for i, t := range g.Topics {
		name := strings.ToLower(strings.TrimSpace(t.Name))
		if name == "" {
			errs = append(errs, fmt.Errorf("topic #%d has no name", i+1))
			continue
		}
		if seen[name] {
			errs = append(errs, fmt.Errorf("duplicate topic %q", t.Name))
		}
		seen[name] = true
		if err := checkLabel(t.Name); err != nil {
			errs = append(errs, fmt.Errorf("topic %q: %w", t.Name, err))
		}
		if strings.TrimSpace(t.Question) == "" {
			errs = append(errs, fmt.Errorf("topic %q has no question", t.Name))
		}
		subs := make(map[string]bool)
		for _, s := range t.Subtopics {
			key := strings.ToLower(strings.TrimSpace(s))
			if key == "" {
				errs = append(errs, fmt.Errorf("topic %q has an empty subtopic", t.Name))
				continue
			}
			if subs[key] {
				errs = append(errs, fmt.Errorf("topic %q repeats subtopic %q", t.Name, s))
			}
			subs[key] = true
			if err := checkLabel(s); err != nil {
				errs = append(errs, fmt.Errorf("topic %q subtopic %q: %w", t.Name, s, err))
			}
		}
	}
	return errors.Join(errs...)
}

// checkLabel rejects names ParseLabels would split, trim or read as "none".
func checkLabel(name string) error {
	if labelSeparators.MatchString(name) || strings.Contains(name, ":") {
		return errors.New("name must not contain ',', ';', ':' or a newline")
	}
	if cleanLabel(name) != strings.ToLower(strings.TrimSpace(name)) {
		return errors.New("name must not start with a list marker or start or end with quotes or punctuation")
	}
	if strings.EqualFold(strings.TrimSpace(name), noneLabel) {
		return errors.New(`"none" is reserved`)
	}
	return nil
}

// TopicNames returns topic names in enumeration order.
func (g Guide) TopicNames() []string {
	out := make([]string, 0, len(g.Topics))
	for _, t := range g.Topics {
		out = append(out, t.Name)
	}
	return out
}
