package interview

import (
	"fmt"
	"strings"
)

const personaPrompt = `You are an anthropologist conducting a semi-structured interview about memorable wine experiences.
Your goals are:
- Encourage participants to reflect on and describe their last memorable wine experience in detail.
- Cover topics including sensory perceptions, environment, emotional impact, and their familiarity with wine.
- Ask one question at a time, based on their previous response, and prompt them to go deeper into aspects that emerge naturally in conversation.
- Keep the conversation flowing with logical transitions based on the participant's answers.
- Never make up answers or simulate the participant's responses.
- Do not include any text beyond the next question to ask.
- Do not ask redundant questions or rephrase previous questions.
- Introduce new subtopics not yet covered.`

const grammarSystemPrompt = "You are a helpful assistant that corrects grammar and spelling."

func grammarPrompt(text string) string {
	return fmt.Sprintf(`Please correct any spelling and grammar mistakes in the following text without changing its meaning.
Only provide the corrected text without any additional comments or explanations.

Text: %s`, text)
}

func classifyPrompt(req ClassifyRequest) string {
	scope := "topics"
	if req.Topic != "" {
		scope = fmt.Sprintf("subtopics related to '%s'", req.Topic)
	}
	return fmt.Sprintf(`Based on the following response, identify which, if any, of the following %s have been addressed: %s.
Response: '%s'
List the items that have been covered as a comma-separated list using the exact names above, or write 'none' if none have been covered.`,
		scope, strings.Join(req.Candidates, ", "), req.Response)
}

func introPrompt(req IntroRequest) string {
	return fmt.Sprintf(`As an anthropologist conducting an interview about memorable wine experiences, generate only the next question to ask the participant.
Focus on introducing the main topic '%s'.
The question should encourage the participant to share details about this new topic.
Do not make up any answers or simulate the participant's responses. Do not include any additional text.
Do not ask redundant questions or rephrase previous questions.
Use the following recent conversation history for context:
%s
Participant's last response: '%s'
Subtopics under '%s' to be covered: %s`,
		req.Topic, req.Transcript, req.LastResponse, req.Topic, strings.Join(req.Remaining, ", "))
}

func subtopicPrompt(req SubtopicRequest) string {
	return fmt.Sprintf(`As an anthropologist conducting an interview about memorable wine experiences, generate only the next question to ask the participant.
Focus on introducing the subtopic '%s' under the main topic '%s'.
The question should encourage the participant to share details about this new subtopic.
Do not make up any answers or simulate the participant's responses. Do not include any additional text.
Do not ask redundant questions or rephrase previous questions.
Use the following recent conversation history for context:
%s
Participant's last response: '%s'
Subtopics already covered under '%s': %s
Remaining subtopics under '%s': %s`,
		req.Subtopic, req.Topic, req.Transcript, req.LastResponse,
		req.Topic, strings.Join(req.Covered, ", "),
		req.Topic, strings.Join(req.Remaining, ", "))
}

// fallbackSubtopicQuestion is asked when question generation fails.
func fallbackSubtopicQuestion(topic, subtopic string) string {
	return fmt.Sprintf("Could you tell me more about the %s of that experience, thinking about its %s?", subtopic, topic)
}
