package completion

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/seu-repo/aloy-nlp/internal/domain"
)

// Keyword scans used to shape the deterministic fallback when the
// completion service stays unreachable. The text inspected is whatever
// was handed to Query, so for structured calls the command prompt itself
// still carries the user's words.
var (
	fallbackLightingKeywords = []string{"luz", "lâmpada", "acend", "apag", "light", "lamp"}
	fallbackAlarmKeywords    = []string{"defina", "alarme", "temporizador", "lembrete", "agende", "alarm", "timer", "remind"}
	fallbackSearchKeywords   = []string{"pesquise", "busque", "procure", "encontre", "search", "find", "look up"}
)

// fallbackSentences is the fixed pool for unstructured fallback replies.
var fallbackSentences = []string{
	"Sorry, I am having connection issues at the moment. Could you try again later?",
	"It looks like I am having trouble processing your request right now. Shall we try again soon?",
	"I am running into technical limitations at the moment. Could you rephrase or try again later?",
	"I could not process your request properly. I am working on getting this fixed.",
	"Sorry for the inconvenience, but I am not able to answer correctly right now.",
}

func fallbackResult(text string, structured bool) *domain.ModelResult {
	if !structured {
		return &domain.ModelResult{
			Text: fallbackSentences[rand.Intn(len(fallbackSentences))],
		}
	}

	lower := strings.ToLower(text)

	switch {
	case matchesAny(lower, fallbackLightingKeywords):
		env := domain.NewEnvelope(
			string(domain.CommandLightingControl),
			"Could not process your lighting request at the moment.",
		)
		env.Data["action"] = domain.ActionTurnOn
		env.Data["room"] = "sala"
		env.Data["error"] = "llm_unavailable"
		return &domain.ModelResult{Envelope: env}

	case matchesAny(lower, fallbackAlarmKeywords):
		env := domain.NewEnvelope(
			string(domain.CommandAlarmSetting),
			"Could not process your alarm or reminder request at the moment.",
		)
		env.Data["error"] = "llm_unavailable"
		return &domain.ModelResult{Envelope: env}

	case matchesAny(lower, fallbackSearchKeywords):
		env := domain.NewEnvelope(
			string(domain.IntentSearch),
			"Sorry, I could not run your search right now.",
		)
		return &domain.ModelResult{Envelope: env}

	default:
		env := domain.NewEnvelope(
			string(domain.IntentConversation),
			"I am having trouble processing requests right now. Could you try again later?",
		)
		return &domain.ModelResult{Envelope: env}
	}
}

func matchesAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// The two fixed prompt templates of the client.

func structuredPrompt(text string) string {
	return fmt.Sprintf(`
From the text below, classify it by type (command, search, conversation).
If it is a command, produce a JSON object with the fields the command needs to execute.
Always return valid JSON with the keys: type, message, data.

Text: "%s"
Answer:
`, text)
}

func conversationalPrompt(text string) string {
	return fmt.Sprintf(`
You are the Aloy assistant. Reply with warmth, light informality and objectivity.
Text: "%s"
Answer:
`, text)
}
