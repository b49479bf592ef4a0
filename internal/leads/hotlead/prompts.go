package hotlead

import (
	"fmt"
	"strings"
)

const classifierInstruction = `You classify a single inbound customer message for purchase urgency on a 0-10 scale.

Guidance:
- 8-10: explicit urgency or buying intent (wants it now, states a budget, asks to be called).
- 5-7: concrete interest (asks for pricing, availability, or an appointment).
- 2-4: mild interest without commitment.
- 0-1: browsing, small talk, or no commercial intent.

Use the keyword tier matches as context, not as the decision. Always call SaveClassification exactly once with your result.`

// buildClassifierPrompt assembles the per-message prompt: the message, the
// rolling conversation history, and the deterministic keyword tier matches.
func buildClassifierPrompt(message string, history []string, matches KeywordMatches) string {
	var sb strings.Builder

	sb.WriteString("Classify the following customer message.\n\n")
	sb.WriteString("Message:\n")
	sb.WriteString(message)
	sb.WriteString("\n")

	if len(history) > 0 {
		sb.WriteString("\nRecent conversation (oldest first):\n")
		for _, entry := range history {
			sb.WriteString("- ")
			sb.WriteString(entry)
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\nKeyword tier matches:\n")
	sb.WriteString(fmt.Sprintf("- high intent: %s\n", formatMatches(matches.High)))
	sb.WriteString(fmt.Sprintf("- medium intent: %s\n", formatMatches(matches.Medium)))
	sb.WriteString(fmt.Sprintf("- low intent: %s\n", formatMatches(matches.Low)))

	sb.WriteString("\nCall SaveClassification with score, isHotLead, reasoning, keywords, urgency, and nextAction.\n")
	return sb.String()
}

func formatMatches(matched []string) string {
	if len(matched) == 0 {
		return "none"
	}
	return strings.Join(matched, ", ")
}
