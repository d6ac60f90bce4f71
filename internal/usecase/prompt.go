package usecase

import (
	"fmt"
	"strings"
)

const defaultSystemPrompt = "You are a Workshop Sidekick AI assistant helping participants with an AWS S3 Security workshop."

// buildWorkshopPrompt assembles the outbound model prompt: system role,
// static workshop context, keyword-matched materials, then the question.
func buildWorkshopPrompt(systemPrompt, workshopContext string, relevant []string, participant, question string) string {
	materials := "General workshop content"
	if len(relevant) > 0 {
		materials = strings.Join(relevant, ", ")
	}

	return strings.Join([]string{
		strings.TrimSpace(systemPrompt),
		"",
		"Workshop Context:",
		workshopContext,
		"",
		"Relevant Materials: " + materials,
		"",
		fmt.Sprintf("Participant %s asked: %s", participant, question),
		"",
		"Provide helpful, accurate answers about S3 security, the workshop labs, and AWS best practices.",
		"Reference specific labs or topics when relevant.",
		"If you're not confident about the answer, suggest asking the facilitator.",
	}, "\n")
}

// buildTroubleshootingResponse renders the canned technical-issue reply with
// numbered steps and any related workshop materials.
func buildTroubleshootingResponse(participant, issueType string, steps, materials []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s! I can help with that %s issue. Here are some steps to try:\n\n", participant, issueType)
	for i, step := range steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	if len(materials) > 0 {
		b.WriteString("\nRelevant workshop materials:\n")
		for _, m := range materials {
			fmt.Fprintf(&b, "- %s\n", m)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
