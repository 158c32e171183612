package usecase

import (
	"fmt"
	"strings"

	"support-router/internal/domain"
)

// Response rendering limits.
const (
	maxKeyPoints        = 3
	keyPointMinLength   = 20
	mediumPreviewLength = 150
	lowPreviewLength    = 100
)

// renderResponse produces the user-facing answer skeleton for the given
// confidence level. The text is always non-empty; when the engine cannot
// answer it says so and names the escalation path instead of fabricating
// an answer.
func renderResponse(top []domain.ScoredArticle, level domain.ConfidenceLevel, escalate bool) string {
	if escalate {
		return renderEscalationResponse(top)
	}
	if len(top) == 0 {
		return "I apologize, but I don't have specific information about this topic. " +
			"Let me escalate this to a human agent who can provide more detailed assistance."
	}

	switch level {
	case domain.ConfidenceHigh:
		return renderHighConfidenceResponse(top)
	case domain.ConfidenceMedium:
		return renderMediumConfidenceResponse(top)
	default:
		return renderLowConfidenceResponse(top)
	}
}

func renderHighConfidenceResponse(top []domain.ScoredArticle) string {
	primary := top[0]

	var b strings.Builder
	b.WriteString("Based on our knowledge base, here's the information you need:\n\n")
	fmt.Fprintf(&b, "**%s**\n\n", primary.Title)

	points := 0
	for _, line := range strings.Split(primary.Body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "**") || len(line) <= keyPointMinLength {
			continue
		}
		fmt.Fprintf(&b, "• %s\n", line)
		points++
		if points >= maxKeyPoints {
			break
		}
	}

	if len(top) > 1 {
		b.WriteString("\n*Additional relevant information may be available in our knowledge base.*")
	}
	return b.String()
}

func renderMediumConfidenceResponse(top []domain.ScoredArticle) string {
	var b strings.Builder
	b.WriteString("I found some relevant information that might help:\n\n")

	shown := top
	if len(shown) > 2 {
		shown = shown[:2]
	}
	for i, article := range shown {
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, article.Title)
		fmt.Fprintf(&b, "%s\n\n", preview(article.Body, mediumPreviewLength))
	}

	b.WriteString("If this doesn't fully address your question, please let me know and " +
		"I can escalate to a human agent for more specific assistance.")
	return b.String()
}

func renderLowConfidenceResponse(top []domain.ScoredArticle) string {
	var b strings.Builder
	b.WriteString("I found some general information that might be related to your question:\n\n")
	fmt.Fprintf(&b, "**%s**\n", top[0].Title)
	fmt.Fprintf(&b, "%s\n\n", preview(top[0].Body, lowPreviewLength))
	b.WriteString("However, this may not fully address your specific question. " +
		"Would you like me to escalate this to a human agent who can provide more targeted assistance?")
	return b.String()
}

func renderEscalationResponse(top []domain.ScoredArticle) string {
	var b strings.Builder
	b.WriteString("I understand your question, but I don't have sufficient information in our " +
		"knowledge base to provide a complete answer. ")
	if len(top) > 0 {
		fmt.Fprintf(&b, "I found some potentially related information about '%s', "+
			"but it may not fully address your specific needs. ", top[0].Title)
	}
	b.WriteString("I'm escalating this to our human support team who will be able to provide " +
		"you with more detailed and accurate assistance. " +
		"You should receive a response within the next few hours.")
	return b.String()
}

func preview(body string, limit int) string {
	runes := []rune(body)
	if len(runes) <= limit {
		return body
	}
	return string(runes[:limit]) + "..."
}
