package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"support-router/internal/domain"
)

func TestClassifyCategory(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.Category
	}{
		{"technical keywords", "the app shows an error after login", domain.CategoryTechnical},
		{"billing keywords", "I want a refund for the payment and the invoice", domain.CategoryBilling},
		{"account keywords", "please update my profile settings and privacy preferences", domain.CategoryAccount},
		{"no keywords", "hello there", domain.CategoryGeneral},
		{"escalation preempts density", "fraud on my payment, refund the charge, check the invoice", domain.CategoryEscalation},
		{"tie resolves in declaration order", "password", domain.CategoryTechnical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ClassifyCategory(tt.text))
		})
	}
}

func TestClassifyPriority(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		text string
		tc   domain.TicketContext
		want domain.Priority
	}{
		{"urgent keywords", "this is urgent, fix it immediately", domain.TicketContext{}, domain.PriorityUrgent},
		{"high keywords", "this is a serious and important situation", domain.TicketContext{}, domain.PriorityHigh},
		{"medium keywords", "I have a question about my invoice", domain.TicketContext{}, domain.PriorityMedium},
		{"low keywords", "just a general inquiry, curious about plans", domain.TicketContext{}, domain.PriorityLow},
		{"no keywords defaults to medium", "hello", domain.TicketContext{}, domain.PriorityMedium},
		{"premium bumps high", "hello", domain.TicketContext{UserType: "premium"}, domain.PriorityHigh},
		{"blocked bumps urgent", "hello", domain.TicketContext{UserBlocked: true}, domain.PriorityUrgent},
		{
			"blocked premium tie resolves to most severe",
			"hello",
			domain.TicketContext{UserType: "premium", UserBlocked: true},
			domain.PriorityUrgent,
		},
		{
			"stale ticket bumps high",
			"hello",
			domain.TicketContext{CreatedAt: now.Add(-30 * time.Hour)},
			domain.PriorityHigh,
		},
		{
			"very stale ticket bumps urgent",
			"hello",
			domain.TicketContext{CreatedAt: now.Add(-50 * time.Hour)},
			domain.PriorityUrgent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ClassifyPriority(tt.text, tt.tc, now))
		})
	}
}

func TestClassifyComplexity(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.Complexity
	}{
		{"simple keywords", "simple question about my plan", domain.ComplexitySimple},
		{
			"complex keywords",
			"multiple related problems across several different and interdependent systems, detailed and comprehensive and extensive",
			domain.ComplexityComplex,
		},
		{"long text is complex", strings.Repeat("zz ", 150), domain.ComplexityComplex},
		{"mid-length text is moderate", strings.Repeat("zz ", 60), domain.ComplexityModerate},
		// "complex" scores one complex hit, the short word count scores
		// one simple hit: a genuine tie yields moderate.
		{"tie yields moderate", "complex", domain.ComplexityModerate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ClassifyComplexity(tt.text))
		})
	}
}

func TestClassifyComplexity_ConjunctionAndCommaSignals(t *testing.T) {
	// One complex keyword alone ties with the short word count and would
	// yield moderate; three "and" occurrences break the tie toward complex.
	base := "multiple things"
	assert.Equal(t, domain.ComplexityModerate, domain.ClassifyComplexity(base))
	assert.Equal(t, domain.ComplexityComplex,
		domain.ClassifyComplexity(base+" with x and y and z and w"))

	// Comma density works the same way.
	assert.Equal(t, domain.ComplexityComplex,
		domain.ClassifyComplexity("multiple: a, b, c, d, e, f, g"))
}

func TestClassifyComplexity_VeryLongLowSignalText(t *testing.T) {
	// 1000 words of noise must classify without error.
	text := strings.Repeat("x ", 1000)
	assert.Equal(t, domain.ComplexityComplex, domain.ClassifyComplexity(text))
}

func TestUrgencyScore(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		priority domain.Priority
		tc       domain.TicketContext
		want     float64
	}{
		{"medium base only", "hello", domain.PriorityMedium, domain.TicketContext{}, 0.3},
		{"low base only", "hello", domain.PriorityLow, domain.TicketContext{}, 0.1},
		{
			"urgency words capped at 0.3",
			"urgent emergency critical immediately asap",
			domain.PriorityUrgent,
			domain.TicketContext{},
			1.0, // 0.9 + capped 0.3, clamped
		},
		{
			"metadata bonuses",
			"hello",
			domain.PriorityMedium,
			domain.TicketContext{UserType: "premium", UserBlocked: true, PreviousTickets: 6},
			0.3 + 0.1 + 0.2 + 0.1,
		},
		{
			"previous tickets at the floor add nothing",
			"hello",
			domain.PriorityMedium,
			domain.TicketContext{PreviousTickets: 5},
			0.3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.UrgencyScore(tt.text, tt.priority, tt.tc)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestRequiresEscalation(t *testing.T) {
	assert.True(t, domain.RequiresEscalation("hello", domain.PriorityUrgent, 0.9))
	assert.True(t, domain.RequiresEscalation("hello", domain.PriorityMedium, 0.85), "urgency above bar")
	assert.True(t, domain.RequiresEscalation("let me talk to a manager", domain.PriorityLow, 0.1))
	assert.True(t, domain.RequiresEscalation("this charge is fraud", domain.PriorityLow, 0.1))
	assert.True(t, domain.RequiresEscalation("fix this asap", domain.PriorityMedium, 0.4))
	assert.False(t, domain.RequiresEscalation("how do I change my plan", domain.PriorityMedium, 0.3))
}

func TestEstimateResolutionTime(t *testing.T) {
	assert.Equal(t, "4-8 hours",
		domain.EstimateResolutionTime(domain.CategoryTechnical, domain.ComplexityModerate, domain.PriorityMedium))
	assert.Equal(t, "1-2 hours",
		domain.EstimateResolutionTime(domain.CategoryTechnical, domain.ComplexityComplex, domain.PriorityUrgent),
		"urgent always overrides")
	assert.Equal(t, "8-12 hours",
		domain.EstimateResolutionTime(domain.CategoryTechnical, domain.ComplexityComplex, domain.PriorityHigh),
		"high priority halves the upper bound")
	assert.Equal(t, "1-2 hours",
		domain.EstimateResolutionTime(domain.CategoryBilling, domain.ComplexitySimple, domain.PriorityMedium))
}

func TestRecommendAgents(t *testing.T) {
	assert.Equal(t, []string{domain.AgentEscalation},
		domain.RecommendAgents(domain.CategoryBilling, domain.ComplexityComplex, true),
		"escalation is exclusive")

	assert.Equal(t, []string{domain.AgentTechnical},
		domain.RecommendAgents(domain.CategoryTechnical, domain.ComplexityModerate, false))

	assert.Equal(t, []string{domain.AgentTechnical, domain.AgentKnowledgeBase, domain.AgentRAG},
		domain.RecommendAgents(domain.CategoryTechnical, domain.ComplexityComplex, false))

	assert.Equal(t, []string{domain.AgentBilling, domain.AgentAccount, domain.AgentKnowledgeBase},
		domain.RecommendAgents(domain.CategoryBilling, domain.ComplexityComplex, false))

	// The general base route repeats in the default extras and must be
	// de-duplicated.
	assert.Equal(t, []string{domain.AgentKnowledgeBase, domain.AgentRAG},
		domain.RecommendAgents(domain.CategoryGeneral, domain.ComplexityComplex, false))
}

func TestRoutingReason(t *testing.T) {
	reason := domain.RoutingReason(domain.CategoryBilling, domain.PriorityMedium, domain.ComplexityComplex, false)
	assert.Contains(t, reason, "billing")
	assert.Contains(t, reason, "medium")
	assert.Contains(t, reason, "complex")
	assert.Contains(t, reason, "Multiple agents")

	escalated := domain.RoutingReason(domain.CategoryTechnical, domain.PriorityUrgent, domain.ComplexitySimple, true)
	assert.Contains(t, escalated, "Escalation required")
}
