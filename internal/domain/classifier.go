package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Priority base values for the continuous urgency score.
var priorityUrgencyBase = map[Priority]float64{
	PriorityLow:    0.1,
	PriorityMedium: 0.3,
	PriorityHigh:   0.6,
	PriorityUrgent: 0.9,
}

// Urgency score caps and metadata bonuses.
const (
	urgencyWordWeight    = 0.1
	urgencyWordCap       = 0.3
	premiumUrgencyBonus  = 0.1
	blockedUrgencyBonus  = 0.2
	repeatUrgencyBonus   = 0.1
	repeatTicketFloor    = 5
	urgencyEscalationBar = 0.8
)

// Ticket age thresholds that bump priority counts.
const (
	ageHighHours   = 24
	ageUrgentHours = 48
)

// Structural complexity signals.
const (
	complexWordCount  = 100
	moderateWordCount = 50
	conjunctionLimit  = 2
	commaLimit        = 5
)

// ClassifyCategory scores each category by keyword hits against the
// lowercased text. Any escalation hit preempts everything else; otherwise
// the highest count wins with ties resolved in fixed declaration order,
// and an all-zero score falls back to general.
func ClassifyCategory(text string) Category {
	lower := strings.ToLower(text)

	if countHits(lower, categoryKeywords[CategoryEscalation]) > 0 {
		return CategoryEscalation
	}

	best := CategoryGeneral
	bestScore := 0
	for _, cat := range categoryOrder {
		if score := countHits(lower, categoryKeywords[cat]); score > bestScore {
			best = cat
			bestScore = score
		}
	}
	return best
}

// ClassifyPriority scores each priority bucket by keyword hits, applies
// the metadata adjustments, and picks the bucket with the highest count.
// A tie at the maximum resolves to the most severe tied bucket; an
// all-zero score defaults to medium.
func ClassifyPriority(text string, tc TicketContext, now time.Time) Priority {
	lower := strings.ToLower(text)

	scores := make(map[Priority]int, len(priorityOrder))
	for _, p := range priorityOrder {
		scores[p] = countHits(lower, priorityKeywords[p])
	}

	if tc.Premium() {
		scores[PriorityHigh]++
	}
	if tc.UserBlocked {
		scores[PriorityUrgent]++
	}
	if age := tc.AgeHours(now); age > ageHighHours {
		scores[PriorityHigh]++
		if age > ageUrgentHours {
			scores[PriorityUrgent]++
		}
	}

	best := PriorityMedium
	bestScore := 0
	for _, p := range priorityOrder {
		if scores[p] > bestScore {
			best = p
			bestScore = scores[p]
		}
	}
	if bestScore == 0 {
		return PriorityMedium
	}
	return best
}

// ClassifyComplexity scores each complexity bucket by keyword hits plus
// structural signals (word count, conjunction and comma density). The
// highest count wins; a genuine tie at the maximum yields moderate.
func ClassifyComplexity(text string) Complexity {
	lower := strings.ToLower(text)

	scores := map[Complexity]int{
		ComplexityComplex:  countHits(lower, complexityKeywords[ComplexityComplex]),
		ComplexityModerate: countHits(lower, complexityKeywords[ComplexityModerate]),
		ComplexitySimple:   countHits(lower, complexityKeywords[ComplexitySimple]),
	}

	switch wordCount := len(strings.Fields(lower)); {
	case wordCount > complexWordCount:
		scores[ComplexityComplex]++
	case wordCount > moderateWordCount:
		scores[ComplexityModerate]++
	default:
		scores[ComplexitySimple]++
	}

	if strings.Count(lower, "and") > conjunctionLimit || strings.Count(lower, ",") > commaLimit {
		scores[ComplexityComplex]++
	}

	best := ComplexityModerate
	bestScore := -1
	tied := false
	for _, c := range []Complexity{ComplexityComplex, ComplexityModerate, ComplexitySimple} {
		switch {
		case scores[c] > bestScore:
			best = c
			bestScore = scores[c]
			tied = false
		case scores[c] == bestScore:
			tied = true
		}
	}
	if tied {
		return ComplexityModerate
	}
	return best
}

// UrgencyScore combines the priority base value, urgency keyword density,
// and requester metadata into a continuous [0, 1] measure.
func UrgencyScore(text string, priority Priority, tc TicketContext) float64 {
	lower := strings.ToLower(text)

	score := priorityUrgencyBase[priority]
	score += min(float64(countHits(lower, urgencyWords))*urgencyWordWeight, urgencyWordCap)

	if tc.Premium() {
		score += premiumUrgencyBonus
	}
	if tc.UserBlocked {
		score += blockedUrgencyBonus
	}
	if tc.PreviousTickets > repeatTicketFloor {
		score += repeatUrgencyBonus
	}

	return min(score, 1.0)
}

// RequiresEscalation reports whether a ticket must go to a human,
// independently of its category.
func RequiresEscalation(text string, priority Priority, urgencyScore float64) bool {
	lower := strings.ToLower(text)

	if priority == PriorityUrgent || urgencyScore > urgencyEscalationBar {
		return true
	}
	if containsAny(lower, humanHandoffWords) {
		return true
	}
	if containsAny(lower, legalSecurityWords) {
		return true
	}
	return containsAny(lower, emergencyWords)
}

// baseResolutionTimes is the (category, complexity) hour-range lookup.
var baseResolutionTimes = map[Category]map[Complexity]string{
	CategoryTechnical:  {ComplexitySimple: "2-4 hours", ComplexityModerate: "4-8 hours", ComplexityComplex: "8-24 hours"},
	CategoryBilling:    {ComplexitySimple: "1-2 hours", ComplexityModerate: "2-4 hours", ComplexityComplex: "4-8 hours"},
	CategoryAccount:    {ComplexitySimple: "1-2 hours", ComplexityModerate: "2-4 hours", ComplexityComplex: "4-8 hours"},
	CategoryGeneral:    {ComplexitySimple: "1-2 hours", ComplexityModerate: "2-4 hours", ComplexityComplex: "4-8 hours"},
	CategoryEscalation: {ComplexitySimple: "2-4 hours", ComplexityModerate: "4-8 hours", ComplexityComplex: "8-24 hours"},
}

// EstimateResolutionTime returns the hour-range string for the ticket.
// Urgent priority always overrides to "1-2 hours"; high priority halves
// the upper bound of the base range.
func EstimateResolutionTime(category Category, complexity Complexity, priority Priority) string {
	base := baseResolutionTimes[category][complexity]

	switch priority {
	case PriorityUrgent:
		return "1-2 hours"
	case PriorityHigh:
		lowPart, highPart, ok := strings.Cut(base, "-")
		if !ok {
			return base
		}
		upper, err := strconv.Atoi(strings.Fields(highPart)[0])
		if err != nil {
			return base
		}
		return fmt.Sprintf("%s-%d hours", lowPart, upper/2)
	default:
		return base
	}
}

// baseAgents maps each category to its default route.
var baseAgents = map[Category][]string{
	CategoryTechnical:  {AgentTechnical},
	CategoryBilling:    {AgentBilling},
	CategoryAccount:    {AgentAccount},
	CategoryGeneral:    {AgentKnowledgeBase},
	CategoryEscalation: {AgentEscalation},
}

// complexExtraAgents are appended when a ticket is complex.
var complexExtraAgents = map[Category][]string{
	CategoryTechnical: {AgentKnowledgeBase, AgentRAG},
	CategoryBilling:   {AgentAccount, AgentKnowledgeBase},
	CategoryAccount:   {AgentKnowledgeBase, AgentRAG},
}

// defaultComplexExtras apply to categories without a specific pair.
var defaultComplexExtras = []string{AgentRAG, AgentKnowledgeBase}

// RecommendAgents returns the ordered, de-duplicated route list for the
// ticket. A ticket that requires escalation is routed to the escalation
// queue exclusively.
func RecommendAgents(category Category, complexity Complexity, requiresEscalation bool) []string {
	if requiresEscalation {
		return []string{AgentEscalation}
	}

	agents := append([]string(nil), baseAgents[category]...)
	if complexity == ComplexityComplex {
		extras, ok := complexExtraAgents[category]
		if !ok {
			extras = defaultComplexExtras
		}
		agents = append(agents, extras...)
	}

	seen := make(map[string]struct{}, len(agents))
	deduped := agents[:0]
	for _, a := range agents {
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		deduped = append(deduped, a)
	}
	return deduped
}

// RoutingReason renders the classification triple as a human-readable
// explanation of the routing choice.
func RoutingReason(category Category, priority Priority, complexity Complexity, requiresEscalation bool) string {
	if requiresEscalation {
		return fmt.Sprintf("Escalation required due to %s priority and complex nature", priority)
	}

	reasons := []string{
		fmt.Sprintf("Classified as %s category", category),
		fmt.Sprintf("Priority level: %s", priority),
		fmt.Sprintf("Complexity: %s", complexity),
	}
	if complexity == ComplexityComplex {
		reasons = append(reasons, "Multiple agents recommended for comprehensive resolution")
	}
	return strings.Join(reasons, "; ")
}
