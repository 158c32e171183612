package domain

import "time"

// ConfidenceLevel is the discrete bucket derived from the top confidence score.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceNone   ConfidenceLevel = "none"
)

// Category is the handling domain a ticket belongs to.
type Category string

const (
	CategoryTechnical  Category = "technical"
	CategoryBilling    Category = "billing"
	CategoryAccount    Category = "account"
	CategoryGeneral    Category = "general"
	CategoryEscalation Category = "escalation"
)

// Priority is the handling urgency bucket of a ticket.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Complexity estimates how involved resolution will be.
type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityComplex  Complexity = "complex"
)

// Agent route names the orchestrator dispatches to.
const (
	AgentTechnical     = "TECHNICAL"
	AgentBilling       = "BILLING"
	AgentAccount       = "ACCOUNT"
	AgentKnowledgeBase = "KNOWLEDGE_BASE"
	AgentRAG           = "RAG"
	AgentEscalation    = "ESCALATION"
)

// TicketContext carries caller-supplied metadata about the requester.
// Unset fields are simply not applied; unrecognized input keys are
// dropped at the transport boundary.
type TicketContext struct {
	TicketID        string    `json:"ticket_id,omitempty"`
	UserID          string    `json:"user_id,omitempty"`
	UserType        string    `json:"user_type,omitempty"` // "standard" or "premium"
	UserBlocked     bool      `json:"user_blocked,omitempty"`
	CreatedAt       time.Time `json:"created_at,omitzero"`
	PreviousTickets int       `json:"previous_tickets,omitempty"`
}

// Premium reports whether the requester is on the premium tier.
func (c TicketContext) Premium() bool {
	return c.UserType == "premium"
}

// AgeHours returns the ticket age in hours relative to now, or 0 when
// CreatedAt is unset.
func (c TicketContext) AgeHours(now time.Time) float64 {
	if c.CreatedAt.IsZero() {
		return 0
	}
	return now.Sub(c.CreatedAt).Hours()
}

// RetrievalMetadata describes one retrieval run.
type RetrievalMetadata struct {
	TotalArticlesSearched int           `json:"total_articles_searched"`
	ArticlesRetrieved     int           `json:"articles_retrieved"`
	HighestRelevance      float64       `json:"highest_relevance_score"`
	AverageConfidence     float64       `json:"average_confidence"`
	RetrievedAt           string        `json:"retrieval_timestamp"` // RFC 3339
	QueryLength           int           `json:"query_length"`
	TicketContext         TicketContext `json:"ticket_context"`
}

// RetrievalResult is the knowledge retriever's output for one query.
// Invariant: Escalate is true whenever ConfidenceLevel is none, and
// Response is always non-empty.
type RetrievalResult struct {
	Articles         []ScoredArticle   `json:"articles"`
	ConfidenceLevel  ConfidenceLevel   `json:"confidence_level"`
	Escalate         bool              `json:"should_escalate"`
	EscalationReason string            `json:"escalation_reason"`
	Response         string            `json:"response"`
	Metadata         RetrievalMetadata `json:"retrieval_metadata"`
}

// ClassificationResult is the request classifier's output for one ticket.
// Invariant: when Category is escalation, RecommendedAgents is exactly
// ["ESCALATION"].
type ClassificationResult struct {
	Category                Category   `json:"category"`
	Priority                Priority   `json:"priority"`
	Complexity              Complexity `json:"complexity"`
	UrgencyScore            float64    `json:"urgency_score"`
	RequiresEscalation      bool       `json:"requires_escalation"`
	EstimatedResolutionTime string     `json:"estimated_resolution_time"`
	RecommendedAgents       []string   `json:"recommended_agents"`
	RoutingReason           string     `json:"routing_reason"`
}

// RoutingDecision fuses retrieval and classification into the single
// artifact the orchestrator consumes. It is created once per request and
// immutable thereafter; it is the only entity persisted downstream.
type RoutingDecision struct {
	DecisionID     string               `json:"decision_id"`
	TicketID       string               `json:"ticket_id"`
	Escalate       bool                 `json:"escalate"`
	Classification ClassificationResult `json:"classification"`
	Retrieval      RetrievalResult      `json:"retrieval"`
	DecidedAt      time.Time            `json:"decided_at"`
}
