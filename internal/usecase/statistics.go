package usecase

import "support-router/internal/domain"

// RetrievalStatistics aggregates a batch of retrieval results. All fields
// are zero for an empty batch.
type RetrievalStatistics struct {
	TotalQueries           int            `json:"total_queries"`
	EscalationRate         float64        `json:"escalation_rate"`
	ConfidenceDistribution map[string]int `json:"confidence_distribution"`
	AverageArticles        float64        `json:"average_articles_retrieved"`
	AverageRelevance       float64        `json:"average_relevance_score"`
	AverageConfidence      float64        `json:"average_confidence_score"`
	SuccessfulRetrievals   int            `json:"successful_retrievals"`
	FailedRetrievals       int            `json:"failed_retrievals"`
}

// ComputeRetrievalStatistics is a pure reduction over the given batch.
func ComputeRetrievalStatistics(results []domain.RetrievalResult) RetrievalStatistics {
	stats := RetrievalStatistics{
		TotalQueries:           len(results),
		ConfidenceDistribution: make(map[string]int),
	}
	if len(results) == 0 {
		return stats
	}

	totalArticles := 0
	totalRelevance := 0.0
	totalConfidence := 0.0

	for _, result := range results {
		if result.Escalate {
			stats.FailedRetrievals++
		} else {
			stats.SuccessfulRetrievals++
		}
		stats.ConfidenceDistribution[string(result.ConfidenceLevel)]++

		totalArticles += len(result.Articles)
		maxRelevance := 0.0
		maxConfidence := 0.0
		for _, a := range result.Articles {
			if a.Relevance > maxRelevance {
				maxRelevance = a.Relevance
			}
			if a.Confidence > maxConfidence {
				maxConfidence = a.Confidence
			}
		}
		totalRelevance += maxRelevance
		totalConfidence += maxConfidence
	}

	n := float64(len(results))
	stats.EscalationRate = float64(stats.FailedRetrievals) / n
	stats.AverageArticles = float64(totalArticles) / n
	stats.AverageRelevance = totalRelevance / n
	stats.AverageConfidence = totalConfidence / n
	return stats
}

// RoutingStatistics aggregates a batch of routing decisions.
type RoutingStatistics struct {
	TotalTickets           int            `json:"total_tickets"`
	CategoryDistribution   map[string]int `json:"category_distribution"`
	PriorityDistribution   map[string]int `json:"priority_distribution"`
	ComplexityDistribution map[string]int `json:"complexity_distribution"`
	EscalationRate         float64        `json:"escalation_rate"`
	AverageUrgencyScore    float64        `json:"average_urgency_score"`
	AgentWorkload          map[string]int `json:"agent_workload"`
}

// ComputeRoutingStatistics is a pure reduction over the given decisions.
func ComputeRoutingStatistics(decisions []domain.RoutingDecision) RoutingStatistics {
	stats := RoutingStatistics{
		TotalTickets:           len(decisions),
		CategoryDistribution:   make(map[string]int),
		PriorityDistribution:   make(map[string]int),
		ComplexityDistribution: make(map[string]int),
		AgentWorkload:          make(map[string]int),
	}
	if len(decisions) == 0 {
		return stats
	}

	escalated := 0
	totalUrgency := 0.0
	for _, d := range decisions {
		c := d.Classification
		stats.CategoryDistribution[string(c.Category)]++
		stats.PriorityDistribution[string(c.Priority)]++
		stats.ComplexityDistribution[string(c.Complexity)]++
		if d.Escalate {
			escalated++
		}
		totalUrgency += c.UrgencyScore
		for _, agent := range c.RecommendedAgents {
			stats.AgentWorkload[agent]++
		}
	}

	n := float64(len(decisions))
	stats.EscalationRate = float64(escalated) / n
	stats.AverageUrgencyScore = totalUrgency / n
	return stats
}
