package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"support-router/internal/domain"
)

type decisionRepository struct {
	pool *pgxpool.Pool
}

// NewDecisionRepository creates a Postgres-backed DecisionRepository over
// the routing_decisions table. Classification and retrieval payloads are
// stored as jsonb so provenance stays individually inspectable.
func NewDecisionRepository(pool *pgxpool.Pool) domain.DecisionRepository {
	return &decisionRepository{pool: pool}
}

func (r *decisionRepository) InsertDecision(ctx context.Context, decision *domain.RoutingDecision) error {
	classification, err := json.Marshal(decision.Classification)
	if err != nil {
		return fmt.Errorf("failed to marshal classification: %w", err)
	}
	retrieval, err := json.Marshal(decision.Retrieval)
	if err != nil {
		return fmt.Errorf("failed to marshal retrieval: %w", err)
	}

	query := `
		INSERT INTO routing_decisions (decision_id, ticket_id, escalate, classification, retrieval, decided_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.pool.Exec(ctx, query,
		decision.DecisionID, decision.TicketID, decision.Escalate,
		classification, retrieval, decision.DecidedAt)
	if err != nil {
		return fmt.Errorf("failed to insert decision %s: %w", decision.DecisionID, err)
	}
	return nil
}

func (r *decisionRepository) GetByTicketID(ctx context.Context, ticketID string) (*domain.RoutingDecision, error) {
	query := `
		SELECT decision_id, ticket_id, escalate, classification, retrieval, decided_at
		FROM routing_decisions
		WHERE ticket_id = $1
		ORDER BY decided_at DESC
		LIMIT 1
	`
	row := r.pool.QueryRow(ctx, query, ticketID)

	var (
		decision       domain.RoutingDecision
		classification []byte
		retrieval      []byte
	)
	err := row.Scan(&decision.DecisionID, &decision.TicketID, &decision.Escalate,
		&classification, &retrieval, &decision.DecidedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan decision: %w", err)
	}

	if err := json.Unmarshal(classification, &decision.Classification); err != nil {
		return nil, fmt.Errorf("failed to unmarshal classification: %w", err)
	}
	if err := json.Unmarshal(retrieval, &decision.Retrieval); err != nil {
		return nil, fmt.Errorf("failed to unmarshal retrieval: %w", err)
	}
	return &decision, nil
}
