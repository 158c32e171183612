package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"support-router/internal/domain"
	"support-router/internal/usecase"
)

type recordingSink struct {
	mu        sync.Mutex
	decisions []*domain.RoutingDecision
}

func (s *recordingSink) Enqueue(decision *domain.RoutingDecision) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decisions = append(s.decisions, decision)
}

func (s *recordingSink) all() []*domain.RoutingDecision {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*domain.RoutingDecision(nil), s.decisions...)
}

type mockDecisionRepo struct {
	mock.Mock
}

func (m *mockDecisionRepo) InsertDecision(ctx context.Context, decision *domain.RoutingDecision) error {
	args := m.Called(ctx, decision)
	return args.Error(0)
}

func (m *mockDecisionRepo) GetByTicketID(ctx context.Context, ticketID string) (*domain.RoutingDecision, error) {
	args := m.Called(ctx, ticketID)
	if d := args.Get(0); d != nil {
		return d.(*domain.RoutingDecision), args.Error(1)
	}
	return nil, args.Error(1)
}

func newRouter(t *testing.T, opts ...usecase.RouteTicketOption) usecase.RouteTicketUsecase {
	t.Helper()
	retriever := newRetriever(t, eventsCorpus())
	classifier := usecase.NewClassifyTicketUsecase(discardLogger())
	router, err := usecase.NewRouteTicketUsecase(retriever, classifier, 16, discardLogger(), opts...)
	require.NoError(t, err)
	return router
}

func TestRoute_ResolvesWhenBothSignalsAgree(t *testing.T) {
	router := newRouter(t)

	decision, err := router.Execute(context.Background(), "How do I reserve an event?", domain.TicketContext{})
	require.NoError(t, err)

	assert.False(t, decision.Escalate)
	assert.False(t, decision.Retrieval.Escalate)
	assert.False(t, decision.Classification.RequiresEscalation)
	assert.Equal(t, domain.ConfidenceMedium, decision.Retrieval.ConfidenceLevel)
	assert.NotEmpty(t, decision.DecisionID)
	assert.NotEmpty(t, decision.TicketID, "missing ticket id is generated")
	assert.False(t, decision.DecidedAt.IsZero())
}

func TestRoute_ClassifierEscalationWinsOverGoodRetrieval(t *testing.T) {
	router := newRouter(t)

	// "asap" makes the priority urgent without tripping the retriever's
	// escalation keywords, so the two signals disagree.
	decision, err := router.Execute(context.Background(), "Reserve an event asap", domain.TicketContext{})
	require.NoError(t, err)

	assert.False(t, decision.Retrieval.Escalate)
	assert.True(t, decision.Classification.RequiresEscalation)
	assert.True(t, decision.Escalate, "either signal alone escalates")
}

func TestRoute_RetrievalEscalationWinsOverCalmClassification(t *testing.T) {
	router := newRouter(t)

	decision, err := router.Execute(context.Background(), "What is the meaning of life?", domain.TicketContext{})
	require.NoError(t, err)

	assert.True(t, decision.Retrieval.Escalate)
	assert.False(t, decision.Classification.RequiresEscalation)
	assert.True(t, decision.Escalate)
}

func TestRoute_DecisionIDsAreUnique(t *testing.T) {
	router := newRouter(t)

	first, err := router.Execute(context.Background(), "How do I reserve an event?", domain.TicketContext{})
	require.NoError(t, err)
	second, err := router.Execute(context.Background(), "How do I reserve an event?", domain.TicketContext{})
	require.NoError(t, err)

	assert.NotEqual(t, first.DecisionID, second.DecisionID)
	assert.NotEqual(t, first.TicketID, second.TicketID, "generated ticket ids differ per request")
}

func TestRoute_SinkReceivesEveryDecision(t *testing.T) {
	sink := &recordingSink{}
	router := newRouter(t, usecase.WithDecisionSink(sink))

	decision, err := router.Execute(context.Background(), "How do I reserve an event?", domain.TicketContext{TicketID: "t-1"})
	require.NoError(t, err)

	enqueued := sink.all()
	require.Len(t, enqueued, 1)
	assert.Same(t, decision, enqueued[0])
}

func TestRoute_GetDecisionHitsCacheFirst(t *testing.T) {
	repo := &mockDecisionRepo{}
	router := newRouter(t, usecase.WithDecisionRepository(repo))

	decision, err := router.Execute(context.Background(), "How do I reserve an event?", domain.TicketContext{TicketID: "t-7"})
	require.NoError(t, err)

	got, err := router.GetDecision(context.Background(), "t-7")
	require.NoError(t, err)
	assert.Same(t, decision, got)
	repo.AssertNotCalled(t, "GetByTicketID", mock.Anything, mock.Anything)
}

func TestRoute_GetDecisionFallsBackToRepository(t *testing.T) {
	stored := &domain.RoutingDecision{DecisionID: "d-1", TicketID: "t-cold"}
	repo := &mockDecisionRepo{}
	repo.On("GetByTicketID", mock.Anything, "t-cold").Return(stored, nil)

	router := newRouter(t, usecase.WithDecisionRepository(repo))

	got, err := router.GetDecision(context.Background(), "t-cold")
	require.NoError(t, err)
	assert.Same(t, stored, got)
	repo.AssertExpectations(t)
}

func TestRoute_GetDecisionUnknownTicketWithoutRepository(t *testing.T) {
	router := newRouter(t)

	got, err := router.GetDecision(context.Background(), "t-missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
}
