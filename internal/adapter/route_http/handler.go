package route_http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"support-router/internal/domain"
	"support-router/internal/usecase"
)

type Handler struct {
	routeUsecase    usecase.RouteTicketUsecase
	retrieveUsecase usecase.RetrieveKnowledgeUsecase
	classifyUsecase usecase.ClassifyTicketUsecase
}

func NewHandler(
	routeUsecase usecase.RouteTicketUsecase,
	retrieveUsecase usecase.RetrieveKnowledgeUsecase,
	classifyUsecase usecase.ClassifyTicketUsecase,
) *Handler {
	return &Handler{
		routeUsecase:    routeUsecase,
		retrieveUsecase: retrieveUsecase,
		classifyUsecase: classifyUsecase,
	}
}

// ticketRequest is the shared request body for route/retrieve/classify.
// Unknown JSON keys are ignored, not rejected.
type ticketRequest struct {
	Query           string     `json:"query"`
	TicketID        string     `json:"ticket_id"`
	UserID          string     `json:"user_id"`
	UserType        string     `json:"user_type"`
	UserBlocked     bool       `json:"user_blocked"`
	CreatedAt       *time.Time `json:"created_at"`
	PreviousTickets int        `json:"previous_tickets"`
}

func (r ticketRequest) ticketContext() domain.TicketContext {
	tc := domain.TicketContext{
		TicketID:        r.TicketID,
		UserID:          r.UserID,
		UserType:        r.UserType,
		UserBlocked:     r.UserBlocked,
		PreviousTickets: r.PreviousTickets,
	}
	if r.CreatedAt != nil {
		tc.CreatedAt = *r.CreatedAt
	}
	return tc
}

// RegisterRoutes wires all endpoints onto the echo instance.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/v1/health", h.Health)
	e.POST("/v1/route", h.RouteTicket)
	e.POST("/v1/retrieve", h.RetrieveKnowledge)
	e.POST("/v1/classify", h.ClassifyTicket)
	e.GET("/v1/decisions/:ticket_id", h.GetDecision)
}

// Health reports service liveness and corpus size.
// (GET /v1/health)
func (h *Handler) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]any{
		"status":      "healthy",
		"corpus_size": h.retrieveUsecase.CorpusSize(),
	})
}

// RouteTicket produces the full routing decision for a support request.
// (POST /v1/route)
func (h *Handler) RouteTicket(ctx echo.Context) error {
	var req ticketRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	decision, err := h.routeUsecase.Execute(ctx.Request().Context(), req.Query, req.ticketContext())
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return ctx.JSON(http.StatusOK, decision)
}

// RetrieveKnowledge runs only the knowledge retriever.
// (POST /v1/retrieve)
func (h *Handler) RetrieveKnowledge(ctx echo.Context) error {
	var req ticketRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	result := h.retrieveUsecase.Execute(ctx.Request().Context(), req.Query, req.ticketContext())
	return ctx.JSON(http.StatusOK, result)
}

// ClassifyTicket runs only the request classifier.
// (POST /v1/classify)
func (h *Handler) ClassifyTicket(ctx echo.Context) error {
	var req ticketRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	result := h.classifyUsecase.Execute(ctx.Request().Context(), req.Query, req.ticketContext())
	return ctx.JSON(http.StatusOK, result)
}

// GetDecision returns the most recent decision for a ticket.
// (GET /v1/decisions/:ticket_id)
func (h *Handler) GetDecision(ctx echo.Context) error {
	ticketID := ctx.Param("ticket_id")

	decision, err := h.routeUsecase.GetDecision(ctx.Request().Context(), ticketID)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if decision == nil {
		return ctx.JSON(http.StatusNotFound, map[string]string{"error": "decision not found"})
	}
	return ctx.JSON(http.StatusOK, decision)
}
