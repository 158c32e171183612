package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"support-router/internal/adapter/corpus"
	"support-router/internal/adapter/repository"
	"support-router/internal/adapter/route_http"
	"support-router/internal/domain"
	"support-router/internal/infra/config"
	"support-router/internal/usecase"
	"support-router/internal/worker"
)

// ApplicationComponents holds all wired dependencies for the application.
type ApplicationComponents struct {
	// Repositories
	ArticleRepo  domain.ArticleRepository
	DecisionRepo domain.DecisionRepository

	// Usecases
	RetrieveUsecase usecase.RetrieveKnowledgeUsecase
	ClassifyUsecase usecase.ClassifyTicketUsecase
	RouteUsecase    usecase.RouteTicketUsecase

	// Worker
	AuditWorker *worker.AuditWorker

	// HTTP
	Handler     *route_http.Handler
	RateLimiter *route_http.RateLimiter
}

// NewApplicationComponents wires all dependencies from config and the
// database pool. The corpus is loaded once here; the engine never reloads
// it.
func NewApplicationComponents(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, log *slog.Logger) (*ApplicationComponents, error) {
	articleRepo := repository.NewArticleRepository(pool)
	decisionRepo := repository.NewDecisionRepository(pool)

	articles, err := loadCorpus(ctx, cfg, articleRepo)
	if err != nil {
		return nil, err
	}
	log.Info("corpus_loaded",
		slog.String("source", cfg.CorpusSource),
		slog.Int("article_count", len(articles)))

	retrievalConfig := usecase.RetrievalConfig{
		TopArticles:     cfg.TopArticles,
		HighBand:        cfg.HighBand,
		MediumBand:      cfg.MediumBand,
		LowBand:         cfg.LowBand,
		EscalationFloor: cfg.EscalationFloor,
	}
	if err := retrievalConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid retrieval config: %w", err)
	}

	retrieveUsecase := usecase.NewRetrieveKnowledgeUsecase(articles, retrievalConfig, log)
	classifyUsecase := usecase.NewClassifyTicketUsecase(log)

	auditWorker := worker.NewAuditWorker(decisionRepo, cfg.AuditQueueSize, log)

	routeUsecase, err := usecase.NewRouteTicketUsecase(
		retrieveUsecase,
		classifyUsecase,
		cfg.DecisionCacheSize,
		log,
		usecase.WithDecisionSink(auditWorker),
		usecase.WithDecisionRepository(decisionRepo),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build route usecase: %w", err)
	}

	return &ApplicationComponents{
		ArticleRepo:     articleRepo,
		DecisionRepo:    decisionRepo,
		RetrieveUsecase: retrieveUsecase,
		ClassifyUsecase: classifyUsecase,
		RouteUsecase:    routeUsecase,
		AuditWorker:     auditWorker,
		Handler:         route_http.NewHandler(routeUsecase, retrieveUsecase, classifyUsecase),
		RateLimiter:     route_http.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}, nil
}

func loadCorpus(ctx context.Context, cfg *config.Config, articleRepo domain.ArticleRepository) ([]domain.Article, error) {
	switch cfg.CorpusSource {
	case "file":
		articles, err := corpus.Load(cfg.CorpusFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load corpus file: %w", err)
		}
		return articles, nil
	default:
		articles, err := articleRepo.ListArticles(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load corpus from database: %w", err)
		}
		return articles, nil
	}
}
