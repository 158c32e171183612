package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"support-router/internal/adapter/corpus"
	"support-router/internal/adapter/repository"
	"support-router/internal/domain"
	"support-router/internal/infra"
	"support-router/internal/usecase"
)

var (
	version = "dev"

	// Global flags
	verbose bool

	// Query flags
	corpusFile      string
	userType        string
	userBlocked     bool
	previousTickets int
	ticketID        string

	// Seed flags
	concurrency int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "supportctl",
	Short:   "Inspect and exercise the support routing engine",
	Version: version,
}

var routeCmd = &cobra.Command{
	Use:   "route [query]",
	Short: "Produce a full routing decision for a query",
	Long: `Run the full routing pipeline against a local NDJSON corpus and
print the resulting decision as JSON.

Examples:
  # Route a query against a corpus file
  supportctl route --corpus kb.ndjson "How do I reset my password?"

  # Simulate a blocked premium user
  supportctl route --corpus kb.ndjson --user-type premium --blocked "refund please"`,
	Args: cobra.ExactArgs(1),
	RunE: runRoute,
}

var classifyCmd = &cobra.Command{
	Use:   "classify [query]",
	Short: "Classify a query without touching the knowledge corpus",
	Args:  cobra.ExactArgs(1),
	RunE:  runClassify,
}

var seedCmd = &cobra.Command{
	Use:   "seed [corpus.ndjson]",
	Short: "Load an NDJSON corpus into Postgres",
	Long: `Upsert every article of an NDJSON corpus file into the
support_articles table. DATABASE_URL must be set.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	routeCmd.Flags().StringVar(&corpusFile, "corpus", "", "NDJSON corpus file (required)")
	routeCmd.Flags().StringVar(&userType, "user-type", "standard", "requester tier: standard or premium")
	routeCmd.Flags().BoolVar(&userBlocked, "blocked", false, "requester account is blocked")
	routeCmd.Flags().IntVar(&previousTickets, "previous-tickets", 0, "requester's prior ticket count")
	routeCmd.Flags().StringVar(&ticketID, "ticket-id", "", "ticket identifier (generated when empty)")
	_ = routeCmd.MarkFlagRequired("corpus")

	classifyCmd.Flags().StringVar(&userType, "user-type", "standard", "requester tier: standard or premium")
	classifyCmd.Flags().BoolVar(&userBlocked, "blocked", false, "requester account is blocked")
	classifyCmd.Flags().IntVar(&previousTickets, "previous-tickets", 0, "requester's prior ticket count")

	seedCmd.Flags().IntVar(&concurrency, "concurrency", 1,
		"parallel upserts; values above 1 may reorder first-time inserts, which shifts the retrieval tie-break")

	rootCmd.AddCommand(routeCmd, classifyCmd, seedCmd)
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func ticketContext() domain.TicketContext {
	return domain.TicketContext{
		TicketID:        ticketID,
		UserType:        userType,
		UserBlocked:     userBlocked,
		PreviousTickets: previousTickets,
	}
}

func runRoute(cmd *cobra.Command, args []string) error {
	log := newLogger()

	articles, err := corpus.Load(corpusFile)
	if err != nil {
		return err
	}

	retriever := usecase.NewRetrieveKnowledgeUsecase(articles, usecase.DefaultRetrievalConfig(), log)
	classifier := usecase.NewClassifyTicketUsecase(log)
	router, err := usecase.NewRouteTicketUsecase(retriever, classifier, 16, log)
	if err != nil {
		return err
	}

	decision, err := router.Execute(cmd.Context(), args[0], ticketContext())
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), decision)
}

func runClassify(cmd *cobra.Command, args []string) error {
	log := newLogger()

	classifier := usecase.NewClassifyTicketUsecase(log)
	result := classifier.Execute(cmd.Context(), args[0], ticketContext())
	return printJSON(cmd.OutOrStdout(), result)
}

func runSeed(cmd *cobra.Command, args []string) error {
	log := newLogger()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	articles, err := corpus.Load(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	pool, err := infra.NewPostgresDB(ctx, dsn)
	if err != nil {
		return err
	}
	defer pool.Close()

	articleRepo := repository.NewArticleRepository(pool)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, article := range articles {
		g.Go(func() error {
			if err := articleRepo.UpsertArticle(gctx, article); err != nil {
				return err
			}
			log.Debug("article_seeded",
				slog.String("article_id", article.ID),
				slog.Any("keywords", domain.Keywords(article.Title)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d articles\n", len(articles))
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
