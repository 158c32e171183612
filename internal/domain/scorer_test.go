package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"support-router/internal/domain"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"how", "do", "i", "reserve", "an", "event"},
		domain.Tokenize("How do I reserve an event?"))
	assert.Empty(t, domain.Tokenize(""))
	assert.Empty(t, domain.Tokenize("?!... ---"))
}

func TestKeywords_FiltersStopWordsAndShortTokens(t *testing.T) {
	kws := domain.Keywords("How do I reset the password for my account?")
	assert.Equal(t, []string{"reset", "password", "account"}, kws)
}

func TestScore_Bounds(t *testing.T) {
	article := domain.Article{
		ID:    "kb-1",
		Title: "How do I reserve an event",
		Body:  "How do I reserve an event",
		Tags:  "reservation, event",
	}

	queries := []string{
		"How do I reserve an event?",
		"What is the meaning of life?",
		"",
		"reserve reserve reserve reserve",
	}
	for _, q := range queries {
		relevance := domain.Score(article, q)
		assert.GreaterOrEqual(t, relevance, 0.0, "query %q", q)
		assert.LessOrEqual(t, relevance, 1.0, "query %q", q)

		confidence := domain.ConfidenceScore(article, q, relevance)
		assert.GreaterOrEqual(t, confidence, 0.0, "query %q", q)
		assert.LessOrEqual(t, confidence, 1.0, "query %q", q)
	}
}

func TestScore_EmptyQueryIsZero(t *testing.T) {
	article := domain.Article{ID: "kb-1", Title: "Anything", Body: "Whatever content", Tags: "tag"}
	assert.Zero(t, domain.Score(article, ""))
	assert.Zero(t, domain.Score(article, "   \t  "))
}

func TestScore_WeightedCombination(t *testing.T) {
	article := domain.Article{
		ID:    "kb-1",
		Title: "Reserve an Event",
		Body:  "How do I reserve an event",
		Tags:  "reservation, event",
	}

	// Query tokens: how, do, i, reserve, an, event (6 distinct).
	// Title overlap 3/6, body overlap 6/6, tag overlap 1/6.
	relevance := domain.Score(article, "How do I reserve an event?")
	assert.InDelta(t, 0.5*(3.0/6.0)+0.3*1.0+0.2*(1.0/6.0), relevance, 1e-9)
}

func TestScore_MalformedArticleFieldsScoreZero(t *testing.T) {
	// Missing fields default to empty strings and contribute nothing.
	article := domain.Article{ID: "kb-broken"}
	assert.Zero(t, domain.Score(article, "any query at all"))
}

func TestScore_AddingTitleKeywordDoesNotDecrease(t *testing.T) {
	article := domain.Article{
		ID:    "kb-1",
		Title: "Password Reset Guide",
		Body:  "Reset your password safely from the settings page",
		Tags:  "password, security",
	}

	base := domain.Score(article, "help with login")
	boosted := domain.Score(article, "help with login password")
	assert.GreaterOrEqual(t, boosted, base)
}

func TestScore_Deterministic(t *testing.T) {
	article := domain.Article{
		ID:    "kb-1",
		Title: "Billing and Refunds",
		Body:  "Refunds are processed within five business days",
		Tags:  "billing, refund",
	}
	query := "when do I get my refund"

	first := domain.ScoreArticle(article, query)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, domain.ScoreArticle(article, query))
	}
}

func TestConfidenceScore_TagSubstringBoost(t *testing.T) {
	withTag := domain.Article{
		ID:    "kb-1",
		Title: "Reserve an Event",
		Body:  "How do I reserve an event",
		Tags:  "reservation, event",
	}
	withoutTag := withTag
	withoutTag.Tags = "reservation"

	query := "How do I reserve an event?"
	relevance := domain.Score(withTag, query)

	boosted := domain.ConfidenceScore(withTag, query, relevance)
	plain := domain.ConfidenceScore(withoutTag, query, domain.Score(withoutTag, query))

	// "event" appears literally in the query, so the tagged article gets
	// the 10% boost on top of its (also slightly higher) relevance.
	assert.Greater(t, boosted, plain)
}

func TestConfidenceScore_LengthRatioFactor(t *testing.T) {
	short := domain.Article{ID: "kb-1", Title: "Refund Policy", Body: "Refunds take five days", Tags: ""}
	long := domain.Article{
		ID:    "kb-2",
		Title: "Refund Policy",
		Body:  "Refunds take five days " + longFiller(200),
		Tags:  "",
	}
	query := "refunds take five days"

	relevanceShort := domain.Score(short, query)
	relevanceLong := domain.Score(long, query)
	require.Equal(t, relevanceShort, relevanceLong, "title and overlap identical")

	// A query proportionate to a short article is a stronger signal than
	// the same query against a much longer article.
	assert.Greater(t,
		domain.ConfidenceScore(short, query, relevanceShort),
		domain.ConfidenceScore(long, query, relevanceLong))
}

func TestConfidenceScore_ZeroLengthArticleBody(t *testing.T) {
	article := domain.Article{ID: "kb-1", Title: "Refund Policy", Body: "", Tags: ""}
	relevance := domain.Score(article, "refund")
	assert.Equal(t, relevance, domain.ConfidenceScore(article, "refund", relevance))
}

func longFiller(words int) string {
	out := ""
	for i := 0; i < words; i++ {
		out += "zz "
	}
	return out
}
