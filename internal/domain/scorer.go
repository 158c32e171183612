package domain

import (
	"strings"
	"unicode"
)

// Relevance combination weights. Title carries the most signal, body less,
// tags the least.
const (
	titleWeight   = 0.5
	contentWeight = 0.3
	tagWeight     = 0.2
)

// Confidence adjustment parameters. The length factor rewards queries
// proportionate to article size; the tag boost rewards a literal tag
// mention in the query.
const (
	lengthFactorBase  = 0.8
	lengthFactorSlope = 0.2
	lengthRatioCap    = 2.0
	tagMatchBoost     = 1.1
)

// Tokenize lowercases text and splits it into word tokens at every
// non-letter, non-digit boundary.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Keywords returns the distinct meaningful tokens of text: word tokens
// with stop words and tokens shorter than three runes removed. Used for
// log summaries and corpus seeding, not by the overlap formula.
func Keywords(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, tok := range Tokenize(text) {
		if len(tok) <= 2 {
			continue
		}
		if _, stop := StopWords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// overlapRatio is |query ∩ field| / |query| over distinct tokens, 0 when
// the query has no tokens.
func overlapRatio(queryTokens map[string]struct{}, fieldTokens map[string]struct{}) float64 {
	if len(queryTokens) == 0 {
		return 0
	}
	matched := 0
	for tok := range queryTokens {
		if _, ok := fieldTokens[tok]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(queryTokens))
}

// Score computes the lexical relevance of article for query in [0, 1].
// Deterministic and side-effect free: the same inputs always produce the
// same score.
func Score(article Article, query string) float64 {
	queryTokens := tokenSet(Tokenize(query))

	titleScore := overlapRatio(queryTokens, tokenSet(Tokenize(article.Title)))
	contentScore := overlapRatio(queryTokens, tokenSet(Tokenize(article.Body)))
	tagScore := overlapRatio(queryTokens, tokenSet(article.TagList()))

	relevance := titleWeight*titleScore + contentWeight*contentScore + tagWeight*tagScore
	return min(relevance, 1.0)
}

// ConfidenceScore adjusts relevance by the query/article length ratio and
// a literal tag-match boost, clamped to [0, 1].
func ConfidenceScore(article Article, query string, relevance float64) float64 {
	confidence := relevance

	queryWords := len(strings.Fields(query))
	articleWords := len(strings.Fields(article.Body))
	if articleWords > 0 {
		ratio := min(float64(queryWords)/float64(articleWords), lengthRatioCap)
		confidence *= lengthFactorBase + lengthFactorSlope*ratio
	}

	queryLower := strings.ToLower(query)
	for _, tag := range article.TagList() {
		if strings.Contains(queryLower, tag) {
			confidence *= tagMatchBoost
			break
		}
	}

	return min(confidence, 1.0)
}

// ScoreArticle runs both estimators and returns the scored pair.
func ScoreArticle(article Article, query string) ScoredArticle {
	relevance := Score(article, query)
	return ScoredArticle{
		Article:    article,
		Relevance:  relevance,
		Confidence: ConfidenceScore(article, query, relevance),
	}
}
