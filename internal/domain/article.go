package domain

import "strings"

// Article is a single knowledge base entry. Articles are loaded once at
// engine construction and never mutated afterwards; content updates happen
// in a separate ingestion path.
type Article struct {
	ID    string `json:"article_id"`
	Title string `json:"title"`
	Body  string `json:"body"`
	Tags  string `json:"tags"` // comma-delimited labels, e.g. "reservation, events"
}

// TagList returns the trimmed, lowercased tag labels.
func (a Article) TagList() []string {
	if a.Tags == "" {
		return nil
	}
	parts := strings.Split(a.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tag := strings.ToLower(strings.TrimSpace(p))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// ScoredArticle pairs an article with the scores computed for one query.
// Instances are owned by the retrieval call that produced them and are
// never cached or shared across calls.
type ScoredArticle struct {
	Article
	Relevance  float64 `json:"relevance"`
	Confidence float64 `json:"confidence"`
}
