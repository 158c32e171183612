// Package corpus loads knowledge articles from line-delimited JSON files.
// File loading is a collaborator concern; the engine itself performs no
// I/O.
package corpus

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"support-router/internal/domain"
)

// articleRecord is the wire shape of one corpus line. Missing fields
// default to empty strings and score as zero contribution.
type articleRecord struct {
	ArticleID string `json:"article_id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Tags      string `json:"tags"`
}

// Read decodes an NDJSON article stream, preserving line order. Blank
// lines are skipped; a malformed line is a hard error because a silently
// dropped article would shift the corpus-order tie-break.
func Read(r io.Reader) ([]domain.Article, error) {
	var articles []domain.Article

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var rec articleRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("failed to decode article on line %d: %w", line, err)
		}
		articles = append(articles, domain.Article{
			ID:    rec.ArticleID,
			Title: rec.Title,
			Body:  rec.Body,
			Tags:  rec.Tags,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	return articles, nil
}

// Load reads an NDJSON corpus file from disk.
func Load(path string) ([]domain.Article, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus file: %w", err)
	}
	defer f.Close()
	return Read(f)
}
