// Package relevance ranks chunks by textual relevance to a free-text
// task description. The ranking decides which chunks are shown in full
// and which are reduced to signature stubs when rendering for an
// external consumer; it plays no part in patch application.
package relevance

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/avickers/codepatch-mcp/pkg/types"
)

// Scoring weights. Name-token hits dominate signature-keyword hits; a
// verbatim mention of the full name outweighs everything.
const (
	nameTokenScore = 50.0
	fullNameScore  = 100.0
	sigWordScore   = 10.0

	minTokenLen = 3
)

var (
	separatorRe = regexp.MustCompile(`[_.\s]+`)
	sigWordRe   = regexp.MustCompile(`\w{3,}`)
)

// Scorer ranks chunks against task text.
type Scorer struct{}

// New creates a new Scorer instance.
func New() *Scorer {
	return &Scorer{}
}

// Rank returns the IDs of chunks relevant to the task description,
// sorted by descending score. Imports chunks are skipped (they are
// always presented as context), and chunks scoring zero are excluded.
// Ties keep their original relative order.
func (s *Scorer) Rank(chunks []types.Chunk, task string) []string {
	taskLower := strings.ToLower(task)

	type scored struct {
		score   float64
		chunkID string
	}
	var results []scored

	for _, chunk := range chunks {
		if chunk.Kind == types.ChunkImports {
			continue
		}

		score := 0.0
		name := chunk.BareName()

		for _, word := range splitNameTokens(name) {
			if len(word) >= minTokenLen && strings.Contains(taskLower, word) {
				score += nameTokenScore
			}
		}

		if strings.Contains(taskLower, strings.ToLower(name)) {
			score += fullNameScore
		}

		for _, sw := range sigWordRe.FindAllString(strings.ToLower(chunk.Signature), -1) {
			if strings.Contains(taskLower, sw) {
				score += sigWordScore
			}
		}

		if score > 0 {
			results = append(results, scored{score: score, chunkID: chunk.ChunkID})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.chunkID
	}
	return ids
}

// splitNameTokens breaks an identifier into lowercase tokens, splitting
// on separators (underscore, dot, whitespace) and camelCase boundaries.
func splitNameTokens(name string) []string {
	var tokens []string
	for _, part := range separatorRe.Split(name, -1) {
		for _, camel := range splitCamel(part) {
			if camel != "" {
				tokens = append(tokens, strings.ToLower(camel))
			}
		}
	}
	return tokens
}

// splitCamel splits at lower-to-upper transitions: "getUserName" ->
// ["get", "User", "Name"].
func splitCamel(s string) []string {
	if s == "" {
		return nil
	}
	var parts []string
	runes := []rune(s)
	start := 0
	for i := 1; i < len(runes); i++ {
		if unicode.IsLower(runes[i-1]) && unicode.IsUpper(runes[i]) {
			parts = append(parts, string(runes[start:i]))
			start = i
		}
	}
	parts = append(parts, string(runes[start:]))
	return parts
}
