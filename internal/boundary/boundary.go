// Package boundary locates candidate definition-start lines in source
// files using the per-language pattern families from internal/language.
package boundary

import (
	"sort"
	"strings"

	"github.com/avickers/codepatch-mcp/internal/language"
	"github.com/avickers/codepatch-mcp/pkg/types"
)

// Boundary is one detected definition-start line.
type Boundary struct {
	Line      int    // 0-based line index
	Signature string // raw matched signature text, trimmed
	Indent    int    // leading whitespace width of the line
	Kind      types.ChunkKind
	Name      string
}

// Detect scans lines for definition starts using lang's pattern family.
// Results are ordered by line; when two patterns fire on the same line
// the first-seen match wins.
func Detect(lines []string, lang language.Language) []Boundary {
	patterns := language.BoundaryPatterns(lang)

	var found []Boundary
	for _, pattern := range patterns {
		for i, line := range lines {
			m := pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}

			sig := m[0]
			if len(m) > 1 && m[1] != "" {
				sig = m[1]
			}
			sig = strings.TrimSpace(sig)

			indent := len(line) - len(strings.TrimLeft(line, " \t"))
			kind, name := language.Classify(sig, indent)

			found = append(found, Boundary{
				Line:      i,
				Signature: sig,
				Indent:    indent,
				Kind:      kind,
				Name:      name,
			})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Line < found[j].Line
	})

	// Deduplicate overlapping pattern hits; keep the first-seen match.
	seen := make(map[int]bool, len(found))
	unique := found[:0]
	for _, b := range found {
		if seen[b.Line] {
			continue
		}
		seen[b.Line] = true
		unique = append(unique, b)
	}

	return unique
}
