package chunker

import (
	"fmt"
	"sort"
	"strings"

	"github.com/avickers/codepatch-mcp/internal/boundary"
	"github.com/avickers/codepatch-mcp/internal/language"
	"github.com/avickers/codepatch-mcp/pkg/types"
)

// Chunker partitions source files into logical chunks using the
// regex-heuristic boundaries from internal/boundary.
type Chunker struct{}

// New creates a new Chunker instance.
func New() *Chunker {
	return &Chunker{}
}

// ChunkFile splits file content into chunks covering the entire file.
// Every non-blank line belongs to at least one chunk (methods also fall
// inside their class chunk); blank-only regions between chunks are not
// represented. An empty file yields no chunks.
func (c *Chunker) ChunkFile(filePath, content string) []types.Chunk {
	lines := types.SplitLines(content)
	total := len(lines)
	if total == 0 {
		return nil
	}

	lang := language.Detect(filePath)
	bounds := boundary.Detect(lines, lang)

	chunks := make([]types.Chunk, 0, len(bounds)+1)

	// Imports chunk, from line 1 to the end of the import block.
	importsEnd := findImportsEnd(lines)
	if importsEnd > 0 {
		chunks = append(chunks, types.Chunk{
			FilePath:  filePath,
			ChunkID:   "imports",
			StartLine: 1,
			EndLine:   importsEnd,
			Content:   strings.Join(lines[:importsEnd], ""),
			Kind:      types.ChunkImports,
			Signature: "(imports)",
		})
	}

	// Definition chunks.
	for i, b := range bounds {
		// Boundaries inside the imports block belong to the imports chunk.
		if b.Line < importsEnd {
			continue
		}

		// The chunk ends just before the next boundary at the same or
		// lower indent, with trailing blank lines trimmed, or at EOF.
		endIdx := total - 1
		for j := i + 1; j < len(bounds); j++ {
			if bounds[j].Indent <= b.Indent {
				endIdx = bounds[j].Line - 1
				for endIdx > b.Line && strings.TrimSpace(lines[endIdx]) == "" {
					endIdx--
				}
				break
			}
		}

		parent := ""
		if b.Kind == types.ChunkMethod {
			parent = findParentClass(bounds, i, b.Indent)
		}

		chunkID := fmt.Sprintf("%s:%s", b.Kind, b.Name)
		if parent != "" {
			chunkID = fmt.Sprintf("method:%s.%s", parent, b.Name)
		}

		chunks = append(chunks, types.Chunk{
			FilePath:  filePath,
			ChunkID:   chunkID,
			StartLine: b.Line + 1,
			EndLine:   endIdx + 1,
			Content:   strings.Join(lines[b.Line:endIdx+1], ""),
			Kind:      b.Kind,
			Signature: strings.TrimRight(lines[b.Line], " \t\r\n"),
			Parent:    parent,
		})
	}

	chunks = fillGaps(chunks, lines, filePath, importsEnd, total)

	sort.SliceStable(chunks, func(i, j int) bool {
		return chunks[i].StartLine < chunks[j].StartLine
	})

	return chunks
}

// findImportsEnd returns the 1-based line number where the import block
// ends, or 0 if the file has no imports. Blank lines, comment lines, and
// docstring spans do not terminate the scan; the first other non-import
// line after at least one import does.
func findImportsEnd(lines []string) int {
	lastImport := 0
	inDocstring := false

	for i, line := range lines {
		stripped := strings.TrimSpace(line)

		if strings.HasPrefix(stripped, `"""`) || strings.HasPrefix(stripped, "'''") {
			if inDocstring {
				inDocstring = false
				continue
			}
			if strings.Count(stripped, `"""`) == 1 || strings.Count(stripped, "'''") == 1 {
				inDocstring = true
			}
			continue
		}
		if inDocstring {
			continue
		}

		if stripped == "" || strings.HasPrefix(stripped, "#") || strings.HasPrefix(stripped, "//") {
			continue
		}

		if language.IsImportLine(line) {
			lastImport = i + 1
		} else if lastImport > 0 {
			break
		}
	}

	return lastImport
}

// findParentClass returns the name of the nearest preceding class
// boundary with strictly smaller indent, or "" if none exists.
func findParentClass(bounds []boundary.Boundary, methodIdx, methodIndent int) string {
	for j := methodIdx - 1; j >= 0; j-- {
		if bounds[j].Indent < methodIndent && bounds[j].Kind == types.ChunkClass {
			return bounds[j].Name
		}
	}
	return ""
}

// fillGaps turns uncovered line runs after the imports block into
// synthetic top_level chunks. Runs of pure whitespace are dropped.
func fillGaps(chunks []types.Chunk, lines []string, filePath string, importsEnd, total int) []types.Chunk {
	covered := make(map[int]bool)
	for _, c := range chunks {
		for ln := c.StartLine; ln <= c.EndLine; ln++ {
			covered[ln] = true
		}
	}

	result := chunks

	emit := func(gapStart, gapEnd int) {
		content := strings.Join(lines[gapStart-1:gapEnd], "")
		if strings.TrimSpace(content) == "" {
			return
		}
		result = append(result, types.Chunk{
			FilePath:  filePath,
			ChunkID:   fmt.Sprintf("top_level:%d", gapStart),
			StartLine: gapStart,
			EndLine:   gapEnd,
			Content:   content,
			Kind:      types.ChunkTopLevel,
			Signature: strings.TrimRight(lines[gapStart-1], " \t\r\n"),
		})
	}

	gapStart := 0
	for ln := importsEnd + 1; ln <= total; ln++ {
		if !covered[ln] {
			if gapStart == 0 {
				gapStart = ln
			}
			continue
		}
		if gapStart != 0 {
			emit(gapStart, ln-1)
			gapStart = 0
		}
	}
	if gapStart != 0 {
		emit(gapStart, total)
	}

	return result
}
