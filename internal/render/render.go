// Package render produces the textual chunk presentation handed to an
// external prompt-construction consumer. Target chunks are shown in full
// and marked editable; everything else is reduced to its signature.
// This is presentation layered over the chunker's output and plays no
// part in resolution or application.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/avickers/codepatch-mcp/pkg/types"
)

// gapNoteThreshold is the smallest omitted-line run worth annotating.
const gapNoteThreshold = 3

// FormatChunks renders chunks grouped by file. Chunks whose ID appears
// in targetIDs get full content with EDITABLE markers; the rest get
// signature-only CONTEXT markers. A nil targetIDs means every chunk is
// a target. Imports chunks are always rendered in full.
func FormatChunks(chunks []types.Chunk, targetIDs []string) string {
	if len(chunks) == 0 {
		return ""
	}

	// Group by file, preserving first-seen file order.
	byFile := make(map[string][]types.Chunk)
	var fileOrder []string
	for _, c := range chunks {
		if _, seen := byFile[c.FilePath]; !seen {
			fileOrder = append(fileOrder, c.FilePath)
		}
		byFile[c.FilePath] = append(byFile[c.FilePath], c)
	}

	allTarget := targetIDs == nil
	targets := make(map[string]bool, len(targetIDs))
	for _, id := range targetIDs {
		targets[id] = true
	}

	var parts []string
	for _, path := range fileOrder {
		fileChunks := byFile[path]
		sort.SliceStable(fileChunks, func(i, j int) bool {
			return fileChunks[i].StartLine < fileChunks[j].StartLine
		})

		total := 0
		for _, c := range fileChunks {
			if c.EndLine > total {
				total = c.EndLine
			}
		}

		parts = append(parts, fmt.Sprintf("=== FILE: %s (%d lines total) ===", path, total), "")

		prevEnd := 0
		for _, chunk := range fileChunks {
			if gap := chunk.StartLine - prevEnd - 1; gap > gapNoteThreshold {
				parts = append(parts, fmt.Sprintf("# ... [%d lines omitted] ...", gap), "")
			}

			switch {
			case chunk.Kind == types.ChunkImports:
				parts = append(parts,
					fmt.Sprintf("# ─── IMPORTS (lines %d-%d) ───", chunk.StartLine, chunk.EndLine),
					strings.TrimRight(chunk.Content, " \t\r\n"))
			case allTarget || targets[chunk.ChunkID]:
				parts = append(parts,
					fmt.Sprintf("# ═══ EDITABLE: %s (lines %d-%d) ═══", chunk.ChunkID, chunk.StartLine, chunk.EndLine),
					strings.TrimRight(chunk.Content, " \t\r\n"))
			default:
				parts = append(parts,
					fmt.Sprintf("# ─── CONTEXT ONLY: %s (lines %d-%d) ───", chunk.ChunkID, chunk.StartLine, chunk.EndLine),
					chunk.Signature)
			}

			parts = append(parts, "")
			prevEnd = chunk.EndLine
		}

		parts = append(parts, "=== END FILE ===", "")
	}

	return strings.Join(parts, "\n")
}
