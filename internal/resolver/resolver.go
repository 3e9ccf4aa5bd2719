// Package resolver corrects untrusted edit line ranges against the
// ground-truth chunk list of a file.
//
// Edit producers are assumed to emit correct replacement content but
// unreliable line numbers: their view of the file may be stale,
// hallucinated, or off by a constant. The resolver therefore trusts
// structural ground truth first (a matched chunk's own range), then
// content over position (anchor search), and raw position only as a
// last resort. Resolution never fails: every tier produces some
// plausible answer, and each correction is logged so an outer loop can
// audit where an edit landed and why.
package resolver

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/avickers/codepatch-mcp/pkg/types"
)

// fullReplacementRatio is the threshold above which an edit is treated
// as replacing its whole matched chunk: the chunk's own range wins and
// the claimed range is discarded.
const fullReplacementRatio = 0.7

// Range is a resolved 1-indexed inclusive line range.
type Range struct {
	Start int
	End   int
}

// Resolver corrects edit line ranges. The zero value is not usable;
// construct with New.
type Resolver struct {
	log *slog.Logger

	// The ordered fallback tiers. Each returns a definite answer or
	// reports no answer; Resolve stops at the first that succeeds.
	strategies []strategy
}

type strategy func(edit types.EditRequest, chunks []types.Chunk, lines []string) (Range, bool)

// New creates a Resolver. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Resolver{log: logger}
	r.strategies = []strategy{
		r.resolveWithinChunk,
		r.resolveByFileAnchor,
	}
	return r
}

// Resolve computes the corrected line range for one edit given the known
// chunk list and the original file lines. Insertions bypass resolution:
// their position is taken from InsertAfterLine at application time.
func (r *Resolver) Resolve(edit types.EditRequest, chunks []types.Chunk, lines []string) Range {
	if edit.IsNewInsertion {
		return Range{Start: edit.Start, End: edit.End}
	}

	for _, resolve := range r.strategies {
		if rng, ok := resolve(edit, chunks, lines); ok {
			return rng
		}
	}

	// Last resort: the untrusted range, verbatim. Warn when it provably
	// exceeds the file so the caller can decide whether to drop it.
	total := len(lines)
	if edit.Start > total || edit.End > total {
		r.log.Warn("edit range exceeds file length",
			"file", edit.FilePath,
			"chunk_id", edit.ChunkID,
			"claimed", rangeString(edit.Start, edit.End),
			"total_lines", total)
	}
	return Range{Start: edit.Start, End: edit.End}
}

// resolveWithinChunk handles edits whose claimed chunk ID matches a known
// chunk: full-chunk replacement, content-anchored partial edit,
// proportional offset, or the chunk's own range, in that order.
func (r *Resolver) resolveWithinChunk(edit types.EditRequest, chunks []types.Chunk, lines []string) (Range, bool) {
	for i := range chunks {
		chunk := &chunks[i]
		if chunk.FilePath != edit.FilePath || !chunkIDMatches(chunk.ChunkID, edit.ChunkID) {
			continue
		}

		editSpan := edit.Span()
		chunkSpan := chunk.Span()

		// Full chunk replacement: the edit covers most of the chunk, so
		// the chunk's actual range wins over the claimed one.
		if float64(editSpan) >= float64(chunkSpan)*fullReplacementRatio {
			if edit.Start != chunk.StartLine || edit.End != chunk.EndLine {
				r.log.Info("corrected edit range to matched chunk",
					"file", edit.FilePath,
					"chunk_id", chunk.ChunkID,
					"claimed", rangeString(edit.Start, edit.End),
					"resolved", rangeString(chunk.StartLine, chunk.EndLine))
			}
			return Range{Start: chunk.StartLine, End: chunk.EndLine}, true
		}

		// Partial edit of a sub-range within the chunk: align on the
		// first non-blank content line found inside the chunk.
		if anchor := firstNonBlank(edit.NewContent); anchor != "" {
			if start, ok := anchorWithin(lines, anchor, chunk.StartLine-1, min(chunk.EndLine, len(lines))); ok {
				end := min(start+editSpan-1, chunk.EndLine)
				r.log.Info("content-aligned partial edit",
					"file", edit.FilePath,
					"chunk_id", chunk.ChunkID,
					"claimed", rangeString(edit.Start, edit.End),
					"resolved", rangeString(start, end),
					"anchor", truncate(anchor, 40))
				return Range{Start: start, End: end}, true
			}
		}

		// No anchor hit: keep the claimed span size but shift it into
		// the chunk, treating the claimed start as a rough offset.
		if chunkSpan > editSpan {
			maxOffset := chunkSpan - editSpan
			offset := edit.Start - 1
			if offset < 0 {
				offset = 0
			}
			if offset > maxOffset {
				offset = maxOffset
			}
			start := chunk.StartLine + offset
			end := start + editSpan - 1
			r.log.Info("offset-adjusted partial edit",
				"file", edit.FilePath,
				"chunk_id", chunk.ChunkID,
				"claimed", rangeString(edit.Start, edit.End),
				"resolved", rangeString(start, end))
			return Range{Start: start, End: end}, true
		}

		return Range{Start: chunk.StartLine, End: chunk.EndLine}, true
	}

	return Range{}, false
}

// resolveByFileAnchor handles edits with no chunk-ID match anywhere, such
// as files chunked as a single top_level block: the anchor search runs
// over the entire file instead of one chunk's range.
func (r *Resolver) resolveByFileAnchor(edit types.EditRequest, _ []types.Chunk, lines []string) (Range, bool) {
	anchor := firstNonBlank(edit.NewContent)
	if anchor == "" {
		return Range{}, false
	}

	start, ok := anchorWithin(lines, anchor, 0, len(lines))
	if !ok {
		return Range{}, false
	}

	end := min(start+edit.Span()-1, len(lines))
	r.log.Info("content-aligned edit without chunk match",
		"file", edit.FilePath,
		"chunk_id", edit.ChunkID,
		"claimed", rangeString(edit.Start, edit.End),
		"resolved", rangeString(start, end),
		"anchor", truncate(anchor, 40))
	return Range{Start: start, End: end}, true
}

// chunkIDMatches applies the relaxed chunk-ID equality: exact match, the
// bare name after the last colon, or the final dotted segment of a
// method ID ("method:UserService.authenticate" matches "authenticate").
func chunkIDMatches(chunkID, editID string) bool {
	if editID == "" {
		return false
	}
	if chunkID == editID {
		return true
	}
	if idx := strings.LastIndex(chunkID, ":"); idx >= 0 {
		name := chunkID[idx+1:]
		if name == editID {
			return true
		}
		if dot := strings.LastIndex(name, "."); dot >= 0 && name[dot+1:] == editID {
			return true
		}
	}
	return false
}

// anchorWithin scans lines[from:to] (0-based, half-open) for the first
// line whose stripped form equals anchor, returning its 1-based number.
// First occurrence wins; chunks containing duplicate stripped lines
// (two bare "}" lines, say) can anchor to the wrong one; this is a
// known ambiguity in the alignment approach.
func anchorWithin(lines []string, anchor string, from, to int) (int, bool) {
	for i := from; i < to && i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == anchor {
			return i + 1, true
		}
	}
	return 0, false
}

// firstNonBlank returns the stripped form of the first non-blank line of
// content, or "" if every line is blank.
func firstNonBlank(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if stripped := strings.TrimSpace(line); stripped != "" {
			return stripped
		}
	}
	return ""
}

func rangeString(start, end int) string {
	return fmt.Sprintf("%d-%d", start, end)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
