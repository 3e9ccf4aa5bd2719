// Package patcher splices resolved edits into file content.
package patcher

import (
	"sort"
	"strings"

	"github.com/avickers/codepatch-mcp/pkg/types"
)

// Apply splices resolved edits into the original content and returns the
// new file text. Edits are applied from the bottom of the file upward so
// that an edit never invalidates the line numbers of those before it.
//
// Replacement content is normalized to end with a newline. Apply is
// total: insertion positions and resolved ranges are clamped into the
// file, so even a degraded range far beyond EOF lands safely (appended
// at the end) instead of failing. Behavior for overlapping resolved
// edits is undefined: callers are responsible for not producing overlaps
// (the resolver does not deduplicate).
func Apply(original string, edits []types.ResolvedEdit) string {
	lines := types.SplitLines(original)

	ordered := make([]types.ResolvedEdit, len(edits))
	copy(ordered, edits)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start > ordered[j].Start
	})

	for _, edit := range ordered {
		content := edit.Request.NewContent
		if content != "" && !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		newLines := types.SplitLines(content)

		if edit.Request.IsNewInsertion {
			pos := edit.Request.InsertAfterLine
			if pos > len(lines) {
				pos = len(lines)
			}
			if pos < 0 {
				pos = 0
			}
			lines = splice(lines, pos, pos, newLines)
			continue
		}

		// Inclusive 1-indexed range to 0-indexed half-open span, clamped
		// into the file. Degraded resolution can hand back ranges beyond
		// EOF or inverted; those append at EOF and insert at the start
		// line respectively, never fail.
		s := edit.Start - 1
		if s < 0 {
			s = 0
		}
		if s > len(lines) {
			s = len(lines)
		}
		e := edit.End
		if e > len(lines) {
			e = len(lines)
		}
		if e < s {
			e = s
		}
		lines = splice(lines, s, e, newLines)
	}

	return strings.Join(lines, "")
}

// splice replaces lines[from:to] with replacement, returning a new slice.
func splice(lines []string, from, to int, replacement []string) []string {
	out := make([]string, 0, len(lines)-(to-from)+len(replacement))
	out = append(out, lines[:from]...)
	out = append(out, replacement...)
	out = append(out, lines[to:]...)
	return out
}
