// Package editparse extracts structured edit requests from a
// semi-structured response blob.
//
// Two marker grammars are recognized, each followed by a fenced block of
// replacement text:
//
//	#### [EDIT]: path/to/file.py:chunk_name (lines 10-15)
//	#### [NEW]: path/to/file.py (after line 25)
//
// A response written in the incompatible whole-file grammar
// ("#### [FILE]: ...") aborts parsing with ErrFormatNotApplicable so the
// caller can switch strategies; it is never partially parsed.
package editparse

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/avickers/codepatch-mcp/pkg/types"
)

// Distinguished parse outcomes. Neither is a hard failure: the caller
// decides how to proceed.
var (
	// ErrFormatNotApplicable signals that the response uses the
	// whole-file replacement grammar and must be parsed elsewhere.
	ErrFormatNotApplicable = errors.New("response uses whole-file format")

	// ErrNoEdits signals that the response contained no valid edit
	// markers at all.
	ErrNoEdits = errors.New("no edits found in response")
)

var (
	editMarkerRe = regexp.MustCompile(`^####\s*\[EDIT\]:\s*(\S+?)(?::(\S+))?\s*\(lines?\s*(\d+)\s*-\s*(\d+)\)`)
	newMarkerRe  = regexp.MustCompile(`^####\s*\[NEW\]:\s*(\S+)\s*\(after\s+line\s+(\d+)\)`)
	fullFileRe   = regexp.MustCompile(`####\s*\[FILE\]:`)
)

// Parser extracts edit requests from response text.
type Parser struct{}

// New creates a new Parser instance.
func New() *Parser {
	return &Parser{}
}

// Parse scans the response for edit markers and their fenced content
// blocks. Returns ErrFormatNotApplicable if the response uses the
// whole-file grammar, ErrNoEdits if nothing parseable was found.
func (p *Parser) Parse(response string) ([]types.EditRequest, error) {
	if fullFileRe.MatchString(response) {
		return nil, ErrFormatNotApplicable
	}

	var edits []types.EditRequest

	lines := strings.Split(response, "\n")
	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if m := editMarkerRe.FindStringSubmatch(line); m != nil {
			start, _ := strconv.Atoi(m[3])
			end, _ := strconv.Atoi(m[4])

			content, next, ok := extractFencedBlock(lines, i+1)
			if ok {
				edits = append(edits, types.EditRequest{
					FilePath:   m[1],
					ChunkID:    m[2],
					Start:      start,
					End:        end,
					NewContent: content,
				})
				i = next
				continue
			}
		}

		if m := newMarkerRe.FindStringSubmatch(line); m != nil {
			afterLine, _ := strconv.Atoi(m[2])

			content, next, ok := extractFencedBlock(lines, i+1)
			if ok {
				edits = append(edits, types.EditRequest{
					FilePath:        m[1],
					ChunkID:         "new",
					Start:           afterLine + 1,
					End:             afterLine + 1,
					NewContent:      content,
					IsNewInsertion:  true,
					InsertAfterLine: afterLine,
				})
				i = next
				continue
			}
		}

		i++
	}

	if len(edits) == 0 {
		return nil, ErrNoEdits
	}
	return edits, nil
}

// extractFencedBlock finds the next triple-backtick fence at or after
// startIdx and collects its content up to the closing bare fence. An
// unclosed fence is tolerated: the rest of the input becomes the block.
// Returns ok=false when no fence opens or an unclosed fence is empty.
func extractFencedBlock(lines []string, startIdx int) (content string, next int, ok bool) {
	i := startIdx
	for i < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
		i++
	}
	if i >= len(lines) {
		return "", startIdx, false
	}

	var code []string
	i++ // skip the opening fence
	for i < len(lines) {
		if strings.TrimSpace(lines[i]) == "```" {
			return strings.Join(code, "\n"), i + 1, true
		}
		code = append(code, lines[i])
		i++
	}

	// No closing fence; use what we have.
	if len(code) > 0 {
		return strings.Join(code, "\n"), i, true
	}
	return "", startIdx, false
}
