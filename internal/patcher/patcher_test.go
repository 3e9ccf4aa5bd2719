package patcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avickers/codepatch-mcp/pkg/types"
)

const fiveLines = "line1\nline2\nline3\nline4\nline5\n"

func TestApply_SingleReplacement(t *testing.T) {
	edits := []types.ResolvedEdit{
		{
			Request: types.EditRequest{NewContent: "replaced3\n"},
			Start:   3,
			End:     3,
		},
	}

	got := Apply(fiveLines, edits)
	assert.Equal(t, "line1\nline2\nreplaced3\nline4\nline5\n", got)
}

func TestApply_MultiLineReplacement(t *testing.T) {
	edits := []types.ResolvedEdit{
		{
			Request: types.EditRequest{NewContent: "a\nb\nc\n"},
			Start:   2,
			End:     4,
		},
	}

	got := Apply(fiveLines, edits)
	assert.Equal(t, "line1\na\nb\nc\nline5\n", got)
}

func TestApply_BottomUpOrdering(t *testing.T) {
	// Two edits given top-down. Applying bottom-up means the line-4 edit
	// lands before the line-2 edit can shift anything.
	edits := []types.ResolvedEdit{
		{
			Request: types.EditRequest{NewContent: "two-a\ntwo-b\n"},
			Start:   2,
			End:     2,
		},
		{
			Request: types.EditRequest{NewContent: "four\n"},
			Start:   4,
			End:     4,
		},
	}

	got := Apply(fiveLines, edits)
	assert.Equal(t, "line1\ntwo-a\ntwo-b\nline3\nfour\nline5\n", got)
}

func TestApply_Insertion(t *testing.T) {
	edits := []types.ResolvedEdit{
		{
			Request: types.EditRequest{
				NewContent:      "inserted\n",
				IsNewInsertion:  true,
				InsertAfterLine: 2,
			},
			Start: 3,
			End:   3,
		},
	}

	got := Apply(fiveLines, edits)
	assert.Equal(t, "line1\nline2\ninserted\nline3\nline4\nline5\n", got)
}

func TestApply_InsertionAtTopAndBottom(t *testing.T) {
	top := []types.ResolvedEdit{
		{
			Request: types.EditRequest{
				NewContent:      "header\n",
				IsNewInsertion:  true,
				InsertAfterLine: 0,
			},
		},
	}
	assert.Equal(t, "header\n"+fiveLines, Apply(fiveLines, top))

	bottom := []types.ResolvedEdit{
		{
			Request: types.EditRequest{
				NewContent:      "footer\n",
				IsNewInsertion:  true,
				InsertAfterLine: 99, // clamped to EOF
			},
		},
	}
	assert.Equal(t, fiveLines+"footer\n", Apply(fiveLines, bottom))
}

func TestApply_NormalizesTrailingNewline(t *testing.T) {
	edits := []types.ResolvedEdit{
		{
			Request: types.EditRequest{NewContent: "no newline here"},
			Start:   5,
			End:     5,
		},
	}

	got := Apply(fiveLines, edits)
	assert.Equal(t, "line1\nline2\nline3\nline4\nno newline here\n", got)
}

func TestApply_RangeClampedToFile(t *testing.T) {
	edits := []types.ResolvedEdit{
		{
			Request: types.EditRequest{NewContent: "tail\n"},
			Start:   4,
			End:     50,
		},
	}

	got := Apply(fiveLines, edits)
	assert.Equal(t, "line1\nline2\nline3\ntail\n", got)
}

func TestApply_RangeBeyondEOFAppends(t *testing.T) {
	// Degraded resolution can return the claimed range verbatim, far
	// past the end of the file. The content lands at EOF.
	edits := []types.ResolvedEdit{
		{
			Request: types.EditRequest{NewContent: "appended\n"},
			Start:   90,
			End:     95,
		},
	}

	got := Apply("line1\nline2\nline3\n", edits)
	assert.Equal(t, "line1\nline2\nline3\nappended\n", got)
}

func TestApply_InvertedRangeInsertsWithoutDeleting(t *testing.T) {
	edits := []types.ResolvedEdit{
		{
			Request: types.EditRequest{NewContent: "z\n"},
			Start:   4,
			End:     2,
		},
	}

	got := Apply(fiveLines, edits)
	assert.Equal(t, "line1\nline2\nline3\nz\nline4\nline5\n", got)
}

func TestApply_NoEdits(t *testing.T) {
	assert.Equal(t, fiveLines, Apply(fiveLines, nil))
}

func TestApply_EmptyOriginal(t *testing.T) {
	edits := []types.ResolvedEdit{
		{
			Request: types.EditRequest{
				NewContent:      "first line\n",
				IsNewInsertion:  true,
				InsertAfterLine: 0,
			},
		},
	}
	assert.Equal(t, "first line\n", Apply("", edits))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	edits := []types.ResolvedEdit{
		{Request: types.EditRequest{NewContent: "x\n"}, Start: 1, End: 1},
		{Request: types.EditRequest{NewContent: "y\n"}, Start: 3, End: 3},
	}
	Apply(fiveLines, edits)

	// The caller's slice keeps its order.
	assert.Equal(t, 1, edits[0].Start)
	assert.Equal(t, 3, edits[1].Start)
}
