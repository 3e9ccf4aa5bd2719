package engine

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avickers/codepatch-mcp/internal/editparse"
)

func quietEngine() *Engine {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
}

const serviceFile = `import os

class UserService:
    def __init__(self, db):
        self.db = db

    def authenticate(self, username, password):
        user = self.db.find(username)
        return user.check(password)

def helper_function(value):
    return value * 2
`

func TestNew_Defaults(t *testing.T) {
	e := New(nil, nil)
	require.NotNil(t, e)
	assert.Greater(t, e.workers, 0)

	e = New(nil, &Config{Workers: 2})
	assert.Equal(t, 2, e.workers)
}

func TestChunkFile(t *testing.T) {
	e := quietEngine()
	chunks := e.ChunkFile("service.py", serviceFile)
	require.NotEmpty(t, chunks)

	ids := make([]string, len(chunks))
	for i, c := range chunks {
		ids[i] = c.ChunkID
	}
	assert.Contains(t, ids, "imports")
	assert.Contains(t, ids, "method:UserService.authenticate")
	assert.Contains(t, ids, "function:helper_function")
}

func TestSelectChunks(t *testing.T) {
	e := quietEngine()
	chunks := e.ChunkFile("service.py", serviceFile)

	targets := e.SelectChunks(chunks, "authenticate should reject empty passwords")
	require.NotEmpty(t, targets)
	assert.Equal(t, "method:UserService.authenticate", targets[0])
}

func TestRenderChunks(t *testing.T) {
	e := quietEngine()
	chunks := e.ChunkFile("service.py", serviceFile)

	out := e.RenderChunks(chunks, []string{"method:UserService.authenticate"})
	assert.Contains(t, out, "EDITABLE: method:UserService.authenticate")
	assert.Contains(t, out, "CONTEXT ONLY: function:helper_function")
}

func TestApplyToFile_EndToEnd(t *testing.T) {
	e := quietEngine()

	response := "#### [EDIT]: service.py:authenticate (lines 7-9)\n" +
		"```python\n" +
		"    def authenticate(self, username, password):\n" +
		"        if not password:\n" +
		"            return None\n" +
		"        user = self.db.find(username)\n" +
		"        return user.check(password)\n" +
		"```\n"

	edits, err := e.ParseResponse(response)
	require.NoError(t, err)
	require.Len(t, edits, 1)

	patched := e.ApplyToFile("service.py", serviceFile, edits)
	assert.Contains(t, patched, "if not password:")
	assert.Contains(t, patched, "def helper_function(value):")
	assert.Equal(t, 1, strings.Count(patched, "def authenticate"))
}

func TestApplyToFile_IgnoresOtherFiles(t *testing.T) {
	e := quietEngine()

	response := "#### [EDIT]: other.py:authenticate (lines 7-9)\n" +
		"```python\n" +
		"    def authenticate(self):\n" +
		"        return True\n" +
		"```\n"

	edits, err := e.ParseResponse(response)
	require.NoError(t, err)

	patched := e.ApplyToFile("service.py", serviceFile, edits)
	assert.Equal(t, serviceFile, patched)
}

func TestApplyResponse_MultipleFiles(t *testing.T) {
	e := quietEngine()

	first := "def alpha():\n    return 1\n"
	second := "def beta():\n    return 2\n"

	response := "#### [EDIT]: first.py:alpha (lines 1-2)\n" +
		"```python\n" +
		"def alpha():\n" +
		"    return 100\n" +
		"```\n" +
		"#### [EDIT]: second.py:beta (lines 1-2)\n" +
		"```python\n" +
		"def beta():\n" +
		"    return 200\n" +
		"```\n"

	results, stats, err := e.ApplyResponse(context.Background(), response, map[string]string{
		"first.py":  first,
		"second.py": second,
	})
	require.NoError(t, err)
	require.NotNil(t, stats)

	assert.Equal(t, 2, stats.FilesPatched)
	assert.Equal(t, 2, stats.EditsApplied)
	assert.Equal(t, 0, stats.EditsSkipped)
	assert.Contains(t, results["first.py"], "return 100")
	assert.Contains(t, results["second.py"], "return 200")
}

func TestApplyResponse_SkipsUnknownPaths(t *testing.T) {
	e := quietEngine()

	response := "#### [EDIT]: known.py:f (lines 1-2)\n" +
		"```\n" +
		"def f():\n" +
		"    return 1\n" +
		"```\n" +
		"#### [EDIT]: unknown.py:g (lines 1-2)\n" +
		"```\n" +
		"def g():\n" +
		"    return 2\n" +
		"```\n"

	results, stats, err := e.ApplyResponse(context.Background(), response, map[string]string{
		"known.py": "def f():\n    return 0\n",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.FilesPatched)
	assert.Equal(t, 1, stats.EditsApplied)
	assert.Equal(t, 1, stats.EditsSkipped)
	assert.Equal(t, []string{"unknown.py"}, stats.SkippedPaths)
	assert.NotContains(t, results, "unknown.py")
}

func TestApplyToFile_DegradedRangeBeyondEOF(t *testing.T) {
	// Unmatched chunk id, no anchor hit, oversized line numbers: the
	// resolver falls back to the claimed range and the applier must
	// still land the edit instead of failing.
	e := quietEngine()

	content := "x = 1\ny = 2\n"
	response := "#### [EDIT]: tiny.py:no_such_chunk (lines 90-95)\n" +
		"```python\n" +
		"z = 3\n" +
		"```\n"

	edits, err := e.ParseResponse(response)
	require.NoError(t, err)

	patched := e.ApplyToFile("tiny.py", content, edits)
	assert.Equal(t, "x = 1\ny = 2\nz = 3\n", patched)
}

func TestApplyResponse_SentinelsPassThrough(t *testing.T) {
	e := quietEngine()
	files := map[string]string{"a.py": "x = 1\n"}

	_, _, err := e.ApplyResponse(context.Background(), "#### [FILE]: a.py\n```\nx = 2\n```\n", files)
	assert.ErrorIs(t, err, editparse.ErrFormatNotApplicable)

	_, _, err = e.ApplyResponse(context.Background(), "nothing to do here", files)
	assert.ErrorIs(t, err, editparse.ErrNoEdits)
}

func TestApplyResponse_Insertion(t *testing.T) {
	e := quietEngine()

	content := "def existing():\n    return 1\n"
	response := "#### [NEW]: mod.py (after line 2)\n" +
		"```python\n" +
		"def added():\n" +
		"    return 2\n" +
		"```\n"

	results, stats, err := e.ApplyResponse(context.Background(), response, map[string]string{
		"mod.py": content,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.EditsApplied)
	assert.Equal(t, "def existing():\n    return 1\ndef added():\n    return 2\n", results["mod.py"])
}
