package engine

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/avickers/codepatch-mcp/internal/chunker"
	"github.com/avickers/codepatch-mcp/internal/editparse"
	"github.com/avickers/codepatch-mcp/internal/patcher"
	"github.com/avickers/codepatch-mcp/internal/relevance"
	"github.com/avickers/codepatch-mcp/internal/render"
	"github.com/avickers/codepatch-mcp/internal/resolver"
	"github.com/avickers/codepatch-mcp/pkg/types"
)

// Engine coordinates the patch pipeline: chunk -> parse -> resolve -> apply.
// Each file is processed independently, so multiple files run in parallel.
type Engine struct {
	chunker  *chunker.Chunker
	parser   *editparse.Parser
	scorer   *relevance.Scorer
	resolver *resolver.Resolver
	log      *slog.Logger

	workers int
}

// Config contains configuration for the engine.
type Config struct {
	Workers int // concurrent files in ApplyResponse (default: runtime.NumCPU())
}

// Statistics describes one apply operation.
type Statistics struct {
	FilesPatched int
	EditsApplied int
	EditsSkipped int // edits addressed to files the caller did not supply
	Duration     time.Duration
	SkippedPaths []string
}

// New creates an Engine. A nil logger falls back to slog.Default(); a
// nil config uses defaults.
func New(logger *slog.Logger, config *Config) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	workers := runtime.NumCPU()
	if config != nil && config.Workers > 0 {
		workers = config.Workers
	}
	return &Engine{
		chunker:  chunker.New(),
		parser:   editparse.New(),
		scorer:   relevance.New(),
		resolver: resolver.New(logger),
		log:      logger,
		workers:  workers,
	}
}

// ChunkFile partitions file content into chunks.
func (e *Engine) ChunkFile(path, content string) []types.Chunk {
	return e.chunker.ChunkFile(path, content)
}

// SelectChunks ranks chunks by relevance to a task description.
func (e *Engine) SelectChunks(chunks []types.Chunk, task string) []string {
	return e.scorer.Rank(chunks, task)
}

// RenderChunks formats chunks for an external prompt consumer.
func (e *Engine) RenderChunks(chunks []types.Chunk, targetIDs []string) string {
	return render.FormatChunks(chunks, targetIDs)
}

// ParseResponse extracts edit requests from a response blob. The
// editparse sentinel errors pass through unchanged.
func (e *Engine) ParseResponse(response string) ([]types.EditRequest, error) {
	return e.parser.Parse(response)
}

// ApplyToFile resolves and applies edits against one file's content,
// returning the new content. Edits addressed to other files are ignored.
func (e *Engine) ApplyToFile(path, content string, edits []types.EditRequest) string {
	lines := types.SplitLines(content)

	chunks := e.chunker.ChunkFile(path, content)

	resolved := make([]types.ResolvedEdit, 0, len(edits))
	for _, edit := range edits {
		if edit.FilePath != path {
			continue
		}
		rng := e.resolver.Resolve(edit, chunks, lines)
		resolved = append(resolved, types.ResolvedEdit{
			Request: edit,
			Start:   rng.Start,
			End:     rng.End,
		})
	}

	return patcher.Apply(content, resolved)
}

// ApplyResponse parses a response blob and applies its edits to the
// supplied files (path -> original content), returning path -> new
// content for every file that received edits. Files are patched
// concurrently; edits addressed to paths missing from files are counted
// as skipped, not errors.
func (e *Engine) ApplyResponse(ctx context.Context, response string, files map[string]string) (map[string]string, *Statistics, error) {
	start := time.Now()

	edits, err := e.parser.Parse(response)
	if err != nil {
		return nil, nil, err
	}

	byPath := make(map[string][]types.EditRequest)
	for _, edit := range edits {
		byPath[edit.FilePath] = append(byPath[edit.FilePath], edit)
	}

	stats := &Statistics{}
	results := make(map[string]string)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for path, fileEdits := range byPath {
		content, ok := files[path]
		if !ok {
			e.log.Warn("edits address an unknown file", "file", path, "edits", len(fileEdits))
			stats.EditsSkipped += len(fileEdits)
			stats.SkippedPaths = append(stats.SkippedPaths, path)
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			patched := e.ApplyToFile(path, content, fileEdits)

			mu.Lock()
			results[path] = patched
			stats.FilesPatched++
			stats.EditsApplied += len(fileEdits)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	stats.Duration = time.Since(start)
	e.log.Info("applied response",
		"files", stats.FilesPatched,
		"edits", stats.EditsApplied,
		"skipped", stats.EditsSkipped,
		"duration_ms", stats.Duration.Milliseconds())

	return results, stats, nil
}
