package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/avickers/codepatch-mcp/internal/editparse"
	"github.com/avickers/codepatch-mcp/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
	ErrorCodeFileNotFound  = -32001 // A referenced file could not be read
)

// handleChunkFile handles the chunk_file tool invocation
func (s *Server) handleChunkFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	content, err := s.fileContent(args, path)
	if err != nil {
		return nil, err
	}

	chunks := s.engine.ChunkFile(path, content)

	response := map[string]interface{}{
		"path":   path,
		"chunks": chunkSummaries(chunks),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleSelectChunks handles the select_chunks tool invocation
func (s *Server) handleSelectChunks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	task, ok := args["task"].(string)
	if !ok || task == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "task parameter is required", map[string]interface{}{
			"param":  "task",
			"reason": "missing or empty",
		})
	}

	content, err := s.fileContent(args, path)
	if err != nil {
		return nil, err
	}

	chunks := s.engine.ChunkFile(path, content)
	targets := s.engine.SelectChunks(chunks, task)

	response := map[string]interface{}{
		"path":    path,
		"targets": targets,
	}
	if getBoolDefault(args, "render", false) {
		response["rendered"] = s.engine.RenderChunks(chunks, targets)
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleParseEdits handles the parse_edits tool invocation
func (s *Server) handleParseEdits(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	responseText, ok := args["response"].(string)
	if !ok || responseText == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "response parameter is required", map[string]interface{}{
			"param":  "response",
			"reason": "missing or empty",
		})
	}

	edits, err := s.engine.ParseResponse(responseText)

	// The two distinguished parser outcomes are results, not errors:
	// the caller needs them to decide its next parsing strategy.
	switch {
	case errors.Is(err, editparse.ErrFormatNotApplicable):
		return mcp.NewToolResultText(formatJSON(map[string]interface{}{
			"applicable": false,
			"reason":     "response uses the whole-file replacement format",
		})), nil
	case errors.Is(err, editparse.ErrNoEdits):
		return mcp.NewToolResultText(formatJSON(map[string]interface{}{
			"applicable": true,
			"edits":      []interface{}{},
		})), nil
	case err != nil:
		return nil, newMCPError(ErrorCodeInternalError, "parse failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"applicable": true,
		"edits":      editSummaries(edits),
	})), nil
}

// handleApplyEdits handles the apply_edits tool invocation
func (s *Server) handleApplyEdits(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	responseText, ok := args["response"].(string)
	if !ok || responseText == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "response parameter is required", map[string]interface{}{
			"param":  "response",
			"reason": "missing or empty",
		})
	}

	rawPaths, ok := args["paths"].([]interface{})
	if !ok || len(rawPaths) == 0 {
		return nil, newMCPError(ErrorCodeInvalidParams, "paths parameter is required", map[string]interface{}{
			"param":  "paths",
			"reason": "missing or empty",
		})
	}

	files := make(map[string]string, len(rawPaths))
	for _, raw := range rawPaths {
		path, ok := raw.(string)
		if !ok || path == "" {
			return nil, newMCPError(ErrorCodeInvalidParams, "paths must be non-empty strings", nil)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, newMCPError(ErrorCodeFileNotFound, "failed to read file", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
		}
		files[path] = string(data)
	}

	sessionID := uuid.NewString()
	log := s.log.With("session", sessionID)

	results, stats, err := s.engine.ApplyResponse(ctx, responseText, files)
	switch {
	case errors.Is(err, editparse.ErrFormatNotApplicable):
		return mcp.NewToolResultText(formatJSON(map[string]interface{}{
			"session":    sessionID,
			"applicable": false,
			"reason":     "response uses the whole-file replacement format",
		})), nil
	case errors.Is(err, editparse.ErrNoEdits):
		return mcp.NewToolResultText(formatJSON(map[string]interface{}{
			"session":    sessionID,
			"applicable": true,
			"applied":    0,
		})), nil
	case err != nil:
		return nil, newMCPError(ErrorCodeInternalError, "apply failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	write := getBoolDefault(args, "write", false)
	patched := make([]interface{}, 0, len(results))
	for path, content := range results {
		entry := map[string]interface{}{
			"path": path,
		}
		if write {
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return nil, newMCPError(ErrorCodeInternalError, "failed to write file", map[string]interface{}{
					"path":  path,
					"error": err.Error(),
				})
			}
			log.Info("wrote patched file", "file", path)
		} else {
			entry["content"] = content
		}
		patched = append(patched, entry)
	}

	response := map[string]interface{}{
		"session":       sessionID,
		"applicable":    true,
		"written":       write,
		"files_patched": stats.FilesPatched,
		"edits_applied": stats.EditsApplied,
		"edits_skipped": stats.EditsSkipped,
		"duration_ms":   stats.Duration.Milliseconds(),
		"files":         patched,
	}
	if len(stats.SkippedPaths) > 0 {
		response["skipped_paths"] = stats.SkippedPaths
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// fileContent returns the content argument when supplied, otherwise
// reads the file at path.
func (s *Server) fileContent(args map[string]interface{}, path string) (string, error) {
	if content, ok := args["content"].(string); ok {
		return content, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", newMCPError(ErrorCodeFileNotFound, "failed to read file", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	}
	return string(data), nil
}

func chunkSummaries(chunks []types.Chunk) []interface{} {
	out := make([]interface{}, 0, len(chunks))
	for _, c := range chunks {
		entry := map[string]interface{}{
			"chunk_id":   c.ChunkID,
			"kind":       string(c.Kind),
			"line_start": c.StartLine,
			"line_end":   c.EndLine,
			"signature":  c.Signature,
		}
		if c.Parent != "" {
			entry["parent"] = c.Parent
		}
		out = append(out, entry)
	}
	return out
}

func editSummaries(edits []types.EditRequest) []interface{} {
	out := make([]interface{}, 0, len(edits))
	for _, e := range edits {
		entry := map[string]interface{}{
			"file_path":   e.FilePath,
			"chunk_id":    e.ChunkID,
			"line_start":  e.Start,
			"line_end":    e.End,
			"new_content": e.NewContent,
		}
		if e.IsNewInsertion {
			entry["insert_after_line"] = e.InsertAfterLine
		}
		out = append(out, entry)
	}
	return out
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}
