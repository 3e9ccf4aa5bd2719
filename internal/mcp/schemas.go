package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// chunkFileTool returns the tool definition for chunk_file
func chunkFileTool() mcp.Tool {
	return mcp.Tool{
		Name:        "chunk_file",
		Description: "Partition a source file into logical chunks (imports, functions, methods, classes, top-level blocks)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path of the source file; the extension selects the boundary-pattern family",
				},
				"content": map[string]interface{}{
					"type":        "string",
					"description": "File content to chunk. When omitted, the file is read from path",
				},
			},
			Required: []string{"path"},
		},
	}
}

// selectChunksTool returns the tool definition for select_chunks
func selectChunksTool() mcp.Tool {
	return mcp.Tool{
		Name:        "select_chunks",
		Description: "Rank a file's chunks by relevance to a task description and optionally render them for prompting",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path of the source file",
				},
				"task": map[string]interface{}{
					"type":        "string",
					"description": "Free-text task description to score chunks against",
				},
				"content": map[string]interface{}{
					"type":        "string",
					"description": "File content. When omitted, the file is read from path",
				},
				"render": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, include the rendered chunk view (targets in full, the rest as signatures)",
					"default":     false,
				},
			},
			Required: []string{"path", "task"},
		},
	}
}

// parseEditsTool returns the tool definition for parse_edits
func parseEditsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "parse_edits",
		Description: "Extract structured edit requests from a response blob using the [EDIT]/[NEW] marker grammar",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"response": map[string]interface{}{
					"type":        "string",
					"description": "Response text containing edit markers and fenced content blocks",
				},
			},
			Required: []string{"response"},
		},
	}
}

// applyEditsTool returns the tool definition for apply_edits
func applyEditsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "apply_edits",
		Description: "Parse a response blob, resolve each edit's line range against the target file's chunks, and apply the edits",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"response": map[string]interface{}{
					"type":        "string",
					"description": "Response text containing edit markers and fenced content blocks",
				},
				"paths": map[string]interface{}{
					"type":        "array",
					"description": "Files the edits may target; each is read from disk before patching",
					"items": map[string]interface{}{
						"type": "string",
					},
				},
				"write": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, write patched content back to disk; otherwise return it (dry run)",
					"default":     false,
				},
			},
			Required: []string{"response", "paths"},
		},
	}
}
