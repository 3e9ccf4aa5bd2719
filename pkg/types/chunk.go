package types

import (
	"errors"
	"fmt"
	"strings"
)

// ChunkKind classifies a region of a source file.
type ChunkKind string

const (
	ChunkImports  ChunkKind = "imports"
	ChunkFunction ChunkKind = "function"
	ChunkMethod   ChunkKind = "method"
	ChunkClass    ChunkKind = "class"
	ChunkTopLevel ChunkKind = "top_level"
)

// Chunk is a contiguous region of one file. For a given file the union
// of all chunk ranges covers every non-blank line; ranges may nest (a
// class chunk spans its method chunks). Chunks are a derived snapshot of
// one file version; they are never mutated after creation.
type Chunk struct {
	// Identification
	FilePath string
	ChunkID  string // "{kind}:{name}", "method:{parent}.{name}", or "top_level:{start}"

	// Location (1-indexed, inclusive)
	StartLine int
	EndLine   int

	// Content
	Content   string // exact substring of the file, newline-preserving
	Signature string // first line, used when full content is withheld

	// Metadata
	Kind   ChunkKind
	Parent string // enclosing class name, method chunks only
}

// Span returns the number of lines the chunk covers.
func (c *Chunk) Span() int {
	return c.EndLine - c.StartLine + 1
}

// BareName returns the name portion of the chunk ID, after the last colon.
func (c *Chunk) BareName() string {
	if idx := strings.LastIndex(c.ChunkID, ":"); idx >= 0 {
		return c.ChunkID[idx+1:]
	}
	return c.ChunkID
}

// ValidateKind checks if the chunk kind is valid.
func (c *Chunk) ValidateKind() error {
	switch c.Kind {
	case ChunkImports, ChunkFunction, ChunkMethod, ChunkClass, ChunkTopLevel:
		return nil
	default:
		return fmt.Errorf("invalid chunk kind %q", c.Kind)
	}
}

// Validate performs comprehensive validation of the chunk.
func (c *Chunk) Validate() error {
	if c.FilePath == "" {
		return errors.New("chunk file path is required")
	}

	if c.ChunkID == "" {
		return errors.New("chunk ID is required")
	}

	if c.StartLine <= 0 || c.EndLine <= 0 {
		return errors.New("line numbers must be positive")
	}

	if c.StartLine > c.EndLine {
		return errors.New("start line must be before or equal to end line")
	}

	if err := c.ValidateKind(); err != nil {
		return err
	}

	// Only methods carry a parent class.
	if c.Parent != "" && c.Kind != ChunkMethod {
		return errors.New("only method chunks can have a parent")
	}

	return nil
}
