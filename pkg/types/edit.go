package types

import "errors"

// EditRequest is one untrusted edit instruction extracted from a response
// blob. The line numbers are whatever the producer claimed; they are not
// trusted until resolved against the file's chunk list.
type EditRequest struct {
	FilePath string
	ChunkID  string // may be empty, or a bare name rather than a full "kind:name" ID
	Start    int    // claimed first line (1-indexed, inclusive), untrusted
	End      int    // claimed last line (1-indexed, inclusive), untrusted

	NewContent string

	// Insertion fields. When IsNewInsertion is set, Start/End are
	// ignored and the content is spliced in after InsertAfterLine.
	IsNewInsertion  bool
	InsertAfterLine int
}

// Span returns the number of lines the edit claims to cover.
func (e *EditRequest) Span() int {
	return e.End - e.Start + 1
}

// Validate checks the structural fields of the request. It deliberately
// does not check line numbers against any file: those are corrected
// during resolution, not rejected here.
func (e *EditRequest) Validate() error {
	if e.FilePath == "" {
		return errors.New("edit file path is required")
	}
	if e.NewContent == "" {
		return errors.New("edit content cannot be empty")
	}
	return nil
}

// ResolvedEdit pairs an EditRequest with its corrected line range, ready
// for application.
type ResolvedEdit struct {
	Request EditRequest
	Start   int // resolved first line (1-indexed, inclusive)
	End     int // resolved last line (1-indexed, inclusive)
}
