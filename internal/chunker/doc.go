// Package chunker partitions source files into logical chunks.
//
// A chunk is a contiguous line range classified as imports, function,
// method, class, or top_level. The chunker consumes definition
// boundaries from internal/boundary, resolves where each chunk ends
// (just before the next boundary at the same or lower indent), attaches
// methods to their enclosing class, and fills any uncovered non-blank
// line runs with synthetic top_level chunks.
//
// # Coverage Invariant
//
// For any non-empty file, every line containing non-whitespace content
// is covered by at least one chunk. Chunks may nest: a class chunk spans
// its methods, which are also emitted as chunks of their own. Uncovered
// runs consisting solely of blank lines are not represented.
//
// # Usage
//
//	c := chunker.New()
//	chunks := c.ChunkFile("auth/service.py", content)
//	for _, chunk := range chunks {
//	    fmt.Printf("%s: lines %d-%d\n", chunk.ChunkID, chunk.StartLine, chunk.EndLine)
//	}
//
// Chunking is a pure function of its inputs: no I/O, no shared state,
// safe to call from multiple goroutines.
package chunker
