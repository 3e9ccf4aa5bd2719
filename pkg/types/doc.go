// Package types provides shared type definitions for the codepatch engine.
//
// # Core Types
//
// Chunk represents one logical region of a source file: an imports
// block, a function, a method, a class, or a synthetic top-level block.
//
//	chunk := &types.Chunk{
//	    FilePath:  "auth/service.py",
//	    ChunkID:   "method:UserService.authenticate",
//	    StartLine: 20,
//	    EndLine:   24,
//	    Kind:      types.ChunkMethod,
//	    Parent:    "UserService",
//	}
//
// EditRequest is an untrusted edit instruction: the line range comes from
// an external text generator and is frequently stale or hallucinated. A
// ResolvedEdit is the same request after its range has been corrected
// against the file's chunk list.
//
// # Validation
//
// Domain types implement validation methods to ensure structural
// integrity:
//
//	if err := chunk.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// EditRequest validation intentionally does not touch line numbers;
// correcting those is the resolver's job.
package types
