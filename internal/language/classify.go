package language

import (
	"regexp"
	"strings"

	"github.com/avickers/codepatch-mcp/pkg/types"
)

// Signature-shape matchers, tried in priority order by Classify.
var (
	classNameRe  = regexp.MustCompile(`class\s+(\w+)`)
	defNameRe    = regexp.MustCompile(`(?:def|function)\s+(\w+)`)
	funcNameRe   = regexp.MustCompile(`(?:func|fn)\s+(?:\([^)]*\)\s+)?(\w+)`)
	typeNameRe   = regexp.MustCompile(`type\s+(\w+)`)
	fnNameRe     = regexp.MustCompile(`fn\s+(\w+)`)
	structNameRe = regexp.MustCompile(`struct\s+(\w+)`)
	implNameRe   = regexp.MustCompile(`impl\s+(\w+)`)
	constNameRe  = regexp.MustCompile(`^(?:export\s+)?(?:const|let|var)\s+(\w+)`)
	callNameRe   = regexp.MustCompile(`\b(\w+)\s*\(`)
)

// Control-flow keywords that would otherwise false-positive as function
// calls under the generic "word followed by open paren" matcher.
var controlFlowKeywords = map[string]bool{
	"if":     true,
	"for":    true,
	"while":  true,
	"switch": true,
	"catch":  true,
}

// Classify maps a raw signature line to a chunk kind and name. The indent
// width distinguishes methods from functions for def/function-style
// declarations. Signatures matching no known shape classify as top_level
// with name "unknown".
func Classify(sig string, indent int) (types.ChunkKind, string) {
	s := strings.TrimSpace(sig)

	if strings.HasPrefix(s, "class ") {
		return types.ChunkClass, nameOrUnknown(classNameRe, s)
	}

	if strings.Contains(s, "def ") || strings.Contains(s, "function ") {
		name := nameOrUnknown(defNameRe, s)
		if indent > 0 {
			return types.ChunkMethod, name
		}
		return types.ChunkFunction, name
	}

	if strings.HasPrefix(s, "func ") || strings.HasPrefix(s, "fn ") {
		return types.ChunkFunction, nameOrUnknown(funcNameRe, s)
	}

	if strings.HasPrefix(s, "type ") {
		return types.ChunkClass, nameOrUnknown(typeNameRe, s)
	}

	if strings.HasPrefix(s, "pub fn") || strings.HasPrefix(s, "pub struct") ||
		strings.HasPrefix(s, "pub impl") || strings.HasPrefix(s, "impl ") {
		switch {
		case strings.Contains(s, "fn "):
			return types.ChunkFunction, nameOrUnknown(fnNameRe, s)
		case strings.Contains(s, "struct "):
			return types.ChunkClass, nameOrUnknown(structNameRe, s)
		case strings.Contains(s, "impl "):
			return types.ChunkClass, nameOrUnknown(implNameRe, s)
		}
	}

	// Arrow functions and const assignments.
	if m := constNameRe.FindStringSubmatch(s); m != nil {
		return types.ChunkFunction, m[1]
	}

	// Java/C# style: word followed by an open paren, excluding control flow.
	if m := callNameRe.FindStringSubmatch(s); m != nil {
		name := m[1]
		if !controlFlowKeywords[name] {
			if indent > 0 {
				return types.ChunkMethod, name
			}
			return types.ChunkFunction, name
		}
	}

	return types.ChunkTopLevel, "unknown"
}

func nameOrUnknown(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return "unknown"
}
