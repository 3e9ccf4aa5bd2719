package language

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Language identifies a boundary-pattern family.
type Language string

const (
	Python     Language = "python"
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	Go         Language = "go"
	Java       Language = "java"
	Rust       Language = "rust"
	C          Language = "c"
	CPP        Language = "cpp"

	// Generic is the fallback family used when a file's extension is
	// not recognized. It carries the indent+keyword heuristics that
	// work across most languages.
	Generic Language = "generic"
)

// Boundary-pattern families. Each pattern matches a definition-start line;
// group 1 captures the raw signature text used for classification. The
// tables are process-wide constant data: they are never mutated, so they
// are safe to share across calls without synchronization.
var (
	pythonPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(class\s+\w+)`),
		regexp.MustCompile(`^(def\s+\w+)`),
		regexp.MustCompile(`^(    def\s+\w+)`),
	}

	jsPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^((?:export\s+)?(?:default\s+)?class\s+\w+)`),
		regexp.MustCompile(`^((?:export\s+)?(?:async\s+)?function\s+\w+)`),
		regexp.MustCompile(`^((?:export\s+)?(?:const|let|var)\s+\w+\s*=\s*(?:async\s+)?(?:function|\())`),
	}

	goPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(func\s+(?:\(\w+\s+\*?\w+\)\s+)?\w+)`),
		regexp.MustCompile(`^(type\s+\w+\s+(?:struct|interface))`),
	}

	javaPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(\s*(?:public|private|protected)\s+(?:static\s+)?class\s+\w+)`),
		regexp.MustCompile(`^(\s*(?:public|private|protected)\s+(?:static\s+)?[\w<>\[\]]+\s+\w+\s*\()`),
	}

	rustPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^((?:pub\s+)?fn\s+\w+)`),
		regexp.MustCompile(`^((?:pub\s+)?struct\s+\w+)`),
		regexp.MustCompile(`^((?:pub\s+)?impl\s+)`),
	}

	// C/C++ function definitions at column 0: return_type [*] name(
	// plus struct/enum/union/typedef declarations.
	cPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^((?:static\s+|inline\s+|extern\s+)*\w+(?:\s*\*+)?\s+\w+\s*\()`),
		regexp.MustCompile(`^(typedef\s+(?:struct|enum|union)\b)`),
		regexp.MustCompile(`^((?:struct|enum|union)\s+\w+\s*\{)`),
	}
)

// registry maps a language to its ordered boundary-pattern family.
// Adding a language is one entry here plus an extension mapping below;
// the detection and classification logic never changes.
var registry = map[Language][]*regexp.Regexp{
	Python:     pythonPatterns,
	JavaScript: jsPatterns,
	TypeScript: jsPatterns,
	Go:         goPatterns,
	Java:       javaPatterns,
	Rust:       rustPatterns,
	C:          cPatterns,
	CPP:        cPatterns,
	Generic:    pythonPatterns,
}

var extToLang = map[string]Language{
	".py":    Python,
	".js":    JavaScript,
	".mjs":   JavaScript,
	".cjs":   JavaScript,
	".jsx":   JavaScript,
	".ts":    TypeScript,
	".tsx":   TypeScript,
	".go":    Go,
	".java":  Java,
	".rs":    Rust,
	".c":     C,
	".h":     C,
	".cpp":   CPP,
	".cc":    CPP,
	".hpp":   CPP,
}

// Detect infers the language from a file path's extension. Unrecognized
// extensions fall back to Generic.
func Detect(path string) Language {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := extToLang[ext]; ok {
		return lang
	}
	return Generic
}

// BoundaryPatterns returns the ordered pattern family for a language.
func BoundaryPatterns(lang Language) []*regexp.Regexp {
	if patterns, ok := registry[lang]; ok {
		return patterns
	}
	return registry[Generic]
}

// Import-style line patterns, shared across languages. A line matching
// any of these extends the file's imports block.
var importPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(import\s|from\s\S+\s+import)`),
	regexp.MustCompile(`^\s*(const|let|var)\s+.*=\s*require\(`),
	regexp.MustCompile(`^\s*import\s+.+\s+from\s+`),
	regexp.MustCompile(`^\s*import\s+['"]`),
	regexp.MustCompile(`^\s*using\s+`),
	regexp.MustCompile(`^\s*#include\s+`),
	regexp.MustCompile(`^\s*use\s+`),
	regexp.MustCompile(`^\s*require\s+`),
}

// IsImportLine reports whether a line looks like an import statement.
func IsImportLine(line string) bool {
	for _, p := range importPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}
