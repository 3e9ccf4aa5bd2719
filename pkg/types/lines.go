package types

import "strings"

// SplitLines splits file content into lines, each keeping its trailing
// newline except possibly the last. Empty content yields no lines. This
// is the line model the whole engine shares: joining the result back
// together reproduces the content byte for byte.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
