// Package budget sizes and trims heterogeneous context items against a
// token budget before they are handed to a prompt-construction consumer.
//
// Context items form a closed set of variants, each carrying only the
// fields relevant to its kind; Tokens sizes them with an exhaustive
// match. Token counts use the chars/4 heuristic shared across the
// engine.
package budget

// TokensPerChar is the heuristic divisor for estimating tokens (chars/4).
const TokensPerChar = 4

// Item is one contextual snippet competing for prompt space. The
// implementations below are the only variants.
type Item interface {
	isItem()
}

// Snippet is a ranked code excerpt from the target project.
type Snippet struct {
	SymbolName string
	Code       string
}

// ErrorFix is a known error cause paired with a fix template.
type ErrorFix struct {
	Cause       string
	FixTemplate string
}

// Document is a titled free-text note or pattern description.
type Document struct {
	Title   string
	Content string
}

func (Snippet) isItem()  {}
func (ErrorFix) isItem() {}
func (Document) isItem() {}

// Tokens estimates the token cost of one item.
func Tokens(item Item) int {
	switch it := item.(type) {
	case Snippet:
		return estimate(it.Code) + estimate(it.SymbolName)
	case ErrorFix:
		return estimate(it.FixTemplate) + estimate(it.Cause)
	case Document:
		return estimate(it.Content) + estimate(it.Title)
	default:
		// Unreachable: the variant set is closed.
		return 0
	}
}

// ListTokens estimates the total token cost of a list of items.
func ListTokens(items []Item) int {
	total := 0
	for _, item := range items {
		total += Tokens(item)
	}
	return total
}

func estimate(text string) int {
	return len(text) / TokensPerChar
}

// Context aggregates the item groups competing for one prompt's budget.
type Context struct {
	Instructions []Item // behavioral instructions, never trimmed
	ErrorFixes   []Item // known fixes, never trimmed
	LocalTop     []Item // top-ranked local snippets (at most 3)
	Patterns     []Item // global pattern documents
	Related      []Item // related symbols
	LocalRest    []Item // remaining local snippets
}

// TotalTokens returns the current token cost across all groups.
func (c *Context) TotalTokens() int {
	return ListTokens(c.Instructions) + ListTokens(c.ErrorFixes) +
		ListTokens(c.LocalTop) + ListTokens(c.Patterns) +
		ListTokens(c.Related) + ListTokens(c.LocalRest)
}

// Trim drops whole groups, lowest priority first, until the context fits
// within maxTokens. Priority, highest first: instructions, error fixes,
// top local snippets, patterns, related symbols, remaining local
// snippets. Instructions and error fixes are never trimmed even when the
// budget still overflows. Returns the resulting token count.
func (c *Context) Trim(maxTokens int) int {
	total := c.TotalTokens()

	if total > maxTokens {
		total -= ListTokens(c.LocalRest)
		c.LocalRest = nil
	}
	if total > maxTokens {
		total -= ListTokens(c.Related)
		c.Related = nil
	}
	if total > maxTokens {
		total -= ListTokens(c.Patterns)
		c.Patterns = nil
	}

	return total
}
