package budget

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokens(t *testing.T) {
	// chars/4, name and body both counted
	snippet := Snippet{SymbolName: "abcd", Code: strings.Repeat("x", 40)}
	assert.Equal(t, 11, Tokens(snippet))

	fix := ErrorFix{Cause: strings.Repeat("c", 8), FixTemplate: strings.Repeat("f", 16)}
	assert.Equal(t, 6, Tokens(fix))

	doc := Document{Title: "abc", Content: strings.Repeat("d", 12)}
	assert.Equal(t, 3, Tokens(doc)) // 12/4 + 3/4 (integer division)
}

func TestListTokens(t *testing.T) {
	items := []Item{
		Snippet{Code: strings.Repeat("a", 40)},
		Document{Content: strings.Repeat("b", 20)},
	}
	assert.Equal(t, 15, ListTokens(items))
	assert.Equal(t, 0, ListTokens(nil))
}

// item returns a Document costing exactly n tokens.
func item(n int) Item {
	return Document{Content: strings.Repeat("x", n*TokensPerChar)}
}

func TestTrim_FitsUnchanged(t *testing.T) {
	c := &Context{
		Instructions: []Item{item(10)},
		LocalTop:     []Item{item(10)},
		Patterns:     []Item{item(10)},
	}

	total := c.Trim(100)
	assert.Equal(t, 30, total)
	assert.Len(t, c.Patterns, 1)
	assert.Len(t, c.LocalTop, 1)
}

func TestTrim_DropsLowestPriorityFirst(t *testing.T) {
	c := &Context{
		Instructions: []Item{item(10)},
		ErrorFixes:   []Item{item(10)},
		LocalTop:     []Item{item(10)},
		Patterns:     []Item{item(10)},
		Related:      []Item{item(10)},
		LocalRest:    []Item{item(10)},
	}

	// Dropping LocalRest alone brings 60 down to 50.
	total := c.Trim(50)
	assert.Equal(t, 50, total)
	assert.Nil(t, c.LocalRest)
	assert.NotNil(t, c.Related)
	assert.NotNil(t, c.Patterns)
}

func TestTrim_DropsGroupsInOrder(t *testing.T) {
	c := &Context{
		Instructions: []Item{item(10)},
		ErrorFixes:   []Item{item(10)},
		LocalTop:     []Item{item(10)},
		Patterns:     []Item{item(10)},
		Related:      []Item{item(10)},
		LocalRest:    []Item{item(10)},
	}

	total := c.Trim(35)
	assert.Equal(t, 30, total)
	assert.Nil(t, c.LocalRest)
	assert.Nil(t, c.Related)
	assert.Nil(t, c.Patterns)
	assert.NotNil(t, c.LocalTop)
}

func TestTrim_NeverDropsInstructionsOrFixes(t *testing.T) {
	c := &Context{
		Instructions: []Item{item(30)},
		ErrorFixes:   []Item{item(30)},
		LocalRest:    []Item{item(10)},
	}

	// Even an impossible budget leaves instructions and fixes intact.
	total := c.Trim(5)
	assert.Equal(t, 60, total)
	assert.Len(t, c.Instructions, 1)
	assert.Len(t, c.ErrorFixes, 1)
	assert.Nil(t, c.LocalRest)
}

func TestTotalTokens(t *testing.T) {
	c := &Context{
		Instructions: []Item{item(1)},
		ErrorFixes:   []Item{item(2)},
		LocalTop:     []Item{item(3)},
		Patterns:     []Item{item(4)},
		Related:      []Item{item(5)},
		LocalRest:    []Item{item(6)},
	}
	assert.Equal(t, 21, c.TotalTokens())
}
