package javaast

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

const maxSnippet = 40

// SyntaxError reports the first position the grammar could not make sense
// of. Line and Column are 1-based.
type SyntaxError struct {
	Line    int
	Column  int
	Missing bool
	Text    string
}

func (e *SyntaxError) Error() string {
	if e.Missing {
		return fmt.Sprintf("syntax error at %d:%d: missing %q", e.Line, e.Column, e.Text)
	}
	if e.Text == "" {
		return fmt.Sprintf("syntax error at %d:%d", e.Line, e.Column)
	}
	return fmt.Sprintf("syntax error at %d:%d: unexpected %q", e.Line, e.Column, e.Text)
}

func newSyntaxError(root *sitter.Node, source []byte) *SyntaxError {
	n := firstError(root)
	if n == nil {
		n = root
	}
	pt := n.StartPoint()
	e := &SyntaxError{
		Line:    int(pt.Row) + 1,
		Column:  int(pt.Column) + 1,
		Missing: n.IsMissing(),
	}
	if e.Missing {
		e.Text = n.Type()
	} else {
		e.Text = snippet(n.Content(source))
	}
	return e
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.IsMissing() || n.Type() == "ERROR" {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil || !(c.HasError() || c.IsMissing()) {
			continue
		}
		if found := firstError(c); found != nil {
			return found
		}
	}
	return nil
}

func snippet(s string) string {
	runes := []rune(strings.Join(strings.Fields(s), " "))
	if len(runes) > maxSnippet {
		return string(runes[:maxSnippet]) + "..."
	}
	return string(runes)
}
