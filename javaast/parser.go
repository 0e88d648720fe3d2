// Package javaast turns Java source text into an XML syntax tree.
//
// Parsing is done by the tree-sitter Java grammar. The resulting tree is
// written as markup where every named node becomes an element carrying its
// node kind, e.g.
//
//	<program>
//	   <class_declaration>
//	      <identifier>A</identifier>
//	      <class_body>...</class_body>
//	   </class_declaration>
//	</program>
//
// Anonymous tokens that carry a grammar field name use the field name as
// the element name (the operator of a binary expression becomes
// <operator>+</operator>). Other anonymous tokens of a node that has
// element children are written as <modifier>, <keyword> or <operator> in
// source order; delimiters and separators are dropped. Nodes without
// element children hold their source text.
//
// Source that is not valid UTF-8 is read as ISO 8859-1.
package javaast

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/tliron/commonlog"
	"golang.org/x/text/encoding/charmap"

	"github.com/dhamidi/astextractor/filter"
	"github.com/dhamidi/astextractor/format"
)

var log = commonlog.GetLogger("astextractor.javaast")

// Parser converts Java source into XML markup, applying a node filter.
type Parser struct {
	filter *filter.Filter
}

// NewParser returns a parser that emits only the node kinds admitted by f.
// A nil filter admits every kind.
func NewParser(f *filter.Filter) *Parser {
	return &Parser{filter: f}
}

// ParseString is Parse for source held in a string.
func (p *Parser) ParseString(ctx context.Context, source string) (string, error) {
	return p.Parse(ctx, []byte(source))
}

// Parse returns the XML syntax tree of a Java compilation unit. Source with
// syntax errors yields a *SyntaxError and no tree.
func (p *Parser) Parse(ctx context.Context, source []byte) (string, error) {
	if !utf8.Valid(source) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(source)
		if err != nil {
			return "", fmt.Errorf("decode java source: %w", err)
		}
		log.Debugf("source is not valid UTF-8, read as ISO 8859-1")
		source = decoded
	}

	ts := sitter.NewParser()
	defer ts.Close()
	ts.SetLanguage(java.GetLanguage())

	tree, err := ts.ParseCtx(ctx, nil, source)
	if err != nil {
		return "", fmt.Errorf("parse java source: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return "", newSyntaxError(root, source)
	}

	w := &markupWriter{filter: p.filter, source: source}
	w.writeNode(root, root.Type())
	log.Debugf("parsed %d bytes into %d elements", len(source), w.elements)
	return w.sb.String(), nil
}

type markupWriter struct {
	filter   *filter.Filter
	source   []byte
	sb       strings.Builder
	elements int
}

type child struct {
	node *sitter.Node
	name string
}

// children lists the children of n that become elements, before filtering.
// A node with neither named nor field children is a leaf and has none.
func (w *markupWriter) children(n *sitter.Node) []child {
	var out []child
	structured := false
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		if c.IsNamed() {
			out = append(out, child{node: c, name: c.Type()})
			structured = true
			continue
		}
		if field := n.FieldNameForChild(i); field != "" {
			out = append(out, child{node: c, name: field})
			structured = true
			continue
		}
		if name := tokenName(n.Type(), c.Type()); name != "" {
			out = append(out, child{node: c, name: name})
		}
	}
	if !structured {
		return nil
	}
	return out
}

// tokenName names an anonymous token of a parent node, or returns "" for
// delimiters and separators.
func tokenName(parent, token string) string {
	if isDelimiter(parent, token) {
		return ""
	}
	if strings.IndexFunc(token, unicode.IsLetter) >= 0 {
		if parent == "modifiers" {
			return "modifier"
		}
		return "keyword"
	}
	return "operator"
}

func isDelimiter(parent, token string) bool {
	switch token {
	case "->":
		return true
	case "<", ">":
		return parent == "type_arguments" || parent == "type_parameters"
	}
	return strings.Trim(token, `;,.(){}[]@:?"'\`) == ""
}

func (w *markupWriter) writeNode(n *sitter.Node, name string) {
	w.elements++
	w.sb.WriteByte('<')
	w.sb.WriteString(name)
	w.sb.WriteByte('>')

	children := w.children(n)
	if len(children) == 0 || w.filter.Collapses(name) {
		w.sb.WriteString(format.EscapeText(n.Content(w.source)))
	} else {
		for _, c := range children {
			if !w.filter.Includes(c.name) {
				continue
			}
			w.writeNode(c.node, c.name)
		}
	}

	w.sb.WriteString("</")
	w.sb.WriteString(name)
	w.sb.WriteByte('>')
}
