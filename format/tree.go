package format

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

type attribute struct {
	Name  string
	Value string
}

// content is either a child element or a run of character data.
type content struct {
	Elem *element
	Text string
}

type element struct {
	Name    string
	Attrs   []attribute
	Content []content
}

func (e *element) hasChildElements() bool {
	for _, c := range e.Content {
		if c.Elem != nil {
			return true
		}
	}
	return false
}

func (e *element) text() string {
	var sb strings.Builder
	for _, c := range e.Content {
		if c.Elem == nil {
			sb.WriteString(c.Text)
		}
	}
	return sb.String()
}

// parseTree reads a single-rooted XML document. Comments, processing
// instructions and directives are discarded.
func parseTree(doc string) (*element, error) {
	dec := xml.NewDecoder(strings.NewReader(doc))

	var root *element
	var stack []*element
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &MarkupError{Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{Name: qualifiedName(t.Name)}
			for _, a := range t.Attr {
				el.Attrs = append(el.Attrs, attribute{Name: qualifiedName(a.Name), Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, &MarkupError{Err: errors.New("multiple root elements")}
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Content = append(parent.Content, content{Elem: el})
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				if strings.TrimSpace(string(t)) != "" {
					return nil, &MarkupError{Err: errors.New("text outside of root element")}
				}
				continue
			}
			top := stack[len(stack)-1]
			if n := len(top.Content); n > 0 && top.Content[n-1].Elem == nil {
				top.Content[n-1].Text += string(t)
			} else {
				top.Content = append(top.Content, content{Text: string(t)})
			}
		}
	}

	if root == nil {
		return nil, &MarkupError{Err: errors.New("no root element")}
	}
	return root, nil
}

func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
