package format

import (
	"fmt"
	"io"
)

// Indent is the number of spaces used per nesting level in both
// representations.
const Indent = 3

// Representation selects the markup an AST is rendered as.
type Representation int

const (
	XML Representation = iota
	JSON
)

func (r Representation) String() string {
	switch r {
	case XML:
		return "XML"
	case JSON:
		return "JSON"
	}
	return fmt.Sprintf("Representation(%d)", int(r))
}

// ParseRepresentation accepts exactly "XML" or "JSON".
func ParseRepresentation(s string) (Representation, error) {
	switch s {
	case "XML":
		return XML, nil
	case "JSON":
		return JSON, nil
	}
	return 0, fmt.Errorf("unknown representation: %q", s)
}

// Render converts an XML document into the requested representation.
func Render(repr Representation, doc string) (string, error) {
	switch repr {
	case XML:
		return FormatXML(doc)
	case JSON:
		return ToJSON(doc)
	}
	return "", fmt.Errorf("unknown representation: %s", repr)
}

// Encoder writes an XML document in one representation.
type Encoder interface {
	Encode(doc string) error
	MarshalText(doc string) ([]byte, error)
}

// NewEncoder returns the encoder for repr, falling back to XML.
func NewEncoder(repr Representation, w io.Writer) Encoder {
	if repr == JSON {
		return NewJSONEncoder(w)
	}
	return NewXMLEncoder(w)
}

// MarkupError reports a document the converter could not read.
type MarkupError struct {
	Err error
}

func (e *MarkupError) Error() string {
	return "malformed markup: " + e.Err.Error()
}

func (e *MarkupError) Unwrap() error {
	return e.Err
}
