package format

import (
	"bytes"
	"encoding/json"
	"io"
	"regexp"
	"strings"
)

// ContentKey holds the text of an element that also has child elements or
// attributes.
const ContentKey = "content"

var numberPattern = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// ToJSON converts an XML document to JSON. Elements become keys, repeated
// sibling elements collapse into arrays, attributes become keys of their
// element and text that reads as a boolean, null or number is typed
// accordingly. Keys keep document order.
func ToJSON(doc string) (string, error) {
	root, err := parseTree(doc)
	if err != nil {
		return "", err
	}
	top := newObject()
	top.accumulate(root.Name, elementValue(root))

	out, err := encode(top, strings.Repeat(" ", Indent))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func elementValue(e *element) any {
	if len(e.Attrs) == 0 && !e.hasChildElements() {
		return scalar(strings.TrimSpace(e.text()))
	}

	obj := newObject()
	for _, a := range e.Attrs {
		obj.accumulate(a.Name, scalar(a.Value))
	}
	for _, c := range e.Content {
		if c.Elem != nil {
			obj.accumulate(c.Elem.Name, elementValue(c.Elem))
			continue
		}
		if text := strings.TrimSpace(c.Text); text != "" {
			obj.accumulate(ContentKey, scalar(text))
		}
	}
	return obj
}

func scalar(s string) any {
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}
	if numberPattern.MatchString(s) {
		return json.Number(s)
	}
	return s
}

// accumulated marks arrays built from repeated keys, as opposed to values
// that happen to be slices.
type accumulated []any

type object struct {
	keys   []string
	values map[string]any
}

func newObject() *object {
	return &object{values: make(map[string]any)}
}

func (o *object) accumulate(key string, value any) {
	existing, ok := o.values[key]
	if !ok {
		o.keys = append(o.keys, key)
		o.values[key] = value
		return
	}
	if arr, ok := existing.(accumulated); ok {
		o.values[key] = append(arr, value)
		return
	}
	o.values[key] = accumulated{existing, value}
}

func (o *object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := encode(key, "")
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := encode(o.values[key], "")
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encode marshals without HTML escaping so that source text such as
// generics survives untouched.
func encode(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// JSONEncoder writes documents as JSON.
type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

// Encode writes the converted document followed by a newline.
func (e *JSONEncoder) Encode(doc string) error {
	text, err := e.MarshalText(doc)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText(doc string) ([]byte, error) {
	out, err := ToJSON(doc)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}
