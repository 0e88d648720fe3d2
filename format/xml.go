package format

import (
	"io"
	"strings"
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\r", "&#xD;")
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"\n", "&#xA;",
		"\r", "&#xD;",
		"\t", "&#x9;",
	)
)

// EscapeText escapes s for use as XML character data. Invalid UTF-8 and
// runes outside the XML character range are replaced by U+FFFD.
func EscapeText(s string) string {
	return textEscaper.Replace(sanitize(s))
}

func sanitize(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	if strings.IndexFunc(s, isIllegalChar) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isIllegalChar(r) {
			return '\uFFFD'
		}
		return r
	}, s)
}

// isIllegalChar reports runes outside the XML 1.0 Char production.
func isIllegalChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return false
	case r < 0x20:
		return true
	case r >= 0xD800 && r <= 0xDFFF:
		return true
	case r == 0xFFFE || r == 0xFFFF:
		return true
	}
	return false
}

// FormatXML pretty-prints doc with Indent spaces per level. Text of
// elements without child elements is kept verbatim; whitespace between
// elements is replaced by the indentation.
func FormatXML(doc string) (string, error) {
	root, err := parseTree(doc)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	writeElement(&sb, root, 0)
	return strings.TrimSuffix(sb.String(), "\n"), nil
}

func writeElement(sb *strings.Builder, e *element, depth int) {
	indent := strings.Repeat(" ", depth*Indent)
	sb.WriteString(indent)
	sb.WriteByte('<')
	sb.WriteString(e.Name)
	for _, a := range e.Attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Name)
		sb.WriteString(`="`)
		sb.WriteString(attrEscaper.Replace(a.Value))
		sb.WriteByte('"')
	}

	if !e.hasChildElements() {
		text := e.text()
		if strings.TrimSpace(text) == "" {
			sb.WriteString("/>\n")
			return
		}
		sb.WriteByte('>')
		sb.WriteString(EscapeText(text))
		sb.WriteString("</")
		sb.WriteString(e.Name)
		sb.WriteString(">\n")
		return
	}

	sb.WriteString(">\n")
	for _, c := range e.Content {
		if c.Elem != nil {
			writeElement(sb, c.Elem, depth+1)
			continue
		}
		// mixed content
		if text := strings.TrimSpace(c.Text); text != "" {
			sb.WriteString(indent)
			sb.WriteString(strings.Repeat(" ", Indent))
			sb.WriteString(EscapeText(text))
			sb.WriteByte('\n')
		}
	}
	sb.WriteString(indent)
	sb.WriteString("</")
	sb.WriteString(e.Name)
	sb.WriteString(">\n")
}

// XMLEncoder writes documents as indented XML.
type XMLEncoder struct {
	w io.Writer
}

func NewXMLEncoder(w io.Writer) *XMLEncoder {
	return &XMLEncoder{w: w}
}

// Encode writes the formatted document followed by a newline.
func (e *XMLEncoder) Encode(doc string) error {
	text, err := e.MarshalText(doc)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *XMLEncoder) MarshalText(doc string) ([]byte, error) {
	out, err := FormatXML(doc)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}
