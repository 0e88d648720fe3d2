package javaast

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/astextractor/filter"
	"github.com/dhamidi/astextractor/format"
)

func parse(t *testing.T, f *filter.Filter, source string) string {
	t.Helper()
	out, err := NewParser(f).ParseString(context.Background(), source)
	require.NoError(t, err)
	return out
}

func TestParseClassWithField(t *testing.T) {
	got := parse(t, nil, "class A { int x; }")

	want := "<program>" +
		"<class_declaration>" +
		"<keyword>class</keyword>" +
		"<identifier>A</identifier>" +
		"<class_body>" +
		"<field_declaration>" +
		"<integral_type>int</integral_type>" +
		"<variable_declarator><identifier>x</identifier></variable_declarator>" +
		"</field_declaration>" +
		"</class_body>" +
		"</class_declaration>" +
		"</program>"
	assert.Equal(t, want, got)
}

func TestParseProducesWellFormedMarkup(t *testing.T) {
	sources := []string{
		"",
		"package a.b;\nimport java.util.List;\npublic class A<T> extends B implements C {\n  private final List<String> names = List.of(\"a<b\", \"c&d\");\n  /** doc */\n  public static void main(String[] args) { for (int i = 0; i < args.length; i++) { System.out.println(args[i]); } }\n}\n",
		"interface I { default int f(int a) { return a > 0 ? a : -a; } }",
		"enum E { ONE, TWO; }",
		"record R(int x, String y) {}",
		"class A { @Override public void f() { i++; --j; boolean b = !done && -n < ~m; } }",
		"class Ü { String s = \"grüße λ\"; char c = '\\u00e9'; }",
		"// page\f break\nclass A { int x; }",
		"class A { String s = \"a\x01b\"; }",
		"// caf\xe9\nclass A { int x; }",
		"class A {\r\n  int x;\r\n}\r\n",
	}

	for _, src := range sources {
		out := parse(t, nil, src)
		_, err := format.FormatXML(out)
		assert.NoError(t, err, "source %q produced %q", src, out)
		_, err = format.ToJSON(out)
		assert.NoError(t, err, "source %q produced %q", src, out)
		assert.True(t, strings.HasPrefix(out, "<program>"), out)
	}
}

func TestAnonymousTokens(t *testing.T) {
	tests := []struct {
		name      string
		filter    *filter.Filter
		source    string
		contains  []string
		forbidden []string
	}{
		{
			name:   "annotated modifiers",
			source: "class A { @Override public void f() {} }",
			contains: []string{
				"<modifiers><marker_annotation><identifier>Override</identifier></marker_annotation><modifier>public</modifier></modifiers>",
			},
		},
		{
			name:     "plain modifiers stay text",
			source:   "class A { public static void f() {} }",
			contains: []string{"<modifiers>public static</modifiers>"},
		},
		{
			name:   "postfix and prefix update",
			source: "class A { void f() { i++; --j; } }",
			contains: []string{
				"<update_expression><identifier>i</identifier><operator>++</operator></update_expression>",
				"<update_expression><operator>--</operator><identifier>j</identifier></update_expression>",
			},
		},
		{
			name:     "unary operator",
			source:   "class A { int f(int a) { return -a; } }",
			contains: []string{"<unary_expression><operator>-</operator><identifier>a</identifier></unary_expression>"},
		},
		{
			name:     "statement keywords",
			source:   "class A { int f(int a) { return a; } }",
			contains: []string{"<keyword>class</keyword>", "<return_statement><keyword>return</keyword><identifier>a</identifier></return_statement>"},
		},
		{
			name:      "delimiters are dropped",
			source:    "class A { java.util.List<String> f(int a, int b) { return null; } }",
			contains:  []string{"<type_arguments><type_identifier>String</type_identifier></type_arguments>"},
			forbidden: []string{"<operator>;</operator>", "<operator>,</operator>", "<operator>.</operator>", "<operator>(</operator>", "<operator>{</operator>", "<operator>&lt;</operator>"},
		},
		{
			name:      "token kinds can be omitted",
			filter:    filter.New([]string{"modifier"}, nil),
			source:    "class A { @Override public void f() {} }",
			forbidden: []string{"<modifier>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parse(t, tt.filter, tt.source)
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.forbidden {
				assert.NotContains(t, got, s)
			}
		})
	}
}

func TestTextOutsideXMLIsReplaced(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"form feed in comment", "// page\f break\nclass A { int x; }", "<line_comment>// page\uFFFD break</line_comment>"},
		{"control character in string", "class A { String s = \"a\x01b\"; }", "a\uFFFDb"},
		{"latin-1 source", "// caf\xe9\nclass A { int x; }", "<line_comment>// café</line_comment>"},
		{"utf-8 source", "// café\nclass A { int x; }", "<line_comment>// café</line_comment>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parse(t, nil, tt.source)
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestFieldNamedTokensBecomeElements(t *testing.T) {
	got := parse(t, nil, "class A { int y = 1 + 2; }")
	assert.Contains(t, got, "<operator>+</operator>")
	assert.Contains(t, got, "<decimal_integer_literal>1</decimal_integer_literal>")
	assert.Contains(t, got, "<decimal_integer_literal>2</decimal_integer_literal>")
}

func TestTextIsEscaped(t *testing.T) {
	got := parse(t, nil, `class A { String s = "a<b&c"; }`)
	assert.Contains(t, got, "a&lt;b&amp;c")
	assert.NotContains(t, got, "a<b")
}

func TestFilter(t *testing.T) {
	src := "import java.util.List;\nclass A { // note\n int x; void f() {} }"

	tests := []struct {
		name      string
		filter    *filter.Filter
		contains  []string
		forbidden []string
	}{
		{
			name:     "unrestricted",
			filter:   nil,
			contains: []string{"<line_comment>// note</line_comment>", "<field_declaration>", "<method_declaration>"},
		},
		{
			name:      "omitted kinds drop their subtree",
			filter:    filter.New([]string{"line_comment", "method_declaration"}, nil),
			contains:  []string{"<field_declaration>"},
			forbidden: []string{"line_comment", "method_declaration", "<identifier>f</identifier>"},
		},
		{
			name:      "leaves hold source text",
			filter:    filter.New(nil, []string{"import_declaration", "field_declaration"}),
			contains:  []string{"<import_declaration>import java.util.List;</import_declaration>", "<field_declaration>int x;</field_declaration>"},
			forbidden: []string{"<scoped_identifier>", "<integral_type>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parse(t, tt.filter, src)
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.forbidden {
				assert.NotContains(t, got, s)
			}
		})
	}
}

func TestSyntaxError(t *testing.T) {
	tests := []struct {
		name   string
		source string
		line   int
	}{
		{"garbage", "class A { int x = ; }", 1},
		{"unterminated", "class A {\n  void f() {\n", 1},
		{"second line", "class A {}\n}}}", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewParser(nil).ParseString(context.Background(), tt.source)
			assert.Empty(t, out)

			var syntaxErr *SyntaxError
			require.True(t, errors.As(err, &syntaxErr), "got %v", err)
			assert.GreaterOrEqual(t, syntaxErr.Line, tt.line)
			assert.GreaterOrEqual(t, syntaxErr.Column, 1)
			assert.Contains(t, syntaxErr.Error(), "syntax error at")
		})
	}
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"short", "int x =", "int x ="},
		{"whitespace collapsed", "a\n\t  b", "a b"},
		{"ascii cut", strings.Repeat("x", 45), strings.Repeat("x", 40) + "..."},
		{"runes kept whole", strings.Repeat("é", 45), strings.Repeat("é", 40) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := snippet(tt.input)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got), got)
		})
	}
}

func TestParseIsDeterministic(t *testing.T) {
	src := "class A { int x; String y() { return \"\" + x; } }"
	assert.Equal(t, parse(t, nil, src), parse(t, nil, src))
}
