package cli

import (
	"fmt"
	"io"
)

// Usage writes the help text. program is the name the tool was invoked as.
func Usage(w io.Writer, program string) {
	fmt.Fprintln(w, "ASTExtractor: Abstract Syntax Tree Extractor for Java Source Code")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Run as:\n %s -project=\"path/to/project\" -properties=\"path/to/propertiesfile\" -repr=XML|JSON\n", program)
	fmt.Fprintf(w, "Or as:\n %s -file=\"path/to/file\" -properties=\"path/to/propertiesfile\" -repr=XML|JSON\n", program)
	fmt.Fprintln(w, "where -properties allows setting the location of the properties file"+
		" (default is no properties so all syntax tree nodes are returned)")
	fmt.Fprintln(w, "and -repr allows selecting the representation of the tree (default is XML)")
}
