// Package extractor extracts the syntax trees of Java files and folders and
// renders them as XML or JSON.
package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/astextractor/cli"
	"github.com/dhamidi/astextractor/format"
	"github.com/dhamidi/astextractor/javaast"
	"github.com/dhamidi/astextractor/project"
)

var log = commonlog.GetLogger("astextractor.extractor")

// Extractor reads Java sources from a filesystem and turns them into
// syntax tree documents.
type Extractor struct {
	fs     afero.Fs
	parser *javaast.Parser
}

// New returns an extractor reading from fs.
func New(fs afero.Fs, parser *javaast.Parser) *Extractor {
	return &Extractor{fs: fs, parser: parser}
}

// Extract runs the request and returns the rendered document.
func (e *Extractor) Extract(ctx context.Context, req cli.Request) (string, error) {
	doc, err := e.Markup(ctx, req.Target)
	if err != nil {
		return "", err
	}
	return format.Render(req.Repr, doc)
}

// Markup returns the unformatted XML document for a target.
func (e *Extractor) Markup(ctx context.Context, target cli.Target) (string, error) {
	log.Debugf("extracting %s", target.Path())
	switch t := target.(type) {
	case cli.ProjectTarget:
		return e.folderMarkup(ctx, t.Dir)
	case cli.FileTarget:
		doc, _, err := e.parseFile(ctx, t.File)
		return doc, err
	}
	return "", fmt.Errorf("unsupported target %T", target)
}

// ParseString returns the syntax tree of Java source text.
func (e *Extractor) ParseString(ctx context.Context, source string, repr format.Representation) (string, error) {
	doc, err := e.parser.ParseString(ctx, source)
	if err != nil {
		return "", err
	}
	return format.Render(repr, doc)
}

// ParseFile returns the syntax tree of a Java file.
func (e *Extractor) ParseFile(ctx context.Context, filename string, repr format.Representation) (string, error) {
	doc, _, err := e.parseFile(ctx, filename)
	if err != nil {
		return "", err
	}
	return format.Render(repr, doc)
}

func (e *Extractor) parseFile(ctx context.Context, filename string) (string, int, error) {
	data, err := afero.ReadFile(e.fs, filename)
	if err != nil {
		return "", 0, fmt.Errorf("read java file: %w", err)
	}
	doc, err := e.parser.Parse(ctx, data)
	if err != nil {
		return "", 0, fmt.Errorf("parse %s: %w", filename, err)
	}
	return doc, len(data), nil
}

// ParseFolder returns one document holding the syntax trees of every Java
// file below dir:
//
//	<folder>
//	   <file>
//	      <path>relative/path/A.java</path>
//	      <ast>...</ast>
//	   </file>
//	</folder>
//
// The first file that fails to parse aborts the whole run.
func (e *Extractor) ParseFolder(ctx context.Context, dir string, repr format.Representation) (string, error) {
	doc, err := e.folderMarkup(ctx, dir)
	if err != nil {
		return "", err
	}
	return format.Render(repr, doc)
}

func (e *Extractor) folderMarkup(ctx context.Context, dir string) (string, error) {
	proj, err := project.Open(e.fs, dir)
	if err != nil {
		return "", err
	}
	files, err := proj.JavaFiles()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	var total int
	sb.WriteString("<folder>\n")
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		rel, err := proj.RelativePath(file)
		if err != nil {
			return "", err
		}
		doc, size, err := e.parseFile(ctx, file)
		if err != nil {
			return "", err
		}
		total += size
		log.Debugf("parsed %s", rel)

		sb.WriteString("<file>\n<path>")
		sb.WriteString(format.EscapeText(rel))
		sb.WriteString("</path>\n<ast>\n")
		sb.WriteString(doc)
		sb.WriteString("\n</ast>\n</file>\n")
	}
	sb.WriteString("</folder>\n")

	log.Infof("parsed %d java files (%s) in %s", len(files), humanize.Bytes(uint64(total)), proj.RootDir)
	return sb.String(), nil
}
