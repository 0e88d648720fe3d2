// Package cli turns command line tokens of the form -key=value into an
// extraction request.
package cli

import (
	"errors"
	"strings"

	"github.com/dhamidi/astextractor/format"
)

const (
	ProjectFlag    = "-project="
	FileFlag       = "-file="
	PropertiesFlag = "-properties="
	ReprFlag       = "-repr="
)

// ErrUsage means the arguments do not describe a runnable request and the
// usage text should be shown instead.
var ErrUsage = errors.New("invalid arguments")

// Arguments holds the raw values of the recognised flags. Absent flags are
// empty.
type Arguments struct {
	Project    string
	File       string
	Properties string
	Repr       string
}

// ParseArgs scans tokens for the recognised flag prefixes. Keys are case
// sensitive, unknown tokens are ignored and a repeated key keeps its last
// value. Surrounding double quotes are stripped from values.
func ParseArgs(tokens []string) Arguments {
	var args Arguments
	for _, tok := range tokens {
		switch {
		case strings.HasPrefix(tok, ProjectFlag):
			args.Project = unquote(tok[len(ProjectFlag):])
		case strings.HasPrefix(tok, FileFlag):
			args.File = unquote(tok[len(FileFlag):])
		case strings.HasPrefix(tok, PropertiesFlag):
			args.Properties = unquote(tok[len(PropertiesFlag):])
		case strings.HasPrefix(tok, ReprFlag):
			args.Repr = unquote(tok[len(ReprFlag):])
		}
	}
	return args
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// Target is what a request parses: either a ProjectTarget or a FileTarget.
type Target interface {
	Path() string
	isTarget()
}

// ProjectTarget parses every Java file below a directory.
type ProjectTarget struct {
	Dir string
}

func (t ProjectTarget) Path() string { return t.Dir }
func (ProjectTarget) isTarget() {}

// FileTarget parses a single Java file.
type FileTarget struct {
	File string
}

func (t FileTarget) Path() string { return t.File }
func (FileTarget) isTarget() {}

// Request is a validated extraction request.
type Request struct {
	Target         Target
	PropertiesPath string
	Repr           format.Representation
}

// Request validates the arguments. Exactly one of project and file must be
// set and the representation, when given, must be exactly XML or JSON;
// otherwise ErrUsage is returned.
func (a Arguments) Request() (Request, error) {
	var target Target
	switch {
	case a.Project != "" && a.File == "":
		target = ProjectTarget{Dir: a.Project}
	case a.File != "" && a.Project == "":
		target = FileTarget{File: a.File}
	default:
		return Request{}, ErrUsage
	}

	repr := format.XML
	if a.Repr != "" {
		r, err := format.ParseRepresentation(a.Repr)
		if err != nil {
			return Request{}, ErrUsage
		}
		repr = r
	}

	return Request{
		Target:         target,
		PropertiesPath: a.Properties,
		Repr:           repr,
	}, nil
}
