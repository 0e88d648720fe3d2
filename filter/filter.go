// Package filter decides which syntax tree node kinds end up in the
// extracted document.
//
// A filter is read from a Java properties file:
//
//	# drop these kinds together with everything below them
//	OMIT = block_comment, line_comment
//	# emit these kinds as a single leaf holding their source text
//	LEAVES = import_declaration, package_declaration
//	# per-kind switches; unspecified kinds are included
//	annotation = false
//
// A nil *Filter includes every kind.
package filter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/magiconair/properties"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"github.com/tliron/commonlog"
)

const (
	OmitKey   = "OMIT"
	LeavesKey = "LEAVES"
)

var log = commonlog.GetLogger("astextractor.filter")

// Filter decides which node kinds are written and which are written as
// leaves. A nil *Filter admits every kind.
type Filter struct {
	excluded map[string]bool
	leaves   map[string]bool
}

// New builds a filter from explicit kind lists.
func New(excluded, leaves []string) *Filter {
	f := &Filter{
		excluded: make(map[string]bool),
		leaves:   make(map[string]bool),
	}
	for _, kind := range excluded {
		f.excluded[kind] = true
	}
	for _, kind := range leaves {
		f.leaves[kind] = true
	}
	return f
}

// Includes reports whether nodes of the given kind are emitted at all.
func (f *Filter) Includes(kind string) bool {
	if f == nil {
		return true
	}
	return !f.excluded[kind]
}

// Collapses reports whether nodes of the given kind are emitted as a leaf
// holding their source text instead of their children.
func (f *Filter) Collapses(kind string) bool {
	if f == nil {
		return false
	}
	return f.leaves[kind]
}

func (f *Filter) Excluded() []string {
	if f == nil {
		return nil
	}
	return sortedKeys(f.excluded)
}

func (f *Filter) Leaves() []string {
	if f == nil {
		return nil
	}
	return sortedKeys(f.leaves)
}

func (f *Filter) String() string {
	if f == nil {
		return "all node kinds"
	}
	return fmt.Sprintf("omit=[%s] leaves=[%s]",
		strings.Join(f.Excluded(), ","), strings.Join(f.Leaves(), ","))
}

// ConfigError reports a properties file that could not be turned into a
// filter.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("load properties %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Load reads the properties file at path. An empty path yields a nil
// filter, which includes every node kind.
func Load(fs afero.Fs, path string) (*Filter, error) {
	if path == "" {
		return nil, nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	props, err := loader.LoadBytes(data)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	f, err := fromProperties(props)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	log.Debugf("loaded node filter from %s: %s", path, f)
	return f, nil
}

func fromProperties(props *properties.Properties) (*Filter, error) {
	f := New(splitList(props.GetString(OmitKey, "")), splitList(props.GetString(LeavesKey, "")))

	for _, key := range props.Keys() {
		if key == OmitKey || key == LeavesKey {
			continue
		}
		value, _ := props.Get(key)
		included, err := cast.ToBoolE(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("node kind %q: value %q is not a boolean", key, value)
		}
		if included {
			delete(f.excluded, key)
		} else {
			f.excluded[key] = true
		}
	}
	return f, nil
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
