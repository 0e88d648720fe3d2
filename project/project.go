package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("astextractor.project")

// Project is a directory tree of Java sources.
type Project struct {
	fs      afero.Fs
	RootDir string // absolute
}

// Open resolves dir to an absolute path and checks that it is a directory.
func Open(fs afero.Fs, dir string) (*Project, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	info, err := fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("open project: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open project: %s is not a directory", root)
	}
	return &Project{fs: fs, RootDir: root}, nil
}

// JavaFiles returns the absolute paths of all .java files below the project
// root, sorted lexically.
func (p *Project) JavaFiles() ([]string, error) {
	return JavaFiles(p.fs, p.RootDir)
}

// RelativePath returns path relative to the project root.
func (p *Project) RelativePath(path string) (string, error) {
	return RelativePath(p.RootDir, path)
}

// JavaFiles returns all .java files under root, recursively. Paths are
// absolute and sorted so that repeated runs see the same order.
func JavaFiles(fs afero.Fs, root string) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}

	var files []string
	err = afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !info.Mode().IsRegular() || !strings.HasSuffix(path, ".java") {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan java files in %s: %w", root, err)
	}

	sort.Strings(files)
	log.Debugf("found %d java files in %s", len(files), root)
	return files, nil
}

// RelativePath returns path relative to root using the platform separator.
// A file directly under root yields its base name and root itself yields ".".
func RelativePath(root, path string) (string, error) {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("relative path of %s: %w", path, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("relative path of %s: not under %s", path, root)
	}
	return rel, nil
}
