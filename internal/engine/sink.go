package engine

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileSink writes generated sources under a root directory: one file per
// fully qualified name, with namespace segments as directories. A name can
// be opened only once per round.
type FileSink struct {
	root    string
	created map[string]bool
}

// NewFileSink creates a sink rooted at dir.
func NewFileSink(dir string) *FileSink {
	return &FileSink{
		root:    dir,
		created: make(map[string]bool),
	}
}

// Create opens the sink for fqName. Opening the same name twice in one round
// fails.
func (s *FileSink) Create(fqName string) (io.WriteCloser, error) {
	if s.created[fqName] {
		return nil, fmt.Errorf("source file already created for %q", fqName)
	}
	rel := filepath.FromSlash(strings.ReplaceAll(fqName, ".", "/")) + ".gen.go"
	path := filepath.Join(s.root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	s.created[fqName] = true
	return f, nil
}
