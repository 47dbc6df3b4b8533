package persist

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps each source as a flat text file under a data
// directory. Files are fully rewritten on every save.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Ping(ctx context.Context) error {
	return nil
}

func (s *FileStore) WriteLines(ctx context.Context, name string, lines []string) error {
	path := filepath.Join(s.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	var data string
	if len(lines) > 0 {
		data = strings.Join(lines, "\n") + "\n"
	}
	return os.WriteFile(path, []byte(data), 0o644)
}

// ReadLines returns the file content split into lines. A missing file
// is an empty record set, not an error.
func (s *FileStore) ReadLines(ctx context.Context, name string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	raw := strings.Split(string(data), "\n")
	lines := make([]string, 0, len(raw))
	for i, line := range raw {
		line = strings.TrimSuffix(line, "\r")
		if line == "" && i == len(raw)-1 {
			// trailing newline
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}
