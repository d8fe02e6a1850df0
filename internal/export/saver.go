package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hance08/bankdash/internal/constants"
	"github.com/spf13/afero"
)

// Saver writes exported documents into a directory of a filesystem.
type Saver struct {
	fs  afero.Fs
	dir string
	now func() time.Time
}

func NewSaver(fs afero.Fs, dir string) *Saver {
	return &Saver{fs: fs, dir: dir, now: time.Now}
}

// FileName builds "<base>_<date>.<format>". Characters outside letters,
// digits, '-' and '_' become '_' so the file always lands in dir.
func (s *Saver) FileName(base, format string) string {
	return fmt.Sprintf("%s_%s.%s", sanitize(base), s.now().Format(constants.DateFormat), sanitize(format))
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
}

// Save writes data to dir/name and returns the full path. name must be a
// plain file name.
func (s *Saver) Save(name string, data []byte) (string, error) {
	if name == "" || name != filepath.Base(name) || name == ".." {
		return "", fmt.Errorf("invalid export file name %q", name)
	}

	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("can not create export directory %s: %w", s.dir, err)
	}

	path := filepath.Join(s.dir, name)
	if err := afero.WriteFile(s.fs, path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Export renders rows in the given format and saves the document.
// With no rows it returns ErrEmpty and touches nothing.
func (s *Saver) Export(format, base, title string, rows []Row) (string, error) {
	if len(rows) == 0 {
		return "", ErrEmpty
	}

	data, err := Render(format, title, rows)
	if err != nil {
		return "", err
	}
	return s.Save(s.FileName(base, format), data)
}

// DefaultDir is the Downloads folder of the current user, falling back to
// the working directory.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Downloads")
}
