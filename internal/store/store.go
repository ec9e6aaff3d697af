package store

import (
	"os"
	"path/filepath"
)

const localDirName = ".folio"

// Store is the on-disk state directory: the preference database and the
// last-session TUI state.
type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for a project-local .folio
// directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, localDirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir prefers a .folio directory above the working directory and
// falls back to the global config dir.
func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return ConfigDir()
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}
