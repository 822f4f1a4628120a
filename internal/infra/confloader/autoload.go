package confloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// LoadDirectory adds every regular file directly inside dir whose extension
// the store's chain supports. Files are added in lexical order of their
// names, so on key collisions the later name wins regardless of the order
// the filesystem lists them in.
//
// A missing or empty directory is a no-op. The first file that fails to
// parse aborts the load and its error is returned unchanged; files added
// before it stay merged.
func LoadDirectory(dir string, store *Store) error {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		store.log.Debug("autoload directory not found", "dir", dir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat autoload dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("autoload %s: %w", dir, ErrNotDirectory)
	}

	files, err := autoloadFiles(dir, store.chain)
	if err != nil {
		return err
	}

	for _, path := range files {
		if err := store.Add(path); err != nil {
			return err
		}
	}

	store.log.Debug("autoload directory loaded", "dir", dir, "files", len(files))
	return nil
}

// autoloadFiles lists the loadable files of dir, sorted by name.
func autoloadFiles(dir string, chain *Chain) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read autoload dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !chain.Supports(entry.Name()) {
			continue
		}
		// Stat follows symlinks, so a link to a regular file qualifies.
		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	files := make([]string, len(names))
	for i, name := range names {
		files[i] = filepath.Join(dir, name)
	}
	return files, nil
}
