package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CheckFileExt is the extension of golden check files
const CheckFileExt = ".check"

// DefaultSkipDirs are never searched for check files
var DefaultSkipDirs = []string{"vendor", "node_modules", "_examples"}

// Scanner scans for check files in a directory
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Scan finds all check files in the given root directory
func (s *Scanner) Scan(root string) ([]string, error) {
	var checkFiles []string

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("check path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("check path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasSuffix(d.Name(), CheckFileExt) {
			checkFiles = append(checkFiles, path)
		}
		return nil
	})

	return checkFiles, err
}

// Resolve expands paths into check files: directories are scanned and files
// are taken as given. The result is sorted and free of duplicates.
func (s *Scanner) Resolve(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("check path does not exist: %s", p)
		}
		if !info.IsDir() {
			add(filepath.Clean(p))
			continue
		}
		found, err := s.Scan(p)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}

	sort.Strings(files)
	return files, nil
}
