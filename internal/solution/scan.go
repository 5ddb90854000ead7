package solution

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// maxRescueResults caps the recursive scan that rescues a markup descriptor
// with zero resolvable references.
const maxRescueResults = 100

// scanDirectory lists project files directly in dir. No recursion, no
// resolution layer; this is the directory-descriptor path.
func scanDirectory(dir string) ([]ResolvedProject, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list directory: %w", err)
	}
	var out []ResolvedProject
	for _, e := range entries {
		if e.IsDir() || !isProjectFile(e.Name()) {
			continue
		}
		p := filepath.Join(dir, e.Name())
		out = append(out, ResolvedProject{Name: projectName(p), AbsolutePath: p})
	}
	return dedupe(out), nil
}

// scanTree recursively collects project files under root, skipping
// build-artifact and dependency-cache directories, capped at limit results to
// bound worst-case latency on large trees.
func scanTree(root string, excluded []string, limit int) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			for _, ign := range excluded {
				if strings.EqualFold(d.Name(), ign) {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if !isProjectFile(d.Name()) {
			return nil
		}
		out = append(out, path)
		if len(out) >= limit {
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
