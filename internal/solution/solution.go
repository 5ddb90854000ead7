// Package solution turns a classified descriptor into the set of resolved,
// existing project files it names.
package solution

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"slnmeta/internal/config"
	"slnmeta/internal/descriptor"

	"github.com/charmbracelet/log"
)

// projectExtensions are the recognized build-tool project extensions, in the
// fixed priority order the resolver appends them.
var projectExtensions = []string{".csproj", ".fsproj", ".vbproj"}

// ProjectReference is a named pointer to a project as declared in a
// descriptor, before resolution.
type ProjectReference struct {
	DeclaredName string
	RawLocator   string
}

// ResolvedProject is an existing project file, keyed by absolute path.
type ResolvedProject struct {
	Name         string
	AbsolutePath string
}

// Load resolves all project files named by the descriptor. Unresolvable
// references are logged and skipped; Load only fails when the descriptor
// itself cannot be read.
func Load(desc descriptor.Descriptor, cfg *config.Config, logger *log.Logger) ([]ResolvedProject, error) {
	switch {
	case desc.Kind == descriptor.KindDirectory:
		return scanDirectory(desc.Path)
	case desc.Format == descriptor.FormatLegacy:
		return parseLegacy(desc.Path, logger)
	case desc.Format == descriptor.FormatMarkup:
		return parseMarkup(desc.Path, cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported descriptor %q", desc.Path)
	}
}

// dedupe collapses duplicate resolutions by absolute path, case-insensitive.
// The first name seen per path wins.
func dedupe(projects []ResolvedProject) []ResolvedProject {
	seen := make(map[string]bool, len(projects))
	out := make([]ResolvedProject, 0, len(projects))
	for _, p := range projects {
		key := strings.ToLower(p.AbsolutePath)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

func isProjectFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range projectExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// projectName returns the filename stem, e.g. "B" for "src/B.csproj".
func projectName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// normalizePath converts foreign separators and anchors relative paths at dir.
func normalizePath(dir, raw string) string {
	p := filepath.FromSlash(strings.ReplaceAll(raw, `\`, "/"))
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}
	return filepath.Clean(p)
}
