package solution

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"slnmeta/internal/config"

	"github.com/charmbracelet/log"
)

// locatorAttrs are tried in order on each <Project> element; the first
// non-empty one wins.
var locatorAttrs = []string{"Include", "Path", "File"}

// parseMarkup reads an XML .slnx file, resolves each project reference, and
// de-duplicates the results. If nothing resolves (some authoring tools omit
// <Project> entries for auto-discovered projects), it rescues with a recursive
// scan of the solution directory rather than producing an empty manifest.
func parseMarkup(path string, cfg *config.Config, logger *log.Logger) ([]ResolvedProject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read solution: %w", err)
	}
	dir := filepath.Dir(path)

	refs, err := projectNodes(data, logger)
	if err != nil {
		// A malformed document falls back to empty-then-rescan.
		logger.Warn("malformed solution markup", "path", path, "error", err)
		refs = nil
	}

	var out []ResolvedProject
	for _, ref := range refs {
		paths := resolveLocator(dir, ref.RawLocator)
		if len(paths) == 0 {
			logger.Warn("project reference did not resolve", "locator", ref.RawLocator)
			continue
		}
		for _, p := range paths {
			out = append(out, ResolvedProject{Name: projectName(p), AbsolutePath: p})
		}
	}
	out = dedupe(out)

	if len(out) == 0 {
		logger.Warn("no projects resolved from markup, scanning solution directory", "dir", dir)
		found, err := scanTree(dir, cfg.Scan.ExcludedDirs, maxRescueResults)
		if err != nil {
			return nil, fmt.Errorf("fallback scan: %w", err)
		}
		for _, p := range found {
			out = append(out, ResolvedProject{Name: projectName(p), AbsolutePath: p})
		}
		out = dedupe(out)
	}
	return out, nil
}

// projectNodes walks the XML token stream and collects a reference for every
// <Project> element carrying a locator attribute. Nodes without one are
// skipped and logged, not fatal.
func projectNodes(data []byte, logger *log.Logger) ([]ProjectReference, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	var refs []ProjectReference
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse markup: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "Project" {
			continue
		}

		var locator string
		for _, want := range locatorAttrs {
			for _, a := range start.Attr {
				if a.Name.Local == want && a.Value != "" {
					locator = a.Value
					break
				}
			}
			if locator != "" {
				break
			}
		}
		if locator == "" {
			logger.Warn("project node has no locator attribute, skipping")
			continue
		}
		refs = append(refs, ProjectReference{DeclaredName: projectName(locator), RawLocator: locator})
	}
	return refs, nil
}
