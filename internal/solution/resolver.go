package solution

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// maxStemResults caps the last-resort filename-stem search. The search can
// pick an unrelated project sharing a name elsewhere in the tree; the cap is
// the only guard, by intent.
const maxStemResults = 10

// resolveRule tries one strategy for turning a locator candidate into project
// file paths. Rules run in order; the first rule yielding at least one result
// terminates resolution.
type resolveRule func(solutionDir, candidate string) []string

var resolveRules = []resolveRule{
	ruleExactFile,
	ruleDirectoryListing,
	ruleAppendExtension,
	ruleStemSearch,
}

// resolveLocator turns a raw locator string (possibly relative, possibly
// missing an extension, possibly a directory) into zero or more absolute,
// existing project file paths. An empty result is not an error; the caller
// records the reference as unresolved and keeps going.
func resolveLocator(solutionDir, locator string) []string {
	candidate := normalizePath(solutionDir, locator)
	for _, rule := range resolveRules {
		if paths := rule(solutionDir, candidate); len(paths) > 0 {
			return paths
		}
	}
	return nil
}

func ruleExactFile(_, candidate string) []string {
	if fileExists(candidate) {
		return []string{candidate}
	}
	return nil
}

// ruleDirectoryListing returns every top-level project file in the candidate
// directory. More than one result means an ambiguous directory reference; all
// are returned and de-duplicated downstream.
func ruleDirectoryListing(_, candidate string) []string {
	info, err := os.Stat(candidate)
	if err != nil || !info.IsDir() {
		return nil
	}
	entries, err := os.ReadDir(candidate)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !isProjectFile(e.Name()) {
			continue
		}
		out = append(out, filepath.Join(candidate, e.Name()))
	}
	return out
}

// ruleAppendExtension tries each recognized extension in priority order on an
// extensionless candidate.
func ruleAppendExtension(_, candidate string) []string {
	if filepath.Ext(candidate) != "" {
		return nil
	}
	var out []string
	for _, ext := range projectExtensions {
		if p := candidate + ext; fileExists(p) {
			out = append(out, p)
		}
	}
	return out
}

// ruleStemSearch recursively searches the solution directory for project
// files whose stem matches the candidate's final path segment. Best effort:
// walk errors are swallowed and count as no match.
func ruleStemSearch(solutionDir, candidate string) []string {
	stem := projectName(candidate)
	if stem == "" {
		return nil
	}
	var out []string
	_ = filepath.WalkDir(solutionDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if len(out) >= maxStemResults {
			return fs.SkipAll
		}
		if d.IsDir() || !isProjectFile(d.Name()) {
			return nil
		}
		if strings.EqualFold(projectName(path), stem) {
			out = append(out, path)
		}
		return nil
	})
	return out
}
