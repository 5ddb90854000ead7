package manifest

import (
	"path/filepath"
	"strings"
)

// NormalizeOutputType canonicalizes legacy numeric output-kind codes and
// free-form text. The vocabulary is open: unrecognized kinds pass through
// unchanged rather than being rejected.
func NormalizeOutputType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "0", "library":
		return "Library"
	case "1", "exe":
		return "Exe"
	case "2", "winexe":
		return "WinExe"
	case "3":
		return "Module"
	}
	return raw
}

// cacheSuffix locates the designer-reference cache under a project's
// intermediate output directory.
var cacheSuffix = [2]string{"designer", "references"}

// IntermediateCachePath appends the designer-reference cache suffix to the
// evaluator-reported intermediate output location, rooting relative results
// at the project's own directory and normalizing separators for the host.
func IntermediateCachePath(intermediate, projectDir string) string {
	if intermediate == "" {
		return ""
	}
	p := filepath.FromSlash(strings.ReplaceAll(intermediate, `\`, "/"))
	p = filepath.Join(p, cacheSuffix[0], cacheSuffix[1])
	if !filepath.IsAbs(p) {
		p = filepath.Join(projectDir, p)
	}
	return p
}
