package solution

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
)

// solutionFolderGUID marks virtual folders inside a .sln; they carry no
// buildable project and are filtered out.
const solutionFolderGUID = "2150E333-8FDC-42A3-9474-1A3956D46DE8"

// projectStanza matches the opening line of a project block:
//
//	Project("{TYPE-GUID}") = "Name", "rel\path\A.csproj", "{PROJECT-GUID}"
var projectStanza = regexp.MustCompile(`^Project\("\{([^}]+)\}"\)\s*=\s*"([^"]+)"\s*,\s*"([^"]+)"\s*,\s*"\{[^}]+\}"`)

// parseLegacy reads a delimited-text .sln file and yields its build-tool
// projects directly as (declared name, absolute path) pairs. Entries whose
// file is missing on disk are skipped, not fatal.
func parseLegacy(path string, logger *log.Logger) ([]ResolvedProject, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open solution: %w", err)
	}
	defer f.Close()

	dir := filepath.Dir(path)
	var out []ResolvedProject

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		m := projectStanza.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if m == nil {
			continue
		}
		typeGUID, name, rel := strings.ToUpper(m[1]), m[2], m[3]
		if typeGUID == solutionFolderGUID {
			continue
		}
		if !isProjectFile(rel) {
			// Websites, setup projects and other non-build-tool entries.
			continue
		}
		abs := normalizePath(dir, rel)
		if !fileExists(abs) {
			logger.Warn("solution entry missing on disk, skipping", "name", name, "path", abs)
			continue
		}
		out = append(out, ResolvedProject{Name: name, AbsolutePath: abs})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read solution: %w", err)
	}
	return dedupe(out), nil
}
