package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Write serializes the manifest to a file in the OS temp directory, named
// after the solution's base name, and echoes the same bytes to w (stdout in
// production). Returns the written file path.
func Write(m *Manifest, w io.Writer) (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode manifest: %w", err)
	}

	base := filepath.Base(m.Solution)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "solution"
	}
	path := filepath.Join(os.TempDir(), base+".json")

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
		return "", fmt.Errorf("emit manifest: %w", err)
	}
	return path, nil
}
