package solution

import (
	"path/filepath"
	"testing"

	"slnmeta/internal/config"
	"slnmeta/internal/descriptor"

	"github.com/stretchr/testify/require"
)

func TestScanDirectory_TopLevelOnly(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, filepath.Join(dir, "A.csproj"), "<Project/>")
	writeFile(t, filepath.Join(dir, "sub", "B.csproj"), "<Project/>")
	writeFile(t, filepath.Join(dir, "readme.md"), "")

	projects, err := scanDirectory(dir)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, "A", projects[0].Name)
	require.Equal(t, a, projects[0].AbsolutePath)
}

func TestScanTree_ExcludesArtifactDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "A", "A.csproj"), "<Project/>")
	writeFile(t, filepath.Join(dir, "bin", "B.csproj"), "<Project/>")
	writeFile(t, filepath.Join(dir, "obj", "C.csproj"), "<Project/>")
	writeFile(t, filepath.Join(dir, ".git", "D.csproj"), "<Project/>")
	writeFile(t, filepath.Join(dir, "node_modules", "E.csproj"), "<Project/>")

	found, err := scanTree(dir, config.Default().Scan.ExcludedDirs, maxRescueResults)
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, filepath.Join(dir, "A", "A.csproj"), found[0])
}

func TestScanTree_CapRespected(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"A", "B", "C", "D"} {
		writeFile(t, filepath.Join(dir, name, name+".csproj"), "<Project/>")
	}

	found, err := scanTree(dir, nil, 2)
	require.NoError(t, err)
	require.Len(t, found, 2)
}

func TestLoad_DirectoryDescriptor(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "A.csproj"), "<Project/>")
	writeFile(t, filepath.Join(dir, "B.csproj"), "<Project/>")

	desc, err := descriptor.Classify(dir)
	require.NoError(t, err)

	projects, err := Load(desc, config.Default(), testLogger())
	require.NoError(t, err)
	require.Len(t, projects, 2)
}
