// Package toolchain locates the dotnet host for a working directory.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNotFound means no compatible toolchain serves the working directory.
// It maps to exit code 2 and aborts the run before any project is touched.
var ErrNotFound = errors.New("no compatible dotnet toolchain found")

// Toolchain is a located build-tool host.
type Toolchain struct {
	Path    string
	Version string
}

// Locate finds the dotnet host on PATH and verifies it can serve workDir.
// Running --version inside workDir honors global.json SDK pinning: a pinned
// but uninstalled SDK fails here, not mid-batch.
func Locate(ctx context.Context, workDir string) (*Toolchain, error) {
	path, err := exec.LookPath("dotnet")
	if err != nil {
		return nil, fmt.Errorf("%w: dotnet not on PATH", ErrNotFound)
	}

	cmd := exec.CommandContext(ctx, path, "--version")
	cmd.Dir = workDir
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%w: dotnet --version failed in %s", ErrNotFound, workDir)
	}
	return &Toolchain{Path: path, Version: strings.TrimSpace(string(out))}, nil
}
