package msbuild

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ProcessResult is the structured output of a `dotnet msbuild -getProperty
// -getItem` call: a property map plus item lists keyed by item type.
type ProcessResult struct {
	Properties map[string]string        `json:"Properties"`
	Items      map[string][]ProcessItem `json:"Items"`
}

// ProcessItem is one item entry from the build tool's JSON output.
type ProcessItem struct {
	Identity string `json:"Identity"`
	FullPath string `json:"FullPath"`
}

// Path prefers the tool-computed absolute path over the declared identity.
func (i ProcessItem) Path() string {
	if i.FullPath != "" {
		return i.FullPath
	}
	return i.Identity
}

// ProcessEvaluator spawns the external build tool to evaluate a project for
// one concrete target framework, requesting exactly the properties and the
// one item type the manifest needs.
type ProcessEvaluator struct {
	dotnetPath   string
	timeout      time.Duration
	hostProperty string
	itemType     string
}

func NewProcessEvaluator(dotnetPath string, timeout time.Duration, hostProperty, itemType string) *ProcessEvaluator {
	return &ProcessEvaluator{
		dotnetPath:   dotnetPath,
		timeout:      timeout,
		hostProperty: hostProperty,
		itemType:     itemType,
	}
}

// requestedProperties is the fixed property set asked of the build tool.
func (p *ProcessEvaluator) requestedProperties() []string {
	return []string{
		"TargetPath",
		"OutputType",
		p.hostProperty,
		"ProjectDepsFilePath",
		"ProjectRuntimeConfigFilePath",
		"IntermediateOutputPath",
	}
}

// Evaluate runs the build tool with a hard wall-clock timeout. Timeout,
// non-zero exit, and garbled output all surface as errors; the caller skips
// the project.
func (p *ProcessEvaluator) Evaluate(ctx context.Context, projectPath, targetFramework string) (*ProcessResult, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	args := []string{
		"msbuild", projectPath, "-nologo",
		"-p:TargetFramework=" + targetFramework,
		"-getProperty:" + strings.Join(p.requestedProperties(), ","),
		"-getItem:" + p.itemType,
	}
	cmd := exec.CommandContext(ctx, p.dotnetPath, args...)
	cmd.Dir = filepath.Dir(projectPath)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("build-tool evaluation timed out after %s", p.timeout)
		}
		return nil, fmt.Errorf("dotnet msbuild: %w: %s", err, firstLine(stderr.String()))
	}
	return parseProcessOutput(stdout.Bytes())
}

// parseProcessOutput extracts the JSON document from the build tool's stdout.
// The tool may print warnings before the document, so parsing starts at the
// first opening brace.
func parseProcessOutput(out []byte) (*ProcessResult, error) {
	idx := bytes.IndexByte(out, '{')
	if idx < 0 {
		return nil, errors.New("no JSON document in build output")
	}
	var res ProcessResult
	if err := json.Unmarshal(out[idx:], &res); err != nil {
		return nil, fmt.Errorf("parse build output: %w", err)
	}
	if len(res.Properties) == 0 {
		return nil, errors.New("build output carries no properties")
	}
	return &res, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
