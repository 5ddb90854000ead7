// Package extract orchestrates per-project metadata extraction with bounded
// parallelism and per-project failure isolation.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"slnmeta/internal/config"
	"slnmeta/internal/manifest"
	"slnmeta/internal/msbuild"
	"slnmeta/internal/solution"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// EvaluatedProject is the handle the in-process evaluator returns: property
// lookup by name (empty if absent) and item lookup resolved to absolute paths.
type EvaluatedProject interface {
	FullPath() string
	Property(name string) string
	ItemPaths(itemType string) []string
}

// Evaluator is the in-process build-property evaluator boundary.
type Evaluator interface {
	Evaluate(path string) (*msbuild.Project, error)
}

// ProcessEvaluator is the out-of-process fallback boundary, isolated so the
// timeout and process-spawn mechanics stay swappable in tests.
type ProcessEvaluator interface {
	Evaluate(ctx context.Context, projectPath, targetFramework string) (*msbuild.ProcessResult, error)
}

// Orchestrator fans evaluation out over the resolved project list. One
// project's failure never aborts the batch.
type Orchestrator struct {
	eval   Evaluator
	proc   ProcessEvaluator
	cfg    *config.Config
	logger *log.Logger
}

func NewOrchestrator(eval Evaluator, proc ProcessEvaluator, cfg *config.Config, logger *log.Logger) *Orchestrator {
	return &Orchestrator{eval: eval, proc: proc, cfg: cfg, logger: logger}
}

// Run evaluates all projects with bounded parallelism and collects the
// successes. Ordering between projects is not guaranteed; failed projects are
// logged and permanently skipped for the run.
func (o *Orchestrator) Run(ctx context.Context, projects []solution.ResolvedProject) []manifest.ProjectMetadata {
	var (
		mu  sync.Mutex
		out []manifest.ProjectMetadata
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.Workers())

	for _, rp := range projects {
		rp := rp
		g.Go(func() error {
			meta, err := o.extractOne(ctx, rp)
			if err != nil {
				// Per-project failures are absorbed here so sibling
				// evaluations keep running.
				o.logger.Warn("skipping project", "project", rp.Name, "reason", err)
				return nil
			}
			mu.Lock()
			out = append(out, *meta)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (o *Orchestrator) extractOne(ctx context.Context, rp solution.ResolvedProject) (*manifest.ProjectMetadata, error) {
	proj, err := o.eval.Evaluate(rp.AbsolutePath)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}

	outcome := classifyTargets(proj.Property("TargetFramework"), proj.Property("TargetFrameworks"))
	switch outcome.kind {
	case targetMulti:
		res, err := o.proc.Evaluate(ctx, rp.AbsolutePath, outcome.selected)
		if err != nil {
			return nil, fmt.Errorf("fallback evaluation for %s: %w", outcome.selected, err)
		}
		return o.fromProcess(rp, proj, outcome.selected, res), nil
	case targetUnselectable:
		return nil, fmt.Errorf("no concrete target framework among %q", strings.Join(outcome.declared, ";"))
	default:
		return o.fromProject(rp, proj, outcome.selected), nil
	}
}

// fromProject builds metadata from an in-process evaluation result.
func (o *Orchestrator) fromProject(rp solution.ResolvedProject, proj EvaluatedProject, targetFramework string) *manifest.ProjectMetadata {
	outputType := proj.Property("OutputType")
	targetPath := proj.Property("TargetPath")
	projectDir := filepath.Dir(proj.FullPath())

	meta := &manifest.ProjectMetadata{
		Name:                   rp.Name,
		Path:                   proj.FullPath(),
		TargetPath:             targetPath,
		OutputType:             outputType,
		NormalizedOutputType:   manifest.NormalizeOutputType(outputType),
		DesignerHostPath:       proj.Property(o.cfg.Designer.HostProperty),
		TargetFramework:        targetFramework,
		DepsFilePath:           proj.Property("ProjectDepsFilePath"),
		RuntimeConfigFilePath:  proj.Property("ProjectRuntimeConfigFilePath"),
		ProjectReferences:      proj.ItemPaths("ProjectReference"),
		IntermediateOutputPath: manifest.IntermediateCachePath(proj.Property("IntermediateOutputPath"), projectDir),
	}
	for _, f := range proj.ItemPaths(o.cfg.Designer.ItemType) {
		meta.DesignerFiles = append(meta.DesignerFiles, manifest.DesignerFile{
			Path:        f,
			TargetPath:  targetPath,
			ProjectPath: proj.FullPath(),
		})
	}
	return meta
}

// fromProcess builds metadata for a multi-targeted project. Target-dependent
// fields come from the out-of-process result; project references are
// framework-independent and come from the in-process handle. Designer files
// carry the final, fallback-derived target path.
func (o *Orchestrator) fromProcess(rp solution.ResolvedProject, proj EvaluatedProject, targetFramework string, res *msbuild.ProcessResult) *manifest.ProjectMetadata {
	outputType := res.Properties["OutputType"]
	targetPath := res.Properties["TargetPath"]
	projectDir := filepath.Dir(proj.FullPath())

	meta := &manifest.ProjectMetadata{
		Name:                   rp.Name,
		Path:                   proj.FullPath(),
		TargetPath:             targetPath,
		OutputType:             outputType,
		NormalizedOutputType:   manifest.NormalizeOutputType(outputType),
		DesignerHostPath:       res.Properties[o.cfg.Designer.HostProperty],
		TargetFramework:        targetFramework,
		DepsFilePath:           res.Properties["ProjectDepsFilePath"],
		RuntimeConfigFilePath:  res.Properties["ProjectRuntimeConfigFilePath"],
		ProjectReferences:      proj.ItemPaths("ProjectReference"),
		IntermediateOutputPath: manifest.IntermediateCachePath(res.Properties["IntermediateOutputPath"], projectDir),
	}
	for _, item := range res.Items[o.cfg.Designer.ItemType] {
		meta.DesignerFiles = append(meta.DesignerFiles, manifest.DesignerFile{
			Path:        item.Path(),
			TargetPath:  targetPath,
			ProjectPath: proj.FullPath(),
		})
	}
	return meta
}
