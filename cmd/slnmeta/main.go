package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"slnmeta/internal/config"
	"slnmeta/internal/descriptor"
	"slnmeta/internal/extract"
	"slnmeta/internal/manifest"
	"slnmeta/internal/msbuild"
	"slnmeta/internal/solution"
	"slnmeta/internal/toolchain"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Exit codes. Partial per-project failures still exit 0: a manifest was
// produced and printed.
const (
	exitInvalidInput = 1
	exitNoToolchain  = 2
)

var configPath string

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "slnmeta",
	})

	rootCmd := &cobra.Command{
		Use:           "slnmeta <solution-or-directory>",
		Short:         "Resolve a solution's projects and emit a design-time metadata manifest",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), logger, args[0])
		},
	}
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the optional YAML config")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Error(err.Error())
		if errors.Is(err, toolchain.ErrNotFound) {
			os.Exit(exitNoToolchain)
		}
		os.Exit(exitInvalidInput)
	}
}

func run(ctx context.Context, logger *log.Logger, input string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Warn("config not loaded, using defaults", "error", err)
		cfg = config.Default()
	}

	desc, err := descriptor.Classify(input)
	if err != nil {
		return err
	}

	tc, err := toolchain.Locate(ctx, desc.Dir())
	if err != nil {
		return err
	}
	logger.Info("toolchain located", "dotnet", tc.Path, "version", tc.Version)

	projects, err := solution.Load(desc, cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("projects resolved", "count", len(projects))

	evaluator := msbuild.NewEvaluator(msbuild.LoadOptions{
		IgnoreMissingImports: true,
		FailOnUnresolvedSDK:  true,
	})
	runner := msbuild.NewProcessEvaluator(tc.Path, cfg.ProcessTimeout(), cfg.Designer.HostProperty, cfg.Designer.ItemType)

	orch := extract.NewOrchestrator(evaluator, runner, cfg, logger)
	metas := orch.Run(ctx, projects)
	logger.Info("projects evaluated", "succeeded", len(metas), "skipped", len(projects)-len(metas))

	m := manifest.Aggregate(desc.Original, metas)
	path, err := manifest.Write(m, os.Stdout)
	if err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	logger.Info("manifest written", "path", path)
	return nil
}
