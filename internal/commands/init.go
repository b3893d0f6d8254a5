package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajustes-contables/rt6/internal/accounts"
	"github.com/ajustes-contables/rt6/internal/config"
	"github.com/ajustes-contables/rt6/internal/gitops"
	"github.com/ajustes-contables/rt6/internal/indices"
	"github.com/ajustes-contables/rt6/internal/monetary"
	"github.com/ajustes-contables/rt6/internal/output"
	"github.com/ajustes-contables/rt6/internal/rt6"
)

type initOptions struct {
	name       string
	entityType string
	year       int
	git        bool
}

func newInitCommand() *cobra.Command {
	opts := initOptions{year: time.Now().Year()}

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new RT6 workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&opts.entityType, "entity-type", "sociedad", "entity type")
	cmd.Flags().IntVar(&opts.year, "year", opts.year, "fiscal year being restated")
	cmd.Flags().BoolVar(&opts.git, "git", true, "initialize a git repository")

	return cmd
}

func runInit(out io.Writer, dir string, opts initOptions) error {
	// Create directory structure.
	dirs := []string{
		"accounts",
		"indices",
		"rt6",
		"logs",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write rt6.yaml.
	cfg := config.Default(opts.name, opts.entityType, opts.year)
	if err := config.Save(config.Path(dir), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write chart of accounts.
	chart := accounts.DefaultChart(opts.entityType)
	if err := accounts.NewService(chart).Save(dir); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	// Empty index table, overrides and partidas.
	if err := indices.Save(dir, indices.Table{}); err != nil {
		return err
	}
	if err := monetary.SaveOverrides(dir, monetary.NewOverrides(nil)); err != nil {
		return err
	}
	if err := rt6.SavePartidas(dir, rt6.NewPartidas(nil)); err != nil {
		return err
	}

	// Write import/.gitkeep.
	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	styles := output.NewStyles(out)
	if !opts.git {
		fmt.Fprintf(out, "%s RT6 workspace at %s\n", styles.Success("Initialized"), dir)
		return nil
	}

	// Initialize git and create initial commit.
	if err := gitops.Init(dir, io.Discard); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	hash, err := gitops.Commit(dir, "init: Initialize "+opts.name, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Fprintf(out, "%s RT6 workspace at %s (%s)\n", styles.Success("Initialized"), dir, hash)
	return nil
}
