package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajustes-contables/rt6/internal/importer"
	"github.com/ajustes-contables/rt6/internal/indices"
	"github.com/ajustes-contables/rt6/internal/output"
)

func newIndicesCommand(sess *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "indices",
		Short: "Manage the price index table",
	}
	cmd.AddCommand(newIndicesImportCommand(sess), newIndicesListCommand(sess))
	return cmd
}

func newIndicesImportCommand(sess *session) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Merge index series files into the table (default: everything in import/)",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := sess.open(cmd)
			if err != nil {
				return err
			}
			return runIndicesImport(w, importer.DefaultRegistry(), format, args)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "series format (plain, facpce); detected when empty")
	return cmd
}

func runIndicesImport(w *workspace, reg *importer.Registry, format string, paths []string) error {
	scanned := len(paths) == 0
	if scanned {
		files, err := importer.Scan(w.root)
		if err != nil {
			return err
		}
		for _, f := range files {
			paths = append(paths, f.Path)
		}
	}
	if len(paths) == 0 {
		fmt.Fprintln(w.out, w.styles.Dim("nothing to import"))
		return nil
	}

	table, err := indices.Load(w.root)
	if err != nil {
		return err
	}
	var names []string
	for _, p := range paths {
		rows, err := reg.ParseFile(p, format)
		if err != nil {
			return err
		}
		if table, err = table.Merge(rows); err != nil {
			return fmt.Errorf("merging %s: %w", filepath.Base(p), err)
		}
		w.logger.Info("index series imported", "file", filepath.Base(p), "rows", len(rows))
		names = append(names, filepath.Base(p))
	}
	if err := indices.Save(w.root, table); err != nil {
		return err
	}
	if scanned {
		for _, name := range names {
			if err := importer.MarkProcessed(w.root, name); err != nil {
				return err
			}
		}
	}

	details := strings.Join(names, " ")
	if err := w.record("indices import", "indices", details, filepath.Join(w.root, "indices", "indices.csv")); err != nil {
		return err
	}
	fmt.Fprintf(w.out, "%s imported %d file(s); table has %d periods\n", w.styles.Success("✓"), len(names), table.Len())
	return nil
}

func newIndicesListCommand(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the index table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := sess.open(cmd)
			if err != nil {
				return err
			}
			table, err := indices.Load(w.root)
			if err != nil {
				return err
			}
			closing, err := w.cfg.ClosingPeriod()
			if err != nil {
				return err
			}
			tw := newTabWriter(w)
			fmt.Fprintln(tw, "PERIOD\tINDEX\tCOEFFICIENT")
			for _, r := range table.Rows() {
				coef := w.styles.Dim("-")
				if c, err := table.Coefficient(closing, r.Period); err == nil {
					coef = output.Coefficient(c)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Period, r.Value.String(), coef)
			}
			return tw.Flush()
		},
	}
}
