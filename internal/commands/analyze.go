package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajustes-contables/rt6/internal/output"
	"github.com/ajustes-contables/rt6/internal/statement"
)

func newAnalyzeCommand(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Derive origin lots from the ledger without saving them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := sess.open(cmd)
			if err != nil {
				return err
			}
			st, err := w.statement(cmd.Context())
			if err != nil {
				return err
			}
			return printAnalysis(w, st)
		},
	}
}

func printAnalysis(w *workspace, st *statement.Statement) error {
	a := st.Analysis
	for _, src := range a.Sources {
		fmt.Fprintf(w.out, "%s %s %s\n", w.styles.Account(src.Code), src.Name, w.styles.Dim(string(src.Group)+" / "+src.Rubro))
		tw := newTabWriter(w)
		for _, l := range src.Lots {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", l.OriginPeriod, output.Money(l.Base), w.styles.Dim(l.Notes))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	fmt.Fprintf(w.out, "%d partida(s) derived; %d closing entr(ies) excluded\n", len(a.Sources), a.ClosingEntries)
	return nil
}
