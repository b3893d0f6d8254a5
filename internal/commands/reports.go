package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ajustes-contables/rt6/internal/ledger"
	"github.com/ajustes-contables/rt6/internal/monetary"
	"github.com/ajustes-contables/rt6/internal/output"
	"github.com/ajustes-contables/rt6/internal/statement"
)

func newTabWriter(w *workspace) *tabwriter.Writer {
	return tabwriter.NewWriter(w.out, 0, 4, 2, ' ', 0)
}

func newBalancesCommand(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Show account balances at the closing date",
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
			return printBalances(w, st)
		},
	}
}

func printBalances(w *workspace, st *statement.Statement) error {
	fmt.Fprintln(w.out, w.styles.Heading("Saldos al "+st.ClosingDate.Format("2006-01-02")))
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "CODE\tACCOUNT\tDEBIT\tCREDIT\tBALANCE")
	for _, id := range ledger.NonZero(st.Balances) {
		b := st.Balances[id]
		acc, _ := st.Tree.Account(id)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			w.styles.Account(acc.Code), acc.Name,
			output.Money(b.TotalDebit), output.Money(b.TotalCredit), w.money(b.Balance))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	printWarnings(w, st)
	return nil
}

func printWarnings(w *workspace, st *statement.Statement) {
	for _, warn := range st.Warnings {
		fmt.Fprintf(w.out, "%s %s\n", w.styles.Warning("warning:"), warn.Error())
	}
	for _, he := range st.HierarchyErrors {
		fmt.Fprintf(w.out, "%s %s\n", w.styles.Warning("warning:"), he.Error())
	}
}

func newTreeCommand(sess *session) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the account hierarchy with rolled-up balances",
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
			printTree(w, st, all)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include accounts with zero balance")
	return cmd
}

func printTree(w *workspace, st *statement.Statement, all bool) {
	st.Tree.Walk(func(id string, depth int) {
		totals := st.Rollups[id]
		if !all && totals.Balance.IsZero() {
			return
		}
		acc, _ := st.Tree.Account(id)
		line := fmt.Sprintf("%s%s %s  %s", strings.Repeat("  ", depth), w.styles.Account(acc.Code), acc.Name, w.money(totals.Balance))
		if label := st.Presentation[id]; label != "" {
			line += "  " + w.styles.Dim("["+label+"]")
		}
		fmt.Fprintln(w.out, line)
	})
	printWarnings(w, st)
}

func newMonetaryCommand(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "monetary",
		Short: "Show the monetary position and accounts pending classification",
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
			return printMonetary(w, st)
		},
	}
}

func printMonetary(w *workspace, st *statement.Statement) error {
	rep := st.Monetary
	sections := []struct {
		title string
		items []monetary.Item
		total string
	}{
		{"Activo monetario", rep.Activo, output.Money(rep.TotalActivo)},
		{"Pasivo monetario", rep.Pasivo, output.Money(rep.TotalPasivo)},
		{"Moneda extranjera", rep.FX, output.Money(rep.TotalFX)},
		{"Sin clasificar", rep.Unclassified, ""},
	}
	for _, sec := range sections {
		fmt.Fprintln(w.out, w.styles.Heading(sec.title))
		tw := newTabWriter(w)
		for _, it := range sec.items {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n",
				w.styles.Account(it.Code), it.Name, w.money(it.Balance), w.styles.Dim(classLabel(it.Classification)))
		}
		if sec.total != "" {
			fmt.Fprintf(tw, "  \tTotal\t%s\t\n", sec.total)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	fmt.Fprintf(w.out, "%s %s\n", w.styles.Heading("Posición monetaria neta:"), w.money(rep.NetPosition))
	if n := len(rep.Unclassified); n > 0 {
		fmt.Fprintf(w.out, "%s %d account(s) need classification\n", w.styles.Warning("pending:"), n)
	}
	return nil
}

func classLabel(c monetary.Classification) string {
	var parts []string
	switch {
	case c.Class == "":
		parts = append(parts, "?")
	case c.IsAuto:
		parts = append(parts, string(c.Class)+" (auto)")
	default:
		parts = append(parts, string(c.Class)+" (manual)")
	}
	if c.Validated {
		parts = append(parts, "validated")
	}
	return strings.Join(parts, ", ")
}

func newReportCommand(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show the RT6 restatement summary by group and rubro",
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
			return printReport(w, st)
		},
	}
}

func printReport(w *workspace, st *statement.Statement) error {
	sum := st.Summary
	fmt.Fprintf(w.out, "%s %s (%s)\n", w.styles.Heading("Reexpresión RT6 al"), st.ClosingDate.Format("2006-01-02"), w.cfg.Business.Name)

	tw := newTabWriter(w)
	fmt.Fprintln(tw, "GROUP / RUBRO\tBASE\tHOMOG\tDELTA")
	for _, g := range sum.Groups {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", w.styles.Heading(string(g.Group)),
			output.Money(g.Base), output.Money(g.Homog), w.money(g.Delta))
		for _, r := range g.Rubros {
			label := r.Rubro
			if r.Capital {
				label += " " + w.styles.Dim("(capital)")
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", label,
				output.Money(r.Base), output.Money(r.Homog), w.money(r.Delta))
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w.out, "Ajuste de capital: %s\n", w.money(sum.CapitalAdjustment))
	fmt.Fprintf(w.out, "Resultado ajustado: %s\n", w.money(sum.ResultadoAjustado.Homog))
	fmt.Fprintf(w.out, "RECPAM (método directo): %s\n", w.money(sum.NetRecpam))
	if sum.IndirectPending {
		fmt.Fprintf(w.out, "RECPAM (método indirecto): %s\n", w.styles.Dim("pendiente"))
	} else {
		fmt.Fprintf(w.out, "RECPAM (método indirecto): %s\n", w.money(sum.IndirectRecpam))
	}
	for _, p := range sum.MissingPeriods {
		fmt.Fprintf(w.out, "%s no index for %s; affected lots are excluded\n", w.styles.Warning("missing:"), p)
	}
	return nil
}
