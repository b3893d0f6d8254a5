package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ajustes-contables/rt6/internal/id"
	"github.com/ajustes-contables/rt6/internal/indices"
	"github.com/ajustes-contables/rt6/internal/output"
	"github.com/ajustes-contables/rt6/internal/rt6"
	"github.com/ajustes-contables/rt6/internal/statement"
)

func newPartidasCommand(sess *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "partidas",
		Short: "List and edit RT6 partidas",
	}
	cmd.AddCommand(
		newPartidasListCommand(sess),
		newPartidasRecomputeCommand(sess),
		newPartidasAddCommand(sess),
		newPartidasEditCommand(sess),
		newPartidasDeleteCommand(sess),
		newLotCommand(sess),
	)
	return cmd
}

// parseLot reads "DATE:BASE[:NOTES]" where DATE is YYYY-MM-DD or APERTURA.
func parseLot(s string) (rt6.Lot, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 {
		return rt6.Lot{}, fmt.Errorf("invalid lot %q: want DATE:BASE[:NOTES]", s)
	}
	lot, err := lotOrigin(parts[0])
	if err != nil {
		return rt6.Lot{}, err
	}
	lot.Base, err = decimal.NewFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return rt6.Lot{}, fmt.Errorf("invalid base in lot %q: %w", s, err)
	}
	if len(parts) == 3 {
		lot.Notes = parts[2]
	}
	return lot, nil
}

func lotOrigin(s string) (rt6.Lot, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, string(indices.Opening)) {
		return rt6.Lot{OriginPeriod: indices.Opening}, nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return rt6.Lot{}, fmt.Errorf("invalid lot date %q: %w", s, err)
	}
	return rt6.Lot{OriginDate: d, OriginPeriod: indices.PeriodOf(d)}, nil
}

func parseLots(specs []string) ([]rt6.Lot, error) {
	lots := make([]rt6.Lot, 0, len(specs))
	for _, s := range specs {
		l, err := parseLot(s)
		if err != nil {
			return nil, err
		}
		lots = append(lots, l)
	}
	return lots, nil
}

// savePartidas persists p and records the command.
func savePartidas(w *workspace, p rt6.Partidas, command, target, details string) error {
	if err := rt6.SavePartidas(w.root, p); err != nil {
		return err
	}
	return w.record(command, target, details, rt6.PartidasPath(w.root))
}

func newPartidasListCommand(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every partida with its lots restated to the closing date",
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
			return printPartidas(w, st)
		},
	}
}

func printPartidas(w *workspace, st *statement.Statement) error {
	for _, p := range st.Computed {
		fmt.Fprintf(w.out, "%s %s %s %s\n", w.styles.Heading(p.ID), w.styles.Account(p.Code), p.Name, w.styles.Dim("("+partidaOrigin(p)+")"))

		tw := newTabWriter(w)
		for _, l := range p.Lots {
			coef := output.Coefficient(l.Coefficient)
			homog := output.Money(l.Homog)
			if l.MissingIndex {
				coef, homog = w.styles.Warning("s/índice"), "-"
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\n",
				l.ID, l.OriginPeriod, output.Money(l.Base), coef, homog, w.styles.Dim(l.Notes))
		}
		fmt.Fprintf(tw, "  \tTotal\t%s\t\t%s\tRECPAM %s\n",
			output.Money(p.TotalBase), output.Money(p.TotalHomog), w.money(p.TotalRecpam))
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// partidaOrigin tells hand-entered partidas from ledger-derived ones that
// were edited and therefore survive recomputes.
func partidaOrigin(p rt6.Partida) string {
	switch {
	case id.IsManual(p.ID):
		return "manual"
	case p.Manual:
		return "edited"
	default:
		return "auto"
	}
}

func newPartidasRecomputeCommand(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "recompute",
		Short: "Rebuild partidas from the ledger, keeping manual ones",
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
			details := fmt.Sprintf("%d partidas, %d closing entries skipped", st.Partidas.Len(), st.Analysis.ClosingEntries)
			if err := savePartidas(w, st.Partidas, "partidas recompute", "*", details); err != nil {
				return err
			}
			fmt.Fprintf(w.out, "%s %s\n", w.styles.Success("✓"), details)
			return nil
		},
	}
}

func newPartidasAddCommand(sess *session) *cobra.Command {
	var account, rubro string
	var lotSpecs []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a manual partida for an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := sess.open(cmd)
			if err != nil {
				return err
			}
			acc, err := w.resolve(account)
			if err != nil {
				return err
			}
			lots, err := parseLots(lotSpecs)
			if err != nil {
				return err
			}
			st, err := w.statement(cmd.Context())
			if err != nil {
				return err
			}

			src := rt6.SourceFor(acc)
			if rubro != "" {
				src.Rubro = rubro
			}
			src.Lots = lots
			next, added := st.Partidas.Add(src)
			if err := savePartidas(w, next, "partidas add", added.ID, fmt.Sprintf("%s, %d lots", acc.ID, len(lots))); err != nil {
				return err
			}
			fmt.Fprintf(w.out, "%s added %s\n", w.styles.Success("✓"), added.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&account, "account", "", "account ID or code (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&rubro, "rubro", "", "rubro override")
	cmd.Flags().StringArrayVar(&lotSpecs, "lot", nil, "lot as DATE:BASE[:NOTES], DATE may be APERTURA (repeatable)")
	return cmd
}

func newPartidasEditCommand(sess *session) *cobra.Command {
	var rubro string
	var lotSpecs []string

	cmd := &cobra.Command{
		Use:   "edit <partida-id>",
		Short: "Edit a partida; the edit survives later recomputes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := sess.open(cmd)
			if err != nil {
				return err
			}
			st, err := w.statement(cmd.Context())
			if err != nil {
				return err
			}
			src, ok := st.Partidas.Get(args[0])
			if !ok {
				return fmt.Errorf("partida %s: %w", args[0], rt6.ErrPartidaNotFound)
			}
			if cmd.Flags().Changed("rubro") {
				src.Rubro = rubro
			}
			if cmd.Flags().Changed("lot") {
				if src.Lots, err = parseLots(lotSpecs); err != nil {
					return err
				}
			}
			next, err := st.Partidas.Edit(src)
			if err != nil {
				return err
			}
			if err := savePartidas(w, next, "partidas edit", src.ID, fmt.Sprintf("%d lots", len(src.Lots))); err != nil {
				return err
			}
			fmt.Fprintf(w.out, "%s edited %s\n", w.styles.Success("✓"), src.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&rubro, "rubro", "", "new rubro")
	cmd.Flags().StringArrayVar(&lotSpecs, "lot", nil, "replacement lot as DATE:BASE[:NOTES] (repeatable)")
	return cmd
}

func newPartidasDeleteCommand(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <partida-id>",
		Short: "Delete a partida; ledger-derived ones come back on recompute",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := sess.open(cmd)
			if err != nil {
				return err
			}
			st, err := w.statement(cmd.Context())
			if err != nil {
				return err
			}
			next, err := st.Partidas.Delete(args[0])
			if err != nil {
				return err
			}
			if err := savePartidas(w, next, "partidas delete", args[0], ""); err != nil {
				return err
			}
			fmt.Fprintf(w.out, "%s deleted %s\n", w.styles.Success("✓"), args[0])
			return nil
		},
	}
}

func newLotCommand(sess *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lot",
		Short: "Edit or delete single lots",
	}
	cmd.AddCommand(newLotEditCommand(sess), newLotDeleteCommand(sess))
	return cmd
}

func findLot(p rt6.Partidas, lotID string) (rt6.Lot, error) {
	partidaID, _, err := id.ParseLotID(lotID)
	if err != nil {
		return rt6.Lot{}, err
	}
	src, ok := p.Get(partidaID)
	if !ok {
		return rt6.Lot{}, fmt.Errorf("lot %s: %w", lotID, rt6.ErrPartidaNotFound)
	}
	for _, l := range src.Lots {
		if l.ID == lotID {
			return l, nil
		}
	}
	return rt6.Lot{}, fmt.Errorf("lot %s: %w", lotID, rt6.ErrLotNotFound)
}

func newLotEditCommand(sess *session) *cobra.Command {
	var date, base, notes string

	cmd := &cobra.Command{
		Use:   "edit <lot-id>",
		Short: "Change the origin, base or notes of a lot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := sess.open(cmd)
			if err != nil {
				return err
			}
			st, err := w.statement(cmd.Context())
			if err != nil {
				return err
			}
			lot, err := findLot(st.Partidas, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("date") {
				origin, err := lotOrigin(date)
				if err != nil {
					return err
				}
				lot.OriginDate, lot.OriginPeriod = origin.OriginDate, origin.OriginPeriod
			}
			if cmd.Flags().Changed("base") {
				if lot.Base, err = decimal.NewFromString(base); err != nil {
					return fmt.Errorf("invalid base %q: %w", base, err)
				}
			}
			if cmd.Flags().Changed("notes") {
				lot.Notes = notes
			}
			next, err := st.Partidas.EditLot(args[0], lot)
			if err != nil {
				return err
			}
			if err := savePartidas(w, next, "partidas lot edit", args[0], lot.OriginPeriod.String()+" "+lot.Base.String()); err != nil {
				return err
			}
			fmt.Fprintf(w.out, "%s edited %s\n", w.styles.Success("✓"), args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "origin date YYYY-MM-DD or APERTURA")
	cmd.Flags().StringVar(&base, "base", "", "historical amount")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	return cmd
}

func newLotDeleteCommand(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <lot-id>",
		Short: "Remove a lot from its partida",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := sess.open(cmd)
			if err != nil {
				return err
			}
			st, err := w.statement(cmd.Context())
			if err != nil {
				return err
			}
			next, err := st.Partidas.DeleteLot(args[0])
			if err != nil {
				return err
			}
			if err := savePartidas(w, next, "partidas lot delete", args[0], ""); err != nil {
				return err
			}
			fmt.Fprintf(w.out, "%s deleted %s\n", w.styles.Success("✓"), args[0])
			return nil
		},
	}
}
