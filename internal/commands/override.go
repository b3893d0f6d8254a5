package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajustes-contables/rt6/internal/model"
	"github.com/ajustes-contables/rt6/internal/monetary"
)

// overrideFunc applies one override command to acc and returns the next
// snapshot plus a short description for the command log.
type overrideFunc func(w *workspace, ovs monetary.Overrides, acc model.Account) (monetary.Overrides, string, error)

func newOverrideCommand(sess *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "override",
		Short: "Manage manual monetary classification of accounts",
	}

	cmd.AddCommand(
		newOverrideSubcommand(sess, "toggle", "Flip an account between monetary and non-monetary",
			func(w *workspace, ovs monetary.Overrides, acc model.Account) (monetary.Overrides, string, error) {
				ov, _ := ovs.Get(acc.ID)
				current := monetary.Classify(acc, ov, w.rules()).Class
				next := ovs.ToggleClassification(acc.ID, current)
				ov, _ = next.Get(acc.ID)
				return next, string(ov.Classification), nil
			}),
		newOverrideSubcommand(sess, "exclude", "Exclude an account from every RT6 report",
			func(_ *workspace, ovs monetary.Overrides, acc model.Account) (monetary.Overrides, string, error) {
				return ovs.Exclude(acc.ID), "excluded", nil
			}),
		newOverrideSubcommand(sess, "include", "Undo a previous exclusion",
			func(_ *workspace, ovs monetary.Overrides, acc model.Account) (monetary.Overrides, string, error) {
				return ovs.Include(acc.ID), "included", nil
			}),
		newOverrideSubcommand(sess, "manual-monetary", "Mark an account as monetary by hand",
			func(_ *workspace, ovs monetary.Overrides, acc model.Account) (monetary.Overrides, string, error) {
				return ovs.AddManualMonetary(acc.ID), string(model.ClassMonetary), nil
			}),
		newOverrideSubcommand(sess, "reset", "Drop the manual classification and use the heuristic",
			func(_ *workspace, ovs monetary.Overrides, acc model.Account) (monetary.Overrides, string, error) {
				return ovs.ResetClassification(acc.ID), "reset", nil
			}),
		newOverrideSetCommand(sess),
		newOverrideValidateCommand(sess),
	)
	return cmd
}

func newOverrideSubcommand(sess *session, use, short string, fn overrideFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <account>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := sess.open(cmd)
			if err != nil {
				return err
			}
			return applyOverride(w, "override "+use, args[0], fn)
		},
	}
}

func applyOverride(w *workspace, command, ref string, fn overrideFunc) error {
	acc, err := w.resolve(ref)
	if err != nil {
		return err
	}
	ovs, err := monetary.LoadOverrides(w.root)
	if err != nil {
		return err
	}
	next, details, err := fn(w, ovs, acc)
	if err != nil {
		return err
	}
	if err := monetary.SaveOverrides(w.root, next); err != nil {
		return err
	}
	if err := w.record(command, acc.ID, details, monetary.OverridesPath(w.root)); err != nil {
		return err
	}
	fmt.Fprintf(w.out, "%s %s %s: %s\n", w.styles.Success("✓"), w.styles.Account(acc.Code), acc.Name, next.State(acc.ID))
	return nil
}

func newOverrideSetCommand(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "set <account> <MONETARY|NON_MONETARY|FX_PROTECTED>",
		Short: "Set the classification of an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := sess.open(cmd)
			if err != nil {
				return err
			}
			class := model.MonetaryClass(strings.ToUpper(args[1]))
			return applyOverride(w, "override set", args[0],
				func(_ *workspace, ovs monetary.Overrides, acc model.Account) (monetary.Overrides, string, error) {
					next, err := ovs.SetClassification(acc.ID, class)
					return next, string(class), err
				})
		},
	}
}

func newOverrideValidateCommand(sess *session) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "validate [account]",
		Short: "Confirm an account's classification, or every classified account with --all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return errors.New("pass exactly one of <account> or --all")
			}
			w, err := sess.open(cmd)
			if err != nil {
				return err
			}
			if !all {
				return applyOverride(w, "override validate", args[0],
					func(_ *workspace, ovs monetary.Overrides, acc model.Account) (monetary.Overrides, string, error) {
						next, err := ovs.MarkValidated(acc.ID)
						return next, "validated", err
					})
			}

			st, err := w.statement(cmd.Context())
			if err != nil {
				return err
			}
			var ids []string
			for _, items := range [][]monetary.Item{st.Monetary.Activo, st.Monetary.Pasivo, st.Monetary.FX} {
				for _, it := range items {
					ids = append(ids, it.AccountID)
				}
			}
			ovs, err := monetary.LoadOverrides(w.root)
			if err != nil {
				return err
			}
			if err := monetary.SaveOverrides(w.root, ovs.MarkAllValidated(ids)); err != nil {
				return err
			}
			details := fmt.Sprintf("%d accounts", len(ids))
			if err := w.record("override validate", "*", details, monetary.OverridesPath(w.root)); err != nil {
				return err
			}
			fmt.Fprintf(w.out, "%s validated %s\n", w.styles.Success("✓"), details)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "validate every classified account in the monetary report")
	return cmd
}
