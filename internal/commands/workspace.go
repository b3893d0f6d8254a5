package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ajustes-contables/rt6/internal/accounts"
	"github.com/ajustes-contables/rt6/internal/cmdlog"
	"github.com/ajustes-contables/rt6/internal/config"
	"github.com/ajustes-contables/rt6/internal/gitops"
	"github.com/ajustes-contables/rt6/internal/indices"
	"github.com/ajustes-contables/rt6/internal/journal"
	"github.com/ajustes-contables/rt6/internal/logging"
	"github.com/ajustes-contables/rt6/internal/model"
	"github.com/ajustes-contables/rt6/internal/monetary"
	"github.com/ajustes-contables/rt6/internal/output"
	"github.com/ajustes-contables/rt6/internal/rt6"
	"github.com/ajustes-contables/rt6/internal/statement"
)

// session is the state one root command shares with all its subcommands.
type session struct {
	repoDir    string
	recomputes *statement.Service
}

func newSession() *session {
	return &session{repoDir: ".", recomputes: statement.NewService(nil)}
}

// workspace is an opened rt6 directory plus the per-invocation helpers
// every command needs.
type workspace struct {
	root       string
	cfg        *config.Config
	chart      *accounts.Service
	logger     *slog.Logger
	styles     *output.Styles
	out        io.Writer
	recomputes *statement.Service
}

func (s *session) open(cmd *cobra.Command) (*workspace, error) {
	root, err := filepath.Abs(s.repoDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.Load(config.Path(root))
	if err != nil {
		return nil, fmt.Errorf("loading workspace %s: %w", root, err)
	}
	chart, err := accounts.Load(root)
	if err != nil {
		return nil, err
	}
	return &workspace{
		root:       root,
		cfg:        cfg,
		chart:      chart,
		logger:     logging.New(cmd.ErrOrStderr(), cfg.Log.Format, cfg.Log.Level),
		styles:     output.NewStyles(cmd.OutOrStdout()),
		out:        cmd.OutOrStdout(),
		recomputes: s.recomputes,
	}, nil
}

func (w *workspace) rules() monetary.RuleTable {
	return monetary.DefaultRules().WithKeywords(monetary.RuleForeignCurrency, w.cfg.RT6.FXKeywords)
}

func (w *workspace) detector() journal.ClosingDetector {
	return journal.NewClosingDetector(w.cfg.RT6.ClosingEntryKeywords)
}

// resolve finds an account by ID or code.
func (w *workspace) resolve(ref string) (model.Account, error) {
	acc, ok := w.chart.Resolve(ref)
	if !ok {
		return model.Account{}, fmt.Errorf("account %q not found in chart of accounts", ref)
	}
	return acc, nil
}

// inputs loads the full on-disk snapshot.
func (w *workspace) inputs(_ context.Context) (statement.Inputs, error) {
	closing, err := w.cfg.ClosingDate()
	if err != nil {
		return statement.Inputs{}, err
	}
	entries, err := journal.NewService(w.root).LoadAll()
	if err != nil {
		return statement.Inputs{}, err
	}
	table, err := indices.Load(w.root)
	if err != nil {
		return statement.Inputs{}, err
	}
	ovs, err := monetary.LoadOverrides(w.root)
	if err != nil {
		return statement.Inputs{}, err
	}
	parts, err := rt6.LoadPartidas(w.root)
	if err != nil {
		return statement.Inputs{}, err
	}
	return statement.Inputs{
		Accounts:      w.chart.All(),
		Entries:       entries,
		Overrides:     ovs,
		Partidas:      parts,
		Indices:       table,
		ClosingDate:   closing,
		Rules:         w.rules(),
		Detector:      w.detector(),
		CapitalRubros: w.cfg.RT6.CapitalRubros,
	}, nil
}

// statement recomputes everything from disk. Concurrent callers within one
// session share a single recompute per workspace and closing date.
func (w *workspace) statement(ctx context.Context) (*statement.Statement, error) {
	ctx = logging.NewContext(ctx, w.logger)
	st, _, err := w.recomputes.Recompute(ctx, w.root+"@"+w.cfg.Period.ClosingDate, w.inputs)
	return st, err
}

// record appends to the command log and, when enabled, commits the touched
// files first so the log row carries the hash.
func (w *workspace) record(command, target, details string, paths ...string) error {
	entry := cmdlog.Entry{
		Timestamp: time.Now().UTC(),
		Command:   command,
		Target:    target,
		Details:   details,
	}
	if w.cfg.Git.AutoCommit && gitops.IsRepo(w.root) {
		rel := make([]string, 0, len(paths))
		for _, p := range paths {
			r, err := filepath.Rel(w.root, p)
			if err != nil {
				return fmt.Errorf("resolving %s: %w", p, err)
			}
			rel = append(rel, r)
		}
		msg := fmt.Sprintf("%s: %s", command, target)
		hash, err := gitops.Commit(w.root, msg, w.cfg.Git.AuthorName, w.cfg.Git.AuthorEmail, rel...)
		if err != nil {
			return err
		}
		entry.CommitHash = hash
	}
	if err := cmdlog.Append(w.root, entry); err != nil {
		return fmt.Errorf("writing command log: %w", err)
	}
	w.logger.Debug("command recorded", "command", command, "target", target, "commit", entry.CommitHash)
	return nil
}

// money styles a decimal as ARS, red when negative.
func (w *workspace) money(d decimal.Decimal) string {
	return w.styles.Amount(output.Signed(d))
}
