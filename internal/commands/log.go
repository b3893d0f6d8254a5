package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajustes-contables/rt6/internal/cmdlog"
)

func newLogCommand(sess *session) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the command log, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := sess.open(cmd)
			if err != nil {
				return err
			}
			entries, err := cmdlog.Read(w.root)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(w.out, w.styles.Dim("no commands recorded"))
				return nil
			}

			tw := newTabWriter(w)
			fmt.Fprintln(tw, "TIME\tCOMMAND\tTARGET\tDETAILS\tCOMMIT")
			for i := len(entries) - 1; i >= 0; i-- {
				if limit > 0 && len(entries)-1-i >= limit {
					break
				}
				e := entries[i]
				commit := e.CommitHash
				if len(commit) > 7 {
					commit = commit[:7]
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					e.Timestamp.Local().Format(time.DateTime), w.styles.Heading(e.Command),
					w.styles.Account(e.Target), e.Details, w.styles.Dim(commit))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n entries (0 for all)")
	return cmd
}
