package main

import (
	"fmt"

	"github.com/fekuna/omnipos-storefront/internal/notice"
	"github.com/spf13/cobra"
)

func newNoticesCommand(a *app) *cobra.Command {
	var open int64
	cmd := &cobra.Command{
		Use:   "notices",
		Short: "list store notices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			notices, err := a.notices.List(cmd.Context())
			if err != nil {
				return err
			}
			if a.opts.jsonOutput {
				return writeJSON(a.out, notices)
			}

			board := notice.NewBoard(notices, open)
			fmt.Fprintln(a.out, "All Notices:")
			for _, n := range board.Notices {
				fmt.Fprintf(a.out, "[%d] %s  %s\n", n.ID, n.Date(), n.Title)
				if !board.IsExpanded(n.ID) {
					continue
				}
				if n.URL != "" {
					fmt.Fprintf(a.out, "    %s\n", n.URL)
				}
				fmt.Fprintf(a.out, "    %s\n", notice.PlainDetail(n.Detail))
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&open, "open", 0, "notice id to expand")
	return cmd
}
