package main

import (
	"github.com/fekuna/omnipos-storefront/internal/search"
	"github.com/spf13/cobra"
)

func newSearchCommand(a *app) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "search <all|name|stocks|category> [value]",
		Short: "run one product search",
		Long: `Run one product search and print a page of results.

  search name shoe
  search stocks 10-20 --page 2
  search category Shoes`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := search.ParseKind(args[0])
			if err != nil {
				return err
			}
			criteria := search.Criteria{Kind: kind}
			if len(args) > 1 {
				criteria.Value = args[1]
			}

			ctx := cmd.Context()
			ctrl := a.newController()
			if st := ctrl.Init(ctx); st.Err != nil && kind == search.KindCategory {
				return printState(a.out, st, a.opts.jsonOutput)
			}

			st := ctrl.SubmitSearch(ctx, criteria)
			if page > 1 && st.Err == nil {
				st = ctrl.ChangePage(ctx, page)
			}
			return printState(a.out, st, a.opts.jsonOutput)
		},
	}
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page to show")
	return cmd
}
