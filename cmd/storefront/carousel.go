package main

import (
	"github.com/fekuna/omnipos-storefront/internal/catalog"
	"github.com/fekuna/omnipos-storefront/internal/search"
	"github.com/spf13/cobra"
)

func newCarouselCommand(a *app) *cobra.Command {
	var (
		page  int
		limit int
	)
	cmd := &cobra.Command{
		Use:   "carousel",
		Short: "show the product carousel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := search.AllRequest{Paging: search.Paging{Page: 1, Size: limit}}
			products, _, err := a.products.Query(cmd.Context(), req)
			if err != nil {
				return err
			}

			c := catalog.NewCarousel(products, a.cfg.Storefront.CarouselPageSize)
			if page > 1 {
				if _, err := c.Show(page); err != nil {
					return err
				}
			}
			if a.opts.jsonOutput {
				return writeJSON(a.out, c.Visible())
			}
			printCarouselPage(a.out, c)
			return nil
		},
	}
	fs := cmd.Flags()
	fs.IntVarP(&page, "page", "p", 1, "carousel page to show")
	fs.IntVar(&limit, "limit", 12, "number of products to load")
	return cmd
}
