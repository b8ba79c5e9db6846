package main

import (
	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/spf13/cobra"
)

// newRootCommand builds the command tree on a. The caller closes a once the
// command has finished, whether or not it failed.
func newRootCommand(a *app) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "storefront",
		Short: "storefront: catalog, admin search, cart and checkout console",
		Long: `storefront talks to the shop backend API.
It searches the product catalog page by page, manages the cart and wishlist,
places orders and reports payment status.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.out = cmd.OutOrStdout()
			if opts.token != "" {
				cmd.SetContext(auth.WithToken(cmd.Context(), opts.token))
			}
			return a.init(opts)
		},
	}

	fs := cmd.PersistentFlags()
	fs.Int64VarP(&opts.userID, "user", "u", 0, "user id (defaults to STOREFRONT_USER_ID)")
	fs.StringVar(&opts.variant, "variant", "admin", "product endpoints to use: admin or catalog")
	fs.StringVar(&opts.token, "token", "", "bearer token for privileged calls (defaults to BACKEND_TOKEN)")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	fs.BoolVar(&opts.jsonOutput, "json", false, "print JSON instead of tables")

	cmd.AddCommand(
		newSearchCommand(a),
		newShellCommand(a),
		newCartCommand(a),
		newWishlistCommand(a),
		newCheckoutCommand(a),
		newPayCommand(a),
		newNoticesCommand(a),
		newCarouselCommand(a),
	)
	return cmd
}
