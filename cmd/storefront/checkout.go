package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckoutCommand(a *app) *cobra.Command {
	var (
		address string
		confirm bool
	)
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "price the cart and optionally place the order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if !confirm {
				summary, err := a.checkout.Summary(ctx, a.opts.userID)
				if err != nil {
					return err
				}
				if a.opts.jsonOutput {
					return writeJSON(a.out, summary)
				}
				printSummary(a.out, summary)
				return nil
			}

			orderID, err := a.checkout.PlaceOrder(ctx, a.opts.userID, address)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Order %s placed. Pay with: storefront pay %s --client-secret <secret>\n", orderID, orderID)
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&address, "address", "", "shipping address")
	fs.BoolVar(&confirm, "confirm", false, "place the order")
	return cmd
}
