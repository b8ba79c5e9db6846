package main

import (
	"fmt"

	"github.com/fekuna/omnipos-storefront/internal/payment"
	"github.com/spf13/cobra"
)

func newPayCommand(a *app) *cobra.Command {
	var clientSecret string
	cmd := &cobra.Command{
		Use:   "pay <order-id>",
		Short: "report the payment status of an order and mark it paid on success",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payments, err := a.payments()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			msg, err := payments.Confirm(ctx, clientSecret)
			if msg != "" {
				fmt.Fprintln(a.out, msg)
			}
			if err != nil {
				return err
			}
			if msg != payment.MsgSucceeded {
				return nil
			}
			return payments.MarkPaid(ctx, args[0])
		},
	}
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "payment_intent_client_secret returned by Stripe")
	return cmd
}
