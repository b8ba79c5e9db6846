package main

import (
	"fmt"
	"strconv"

	"github.com/fekuna/omnipos-storefront/internal/cart"
	"github.com/spf13/cobra"
)

func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive number, got %q", what, arg)
	}
	return id, nil
}

func newCartCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "show and edit the shopping cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := a.carts.ListCart(cmd.Context(), a.opts.userID)
			if err != nil {
				return err
			}
			if a.opts.jsonOutput {
				return writeJSON(a.out, items)
			}
			printCart(a.out, items)
			fmt.Fprintf(a.out, "Total: $%s\n", cart.Total(items).String())
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <product-id>",
			Short: "add one unit of a product",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				productID, err := parseID(args[0], "product id")
				if err != nil {
					return err
				}
				item, err := a.carts.AddCartItem(cmd.Context(), a.opts.userID, productID)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Added %s to the cart (line %d)\n", item.Product.Name, item.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <line-id>",
			Short: "remove one cart line",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0], "line id")
				if err != nil {
					return err
				}
				return a.carts.DeleteCartItem(cmd.Context(), id)
			},
		},
		&cobra.Command{
			Use:   "move <product-id>",
			Short: "move one unit of a product back to the wishlist",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				productID, err := parseID(args[0], "product id")
				if err != nil {
					return err
				}
				item, err := a.carts.MoveToWishlist(cmd.Context(), a.opts.userID, productID)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Moved product %d to the wishlist (item %d)\n", productID, item.ID)
				return nil
			},
		},
	)
	return cmd
}

func newWishlistCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "show and edit the wishlist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := a.carts.ListWishlist(cmd.Context(), a.opts.userID)
			if err != nil {
				return err
			}
			if a.opts.jsonOutput {
				return writeJSON(a.out, items)
			}
			printCart(a.out, items)
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <product-id>",
			Short: "wish a product",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				productID, err := parseID(args[0], "product id")
				if err != nil {
					return err
				}
				item, err := a.carts.AddWishItem(cmd.Context(), a.opts.userID, productID)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Added %s to the wishlist (item %d)\n", item.Product.Name, item.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <item-id>",
			Short: "remove a wishlist item",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0], "item id")
				if err != nil {
					return err
				}
				return a.carts.DeleteWishItem(cmd.Context(), id)
			},
		},
	)
	return cmd
}
