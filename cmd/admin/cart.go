package main

import (
	"github.com/spf13/cobra"
)

func newCartCmd(a *admin) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect and replace user carts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show <email>",
		Short: "Print the user's cart with every product resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cart, err := a.carts.GetForUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(cart)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <email> [productID]...",
		Short: "Replace the user's cart; no product ids empties it",
		Long: `Replace the product references of a user's cart. The cart is created
and linked to the user on first use. Every id must name an existing product.

Examples:
  admin cart set a@x.com 9f1c0d2e4b7a4c3e8d6f5a1b2c3d4e5f
  admin cart set a@x.com`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cart, err := a.carts.SetProducts(cmd.Context(), args[0], append([]string{}, args[1:]...))
			if err != nil {
				return err
			}
			return a.print(cart)
		},
	})
	return cmd
}
