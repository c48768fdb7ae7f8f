package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type userView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Cart  string `json:"cart,omitempty"`
}

func newUserCmd(a *admin) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Inspect users",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show <email>",
		Short: "Print a user's account (never the password hash or token)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.store.Users.FindByEmail(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if u == nil {
				return fmt.Errorf("user %s not found", args[0])
			}
			return a.print(userView{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role), Cart: u.CartID})
		},
	})
	return cmd
}
