package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/librarian/pkg/api"
)

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage borrowers",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List borrowers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := a.client.ListUsers(cmd.Context())
			if err != nil {
				return a.describe("list users", err)
			}
			t := a.newTable("ID", "Name", "Email", "Phone")
			for _, u := range users {
				t.AppendRow([]any{u.ID, u.Name, u.Email, u.Phone})
			}
			t.Render()
			return nil
		},
	}

	var req api.CreateUserRequest
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a borrower",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.client.CreateUser(cmd.Context(), req)
			if err != nil {
				return a.describe("add user", err)
			}
			fmt.Fprintf(a.out, "Added user %d: %s\n", user.ID, user.Name)
			return nil
		},
	}
	add.Flags().StringVar(&req.Name, "name", "", "full name")
	add.Flags().StringVar(&req.Email, "email", "", "email address")
	add.Flags().StringVar(&req.Phone, "phone", "", "phone number")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a borrower and their loan history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.client.DeleteUser(cmd.Context(), id); err != nil {
				return a.describe("delete user", err)
			}
			fmt.Fprintf(a.out, "Deleted user %d\n", id)
			return nil
		},
	}

	cmd.AddCommand(list, add, del)
	return cmd
}
