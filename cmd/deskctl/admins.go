package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/librarian/pkg/api"
)

func newAdminsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admins",
		Short: "Manage administrator accounts",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List administrators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			admins, err := a.client.ListAdmins(cmd.Context())
			if err != nil {
				return a.describe("list admins", err)
			}
			t := a.newTable("ID", "Name", "Email", "Superadmin")
			for _, ad := range admins {
				t.AppendRow([]any{ad.ID, ad.Name, ad.Email, yesNo(ad.IsSuperadmin)})
			}
			t.Render()
			return nil
		},
	}

	var create api.CreateAdminRequest
	add := &cobra.Command{
		Use:   "add",
		Short: "Create an administrator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, err := a.client.CreateAdmin(cmd.Context(), create)
			if err != nil {
				return a.describe("add admin", err)
			}
			fmt.Fprintf(a.out, "Added admin %d: %s\n", admin.ID, admin.Email)
			return nil
		},
	}
	add.Flags().StringVar(&create.Email, "email", "", "login email")
	add.Flags().StringVar(&create.Name, "name", "", "display name")
	add.Flags().StringVar(&create.Password, "password", "", "password (at least 8 characters)")

	var update api.UpdateAdminRequest
	upd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an administrator; omit --password to keep the current one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			update.ID = id
			admin, err := a.client.UpdateAdmin(cmd.Context(), update)
			if err != nil {
				return a.describe("update admin", err)
			}
			fmt.Fprintf(a.out, "Updated admin %d\n", admin.ID)
			return nil
		},
	}
	upd.Flags().StringVar(&update.Email, "email", "", "login email")
	upd.Flags().StringVar(&update.Name, "name", "", "display name")
	upd.Flags().StringVar(&update.Password, "password", "", "new password")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an administrator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.client.DeleteAdmin(cmd.Context(), id); err != nil {
				return a.describe("delete admin", err)
			}
			fmt.Fprintf(a.out, "Deleted admin %d\n", id)
			return nil
		},
	}

	cmd.AddCommand(list, add, upd, del)
	return cmd
}
