package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"aptbill/client/internal/api"
	"aptbill/client/internal/models"
	"aptbill/client/internal/state"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts (admin)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			st := state.NewUsers(a.users)
			st.Load(runCtx())
			users, ok := st.Users().Value()
			if !ok {
				return errors.New(state.Message("load users", st.Users().Err()))
			}

			w := table()
			fmt.Fprintln(w, "ID\tUSERNAME\tROLE\tAPARTMENT")
			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Role, orDash(u.ApartmentID))
			}
			return w.Flush()
		},
	})

	var password, role, apartmentID string

	create := &cobra.Command{
		Use:   "create <username>",
		Short: "Create a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			st := state.NewUsers(a.users)
			err = st.Create(runCtx(), api.CreateUserInput{
				Username:    args[0],
				Password:    password,
				Role:        models.Role(role),
				ApartmentID: optional(apartmentID),
			})
			if err != nil {
				printNotice(st.Notice())
				return err
			}
			fmt.Println("user created")
			return nil
		},
	}
	create.Flags().StringVarP(&password, "password", "p", "", "account password")
	create.Flags().StringVar(&role, "role", "user", "role: admin, house_admin or user")
	create.Flags().StringVar(&apartmentID, "apartment", "", "apartment id for tenants")
	_ = create.MarkFlagRequired("password")
	cmd.AddCommand(create)

	update := &cobra.Command{
		Use:   "update <id> <username>",
		Short: "Update a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			st := state.NewUsers(a.users)
			err = st.Update(runCtx(), args[0], api.UpdateUserInput{
				Username:    args[1],
				Password:    optional(password),
				Role:        models.Role(role),
				ApartmentID: optional(apartmentID),
			})
			if err != nil {
				printNotice(st.Notice())
				return err
			}
			fmt.Println("user updated")
			return nil
		},
	}
	update.Flags().StringVarP(&password, "password", "p", "", "new password (optional)")
	update.Flags().StringVar(&role, "role", "user", "role")
	update.Flags().StringVar(&apartmentID, "apartment", "", "apartment id")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			st := state.NewUsers(a.users)
			st.Load(runCtx())
			if err := st.Delete(runCtx(), args[0]); err != nil {
				printNotice(st.Notice())
				return err
			}
			fmt.Println("user deleted")
			return nil
		},
	})

	return cmd
}

func newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the current user's profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			st := state.NewUsers(a.users)
			st.LoadProfile(runCtx())
			p, ok := st.Profile().Value()
			if !ok {
				return errors.New(state.Message("load profile", st.Profile().Err()))
			}

			fmt.Printf("username:  %s\n", p.Username)
			fmt.Printf("role:      %s\n", p.Role)
			fmt.Printf("apartment: %s\n", orDash(p.ApartmentNumber))
			fmt.Printf("house:     %s\n", orDash(p.HouseName))
			return nil
		},
	}
}
