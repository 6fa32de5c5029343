package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"aptbill/client/internal/state"
)

func newDebtsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debts",
		Short: "Manage debts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List debts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			st := state.NewDebts(a.debts)
			st.Load(runCtx())
			debts, ok := st.Debts().Value()
			if !ok {
				return errors.New(state.Message("load debts", st.Debts().Err()))
			}

			w := table()
			fmt.Fprintln(w, "ID\tAPARTMENT\tAMOUNT\tDUE\tSTATUS\tDESCRIPTION")
			for _, d := range debts {
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\t%s\n",
					d.ID, orDash(d.ApartmentNumber), d.Amount, orDash(d.DueDate), d.Status, orDash(d.Description))
			}
			return w.Flush()
		},
	})

	var apartmentID, amount, description, dueDate string

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a debt for an apartment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			st := state.NewDebts(a.debts)
			if err := st.Create(runCtx(), apartmentID, amount, optional(description), optional(dueDate)); err != nil {
				printNotice(st.Notice())
				return err
			}
			fmt.Println("debt created")
			return nil
		},
	}
	create.Flags().StringVar(&apartmentID, "apartment", "", "apartment id")
	create.Flags().StringVar(&amount, "amount", "", "amount, e.g. 120.50")
	create.Flags().StringVar(&description, "description", "", "description")
	create.Flags().StringVar(&dueDate, "due", "", "due date YYYY-MM-DD")
	_ = create.MarkFlagRequired("apartment")
	_ = create.MarkFlagRequired("amount")
	cmd.AddCommand(create)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a debt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			st := state.NewDebts(a.debts)
			if err := st.Update(runCtx(), args[0], apartmentID, amount, optional(description), optional(dueDate)); err != nil {
				printNotice(st.Notice())
				return err
			}
			fmt.Println("debt updated")
			return nil
		},
	}
	update.Flags().StringVar(&apartmentID, "apartment", "", "apartment id")
	update.Flags().StringVar(&amount, "amount", "", "amount")
	update.Flags().StringVar(&description, "description", "", "description")
	update.Flags().StringVar(&dueDate, "due", "", "due date YYYY-MM-DD")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a debt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			st := state.NewDebts(a.debts)
			st.Load(runCtx())
			if err := st.Delete(runCtx(), args[0]); err != nil {
				printNotice(st.Notice())
				return err
			}
			fmt.Println("debt deleted")
			return nil
		},
	})

	return cmd
}
