package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"aptbill/client/internal/state"
)

func newFloorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "floors",
		Short: "Manage floors",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List floors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			st := state.NewApartments(a.apartments)
			st.LoadFloors(runCtx())
			floors, ok := st.Floors().Value()
			if !ok {
				return errors.New(state.Message("load floors", st.Floors().Err()))
			}

			w := table()
			fmt.Fprintln(w, "ID\tFLOOR\tDESCRIPTION")
			for _, f := range floors {
				fmt.Fprintf(w, "%s\t%d\t%s\n", f.ID, f.FloorNumber, orDash(f.Description))
			}
			return w.Flush()
		},
	})

	var description string
	create := &cobra.Command{
		Use:   "create <floor-number>",
		Short: "Create a floor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			st := state.NewApartments(a.apartments)
			if err := st.CreateFloor(runCtx(), args[0], optional(description)); err != nil {
				printNotice(st.Notice())
				return err
			}
			fmt.Println("floor created")
			return nil
		},
	}
	create.Flags().StringVar(&description, "description", "", "floor description")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a floor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			st := state.NewApartments(a.apartments)
			st.LoadFloors(runCtx())
			if err := st.DeleteFloor(runCtx(), args[0]); err != nil {
				printNotice(st.Notice())
				return err
			}
			fmt.Println("floor deleted")
			return nil
		},
	})

	return cmd
}

func newApartmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apartments",
		Short: "Manage apartments",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List apartments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			st := state.NewApartments(a.apartments)
			st.Load(runCtx())
			apartments, ok := st.Apartments().Value()
			if !ok {
				return errors.New(state.Message("load apartments", st.Apartments().Err()))
			}

			w := table()
			fmt.Fprintln(w, "ID\tNUMBER\tMETER\tFLOOR")
			for _, apt := range apartments {
				floor := "-"
				if apt.FloorNumber != nil {
					floor = fmt.Sprintf("%d", *apt.FloorNumber)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", apt.ID, apt.ApartmentNumber, apt.MeterNumber, floor)
			}
			return w.Flush()
		},
	})

	var floorID, number, meter string

	create := &cobra.Command{
		Use:   "create",
		Short: "Create an apartment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			st := state.NewApartments(a.apartments)
			if err := st.Create(runCtx(), floorID, number, meter); err != nil {
				printNotice(st.Notice())
				return err
			}
			fmt.Println("apartment created")
			return nil
		},
	}
	create.Flags().StringVar(&floorID, "floor", "", "floor id")
	create.Flags().StringVar(&number, "number", "", "apartment number")
	create.Flags().StringVar(&meter, "meter", "", "meter number")
	_ = create.MarkFlagRequired("floor")
	_ = create.MarkFlagRequired("number")
	_ = create.MarkFlagRequired("meter")
	cmd.AddCommand(create)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an apartment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			st := state.NewApartments(a.apartments)
			if err := st.Update(runCtx(), args[0], floorID, number, meter); err != nil {
				printNotice(st.Notice())
				return err
			}
			fmt.Println("apartment updated")
			return nil
		},
	}
	update.Flags().StringVar(&floorID, "floor", "", "floor id")
	update.Flags().StringVar(&number, "number", "", "apartment number")
	update.Flags().StringVar(&meter, "meter", "", "meter number")
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an apartment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			st := state.NewApartments(a.apartments)
			st.Load(runCtx())
			if err := st.Delete(runCtx(), args[0]); err != nil {
				printNotice(st.Notice())
				return err
			}
			fmt.Println("apartment deleted")
			return nil
		},
	})

	return cmd
}
