package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"aptbill/client/internal/api"
	"aptbill/client/internal/state"
)

func newPaymentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Submit and review payments",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List payments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			st := state.NewPayments(a.payments)
			st.Load(runCtx())
			payments, ok := st.Payments().Value()
			if !ok {
				return errors.New(state.Message("load payments", st.Payments().Err()))
			}

			w := table()
			fmt.Fprintln(w, "ID\tAPARTMENT\tAMOUNT\tDATE\tSTATUS\tRECEIPT")
			for _, p := range payments {
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\t%s\n",
					p.ID, orDash(p.ApartmentNumber), p.Amount,
					p.PaymentDate.Format("2006-01-02"), p.Status, orDash(p.ReceiptPath))
			}
			return w.Flush()
		},
	})

	var debtID, amount, notes, receiptFile string

	submit := &cobra.Command{
		Use:   "submit",
		Short: "Submit a payment against a debt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			var receipt *api.Receipt
			if receiptFile != "" {
				f, err := os.Open(receiptFile)
				if err != nil {
					return fmt.Errorf("open receipt: %w", err)
				}
				defer f.Close()
				receipt = &api.Receipt{Filename: filepath.Base(receiptFile), Reader: f}
			}

			st := state.NewPayments(a.payments)
			if err := st.Submit(runCtx(), debtID, amount, optional(notes), receipt); err != nil {
				printNotice(st.Notice())
				return err
			}
			fmt.Println("payment submitted, awaiting approval")
			return nil
		},
	}
	submit.Flags().StringVar(&debtID, "debt", "", "debt id")
	submit.Flags().StringVar(&amount, "amount", "", "amount, e.g. 120.50")
	submit.Flags().StringVar(&notes, "notes", "", "notes for the approver")
	submit.Flags().StringVar(&receiptFile, "receipt", "", "path to a receipt image")
	_ = submit.MarkFlagRequired("debt")
	_ = submit.MarkFlagRequired("amount")
	cmd.AddCommand(submit)

	var decisionNotes string

	approve := &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a pending payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			st := state.NewPayments(a.payments)
			if err := st.Approve(runCtx(), args[0], optional(decisionNotes)); err != nil {
				printNotice(st.Notice())
				return err
			}
			fmt.Println("payment approved")
			return nil
		},
	}
	approve.Flags().StringVar(&decisionNotes, "notes", "", "decision notes")
	cmd.AddCommand(approve)

	reject := &cobra.Command{
		Use:   "reject <id>",
		Short: "Reject a pending payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			st := state.NewPayments(a.payments)
			if err := st.Reject(runCtx(), args[0], optional(decisionNotes)); err != nil {
				printNotice(st.Notice())
				return err
			}
			fmt.Println("payment rejected")
			return nil
		},
	}
	reject.Flags().StringVar(&decisionNotes, "notes", "", "decision notes")
	cmd.AddCommand(reject)

	var out string
	receipt := &cobra.Command{
		Use:   "receipt <receipt-path>",
		Short: "Download a payment receipt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			data, err := a.payments.DownloadReceipt(runCtx(), args[0])
			if err != nil {
				return errors.New(state.Message("download receipt", err))
			}

			dest := out
			if dest == "" {
				dest = filepath.Base(args[0])
			}
			if err := os.WriteFile(dest, data, 0o644); err != nil {
				return err
			}
			fmt.Printf("saved %s (%d bytes)\n", dest, len(data))
			return nil
		},
	}
	receipt.Flags().StringVarP(&out, "out", "o", "", "destination file")
	cmd.AddCommand(receipt)

	return cmd
}
