package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"aptbill/client/internal/api"
	"aptbill/client/internal/state"
)

func newMetricsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Payment metrics and history",
	}

	var start, end string
	summary := &cobra.Command{
		Use:   "summary",
		Short: "Aggregate payment metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			st := state.NewMetrics(a.payments)
			st.Load(runCtx(), api.MetricsFilter{
				StartDate: optional(start),
				EndDate:   optional(end),
			})
			m, ok := st.Metrics().Value()
			if !ok {
				return errors.New(state.Message("load metrics", st.Metrics().Err()))
			}

			fmt.Printf("payments:  %d (%.2f total)\n", m.TotalCount, m.TotalAmount)
			fmt.Printf("approved:  %d (%.2f)\n", m.ApprovedCount, m.ApprovedAmount)
			fmt.Printf("pending:   %d\n", m.PendingCount)
			fmt.Printf("rejected:  %d\n", m.RejectedCount)
			return nil
		},
	}
	summary.Flags().StringVar(&start, "start", "", "start date YYYY-MM-DD")
	summary.Flags().StringVar(&end, "end", "", "end date YYYY-MM-DD")
	cmd.AddCommand(summary)

	var apartmentID string
	var limit, offset int
	history := &cobra.Command{
		Use:   "history",
		Short: "Paged payment history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			st := state.NewMetrics(a.payments)
			st.LoadHistory(runCtx(), api.HistoryFilter{
				ApartmentID: optional(apartmentID),
				Limit:       limit,
				Offset:      offset,
			})
			payments, ok := st.History().Value()
			if !ok {
				return errors.New(state.Message("load history", st.History().Err()))
			}

			w := table()
			fmt.Fprintln(w, "ID\tAPARTMENT\tAMOUNT\tDATE\tSTATUS")
			for _, p := range payments {
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\n",
					p.ID, orDash(p.ApartmentNumber), p.Amount,
					p.PaymentDate.Format("2006-01-02"), p.Status)
			}
			return w.Flush()
		},
	}
	history.Flags().StringVar(&apartmentID, "apartment", "", "filter by apartment id")
	history.Flags().IntVar(&limit, "limit", 50, "page size")
	history.Flags().IntVar(&offset, "offset", 0, "page offset")
	cmd.AddCommand(history)

	return cmd
}
