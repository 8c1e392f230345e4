package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/okian/maturity/internal/adapters/suggest"
	"github.com/okian/maturity/internal/domain/framework"
	"github.com/okian/maturity/internal/domain/model"
)

func frameworkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "framework",
		Short: "Print the current framework as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			svc, err := newService(cmd.Context(), cfg, suggest.Placeholder{})
			if err != nil {
				return err
			}
			defer svc.Stop()

			dims, err := svc.Framework()
			if err != nil {
				return err
			}
			b, err := framework.Marshal(dims)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}

func historyCmd() *cobra.Command {
	var limit int

	c := &cobra.Command{
		Use:   "history",
		Short: "Print recorded assessment scores, oldest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			svc, err := newService(cmd.Context(), cfg, suggest.Placeholder{})
			if err != nil {
				return err
			}
			defer svc.Stop()

			points, err := svc.History(limit)
			if err != nil {
				return err
			}
			return printHistory(cmd.OutOrStdout(), points)
		},
	}
	c.Flags().IntVarP(&limit, "limit", "n", 0, "Show only the most recent N points (0 = all)")
	return c
}

func printHistory(w io.Writer, points []model.HistoryPoint) error {
	if len(points) == 0 {
		_, err := fmt.Fprintln(w, "no assessments recorded")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tDATE\tSCORE")
	for i, p := range points {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\n", i+1, p.Date, p.Score)
	}
	return tw.Flush()
}
