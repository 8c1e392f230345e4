package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/maturity/internal/seed"
)

func seedCmd() *cobra.Command {
	var (
		baseURL string
		cfg     seed.Config
	)

	c := &cobra.Command{
		Use:   "seed",
		Short: "Record generated assessments against a running server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := setup()
			if err != nil {
				return err
			}
			cfg.BaseURL = baseURL
			if cfg.BaseURL == "" {
				cfg.BaseURL = localURL(conf.Addr)
			}

			stats, err := seed.Run(cmd.Context(), cfg)
			if stats != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "submitted %d, recorded %d, failed %d, last score %.2f\n",
					stats.Submitted, stats.Successful, stats.Failed, stats.LastScore)
			}
			return err
		},
	}
	c.Flags().StringVar(&baseURL, "url", "", "Server base URL (default derived from addr)")
	c.Flags().IntVarP(&cfg.Count, "count", "n", 5, "Number of assessments to record")
	c.Flags().Uint64Var(&cfg.Seed, "seed", 0, "Random seed (0 = time based)")
	c.Flags().DurationVar(&cfg.Timeout, "timeout", 30*time.Second, "HTTP request timeout")
	return c
}

// localURL turns a listen address such as ":9080" into a loopback URL.
func localURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
