package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gamma-omg/stock-api/internal/market"
	"github.com/gamma-omg/stock-api/internal/provider/csvfile"
	"github.com/spf13/cobra"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		period string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export SYMBOL",
		Short: "Write daily bars as CSV for the csv provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := market.ParsePeriod(period)
			if err != nil {
				return err
			}

			_, log, prov, err := opts.load()
			if err != nil {
				return err
			}

			symbol := strings.ToUpper(args[0])
			bars, err := prov.FetchHistory(cmd.Context(), symbol, p)
			if err != nil {
				return fmt.Errorf("failed to fetch %s: %w", symbol, err)
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}

			if err := csvfile.NewBarWriter(w).WriteAll(bars); err != nil {
				return err
			}

			log.Info("bars exported", slog.String("symbol", symbol), slog.Int("bars", len(bars)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&period, "period", "p", market.Period1y.String(), "history period")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output CSV path (default stdout)")
	return cmd
}
