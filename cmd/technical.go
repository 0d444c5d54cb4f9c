package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gamma-omg/stock-api/internal/indicator"
	"github.com/gamma-omg/stock-api/internal/market"
	"github.com/guregu/null/v6"
	"github.com/spf13/cobra"
)

type technicalOutput struct {
	Symbol    string     `json:"symbol"`
	Price     float64    `json:"price"`
	SMA20     null.Float `json:"sma20"`
	SMA50     null.Float `json:"sma50"`
	RSI       float64    `json:"rsi"`
	RSIReason string     `json:"rsi_fallback_reason,omitempty"`
}

func newTechnicalCmd(opts *rootOptions) *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "technical SYMBOL",
		Short: "Print SMA20, SMA50 and RSI14 for a symbol",
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

			snap, err := indicator.Calculate(bars)
			if err != nil {
				return fmt.Errorf("failed to calculate indicators for %s: %w", symbol, err)
			}

			out := technicalOutput{
				Symbol: symbol,
				Price:  indicator.Round2(snap.Price),
				SMA20:  indicator.Round2Null(snap.SMA20),
				SMA50:  indicator.Round2Null(snap.SMA50),
				RSI:    indicator.Round2(snap.RSI),
			}
			if snap.RSIErr != nil {
				out.RSIReason = snap.RSIErr.Error()
				log.Debug("rsi fallback", slog.String("symbol", symbol), slog.String("reason", out.RSIReason))
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVarP(&period, "period", "p", market.Period3mo.String(), "history period")
	return cmd
}
