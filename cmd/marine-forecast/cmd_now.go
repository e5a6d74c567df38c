package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/i474232898/marine-forecast/internal/store"
	"github.com/i474232898/marine-forecast/internal/weather"
)

var nowAt string

var nowCmd = &cobra.Command{
	Use:   "now",
	Short: "Print the forecast slot that applies now",
	Long: `Scrape the forecast once and print the slot applicable now (or at --at)
in the configured time zone.`,
	RunE: runNow,
}

func init() {
	nowCmd.Flags().StringVar(&nowAt, "at", "", "query time in RFC 3339 instead of now")
	rootCmd.AddCommand(nowCmd)
}

func runNow(cmd *cobra.Command, args []string) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	at := time.Now().In(loc)
	if nowAt != "" {
		parsed, err := time.Parse(time.RFC3339, nowAt)
		if err != nil {
			return fmt.Errorf("invalid --at: %w", err)
		}
		at = parsed.In(loc)
	}

	p := newPipeline(cfg)
	if err := p.scheduler.RunOnce(cmd.Context()); err != nil {
		return err
	}

	lookup, err := p.service.ForTime(at)
	if errors.Is(err, store.ErrNoSlot) {
		fmt.Fprintln(cmd.OutOrStdout(), "no forecast slot available")
		return nil
	}
	if err != nil {
		return err
	}
	if lookup.Fallback {
		log.Warn().Time("at", at).Msg("no slot within the forecast window; showing the earliest slot")
	}

	return writeObservations(cmd.OutOrStdout(), []weather.Observation{lookup.Observation}, loc)
}
