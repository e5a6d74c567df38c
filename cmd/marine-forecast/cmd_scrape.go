package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

var scrapeJSON bool

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape the forecast page and print every slot",
	RunE:  runScrape,
}

func init() {
	scrapeCmd.Flags().BoolVar(&scrapeJSON, "json", false, "print the snapshot as JSON")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	p := newPipeline(cfg)
	if err := p.scheduler.RunOnce(cmd.Context()); err != nil {
		return err
	}

	snap, err := p.service.Current()
	if err != nil {
		return err
	}

	if scrapeJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	return writeObservations(cmd.OutOrStdout(), snap.Series, loc)
}
