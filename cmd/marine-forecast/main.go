package main

import (
	"context"
	"net/http"
	"os"
	_ "time/tzdata"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/i474232898/marine-forecast/internal/config"
	"github.com/i474232898/marine-forecast/internal/scheduler"
	"github.com/i474232898/marine-forecast/internal/store"
	"github.com/i474232898/marine-forecast/internal/weather"
	"github.com/i474232898/marine-forecast/internal/weather/providers"
)

var (
	configPath string
	cfg        *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "marine-forecast",
	Short: "Marine forecast scraper and query service",
	Long: `marine-forecast scrapes a wind and wave forecast page, keeps the latest
forecast in memory and answers which forecast slot applies at a given time.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = "config.yaml"
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultPath, "path to an optional YAML config file")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	c.InitializeLogging()
	cfg = c
	return nil
}

// pipeline bundles the forecast service with the scheduler driving it.
type pipeline struct {
	service   *weather.Service
	scheduler *scheduler.Scheduler
}

func newPipeline(c *config.AppConfig) *pipeline {
	// Shared HTTP client for page fetches.
	httpClient := &http.Client{
		Timeout: c.Forecast.FetchTimeout,
	}

	fetcher := providers.NewHTTPFetcher(httpClient, c.Forecast.UserAgent)
	source := providers.NewWindfinderProvider(fetcher, c.Forecast.URL)

	service := weather.NewService(store.NewMemoryStore(), source, weather.PlaceholderClassifier)
	sched := scheduler.New(service, scheduler.Options{
		Interval: c.Refresh.Interval,
		Cron:     c.Refresh.Cron,
		Timeout:  c.Forecast.FetchTimeout,
	})

	log.Debug().Str("url", c.Forecast.URL).Str("source", source.Name()).Msg("pipeline configured")
	return &pipeline{service: service, scheduler: sched}
}
