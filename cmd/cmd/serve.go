package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"newsmith/internal/config"
	"newsmith/internal/enrich"
	"newsmith/internal/extract"
	"newsmith/internal/imagegen"
	"newsmith/internal/logger"
	"newsmith/internal/server"
	"newsmith/internal/sources"
	"newsmith/internal/synthesis"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := buildProvider()
		if err != nil {
			return fmt.Errorf("creating text provider: %w", err)
		}

		images := config.GetImages()
		pipeline := imagegen.NewPipeline(imagegen.Config{
			OpenAIAPIKey:    images.OpenAIAPIKey,
			Model:           images.Model,
			PollinationsURL: images.PollinationsURL,
			PlaceholderURL:  images.PlaceholderURL,
			StageTimeout:    config.Duration(images.StageTimeout, 5*time.Second),
		})

		enrichCfg := config.GetEnrich()
		extractor := extract.NewExtractor(
			config.Duration(enrichCfg.FetchTimeout, 20*time.Second),
			enrichCfg.UserAgent,
		)

		srv := server.New(config.GetServer(), server.Deps{
			Enricher:    enrich.NewEnricher(extractor, enrichCfg.MaxConcurrency),
			Synthesizer: synthesis.NewOrchestrator(provider, providerTemperature()),
			Images:      pipeline,
			Aggregator:  sources.NewAggregator(config.GetFeeds().UserAgent).WithMaxItems(config.GetFeeds().MaxItemsPerFeed),
		})

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-quit:
			logger.Info("Received shutdown signal", "signal", sig.String())
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
