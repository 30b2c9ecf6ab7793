package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"newsmith/internal/config"
	"newsmith/internal/core"
	"newsmith/internal/enrich"
	"newsmith/internal/extract"
	"newsmith/internal/imagegen"
	"newsmith/internal/logger"
	"newsmith/internal/sources"
	"newsmith/internal/synthesis"
)

var (
	synthTopic      string
	synthStyle      string
	synthTone       string
	synthLength     string
	synthCustom     string
	synthFeeds      []string
	synthSourceFile string
	synthImage      bool
	synthOutput     string
)

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize",
	Short: "Synthesize one article from feeds or a source file",
	Long: `Collects source articles from RSS/Atom feeds and/or a JSON file, enriches
them, and synthesizes a single original article. The result is written as
markdown to stdout or to --output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		raw, err := collectSources(ctx)
		if err != nil {
			return err
		}
		if len(raw) == 0 {
			return fmt.Errorf("no sources: provide --feed and/or --sources")
		}

		enrichCfg := config.GetEnrich()
		extractor := extract.NewExtractor(
			config.Duration(enrichCfg.FetchTimeout, 20*time.Second),
			enrichCfg.UserAgent,
		)
		enricher := enrich.NewEnricher(extractor, enrichCfg.MaxConcurrency)

		enriched := enricher.Enrich(ctx, raw)
		if len(enriched) == 0 {
			return fmt.Errorf("no usable sources after enrichment")
		}
		logger.Info("Sources ready", "raw", len(raw), "enriched", len(enriched))

		provider, err := buildProvider()
		if err != nil {
			return fmt.Errorf("creating text provider: %w", err)
		}

		orchestrator := synthesis.NewOrchestrator(provider, providerTemperature())
		article, err := orchestrator.Synthesize(ctx, core.SynthesisRequest{
			Topic:   synthTopic,
			Style:   core.ArticleStyle(synthStyle),
			Tone:    synthTone,
			Length:  core.ArticleLength(synthLength),
			Sources: enriched,
			Custom:  synthCustom,
		})
		if err != nil {
			return fmt.Errorf("synthesizing article: %w", err)
		}

		var img *core.AIImage
		if synthImage {
			images := config.GetImages()
			pipeline := imagegen.NewPipeline(imagegen.Config{
				OpenAIAPIKey:    images.OpenAIAPIKey,
				Model:           images.Model,
				PollinationsURL: images.PollinationsURL,
				PlaceholderURL:  images.PlaceholderURL,
				StageTimeout:    config.Duration(images.StageTimeout, 5*time.Second),
			})
			img, err = pipeline.GenerateForArticle(ctx, article.Title, article.Content, imagegen.Options{})
			if err != nil {
				logger.Warn("Image generation skipped", "error", err)
			}
		}

		markdown := renderMarkdown(article, img)
		if synthOutput == "" {
			fmt.Println(markdown)
			return nil
		}
		if err := os.WriteFile(synthOutput, []byte(markdown), 0644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		logger.Info("Article written", "path", synthOutput, "words", article.WordCount)
		return nil
	},
}

// collectSources gathers raw articles from the configured feeds and the
// optional JSON source file.
func collectSources(ctx context.Context) ([]core.RawSourceArticle, error) {
	var raw []core.RawSourceArticle

	if len(synthFeeds) > 0 {
		agg := sources.NewAggregator(config.GetFeeds().UserAgent).WithMaxItems(config.GetFeeds().MaxItemsPerFeed)
		raw = append(raw, agg.FetchAll(ctx, synthFeeds)...)
	}

	if synthSourceFile != "" {
		data, err := os.ReadFile(synthSourceFile)
		if err != nil {
			return nil, fmt.Errorf("reading source file: %w", err)
		}
		var fromFile []core.RawSourceArticle
		if err := json.Unmarshal(data, &fromFile); err != nil {
			return nil, fmt.Errorf("parsing source file: %w", err)
		}
		raw = append(raw, fromFile...)
	}

	return raw, nil
}

func renderMarkdown(article *core.SynthesizedArticle, img *core.AIImage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", article.Title)
	if img != nil {
		fmt.Fprintf(&b, "![%s](%s)\n\n", article.Title, img.URL)
	}
	b.WriteString(article.Content)
	b.WriteString("\n\n---\n")
	fmt.Fprintf(&b, "*%d words | %s style | generated with %s*\n",
		article.WordCount, article.Style, article.ModelUsed)
	return b.String()
}

func init() {
	rootCmd.AddCommand(synthesizeCmd)

	synthesizeCmd.Flags().StringVar(&synthTopic, "topic", "", "topic of the article to synthesize (required)")
	synthesizeCmd.Flags().StringVar(&synthStyle, "style", "", "writing style (academic, journalistic, blog, technical, creative, business, opinion)")
	synthesizeCmd.Flags().StringVar(&synthTone, "tone", "", "tone of voice")
	synthesizeCmd.Flags().StringVar(&synthLength, "length", "", "target length (short, medium, long)")
	synthesizeCmd.Flags().StringVar(&synthCustom, "instructions", "", "extra instructions for the writer")
	synthesizeCmd.Flags().StringSliceVar(&synthFeeds, "feed", nil, "RSS/Atom feed URL (repeatable)")
	synthesizeCmd.Flags().StringVar(&synthSourceFile, "sources", "", "JSON file with source articles")
	synthesizeCmd.Flags().BoolVar(&synthImage, "image", false, "generate an accompanying image")
	synthesizeCmd.Flags().StringVarP(&synthOutput, "output", "o", "", "write the article to this file instead of stdout")

	synthesizeCmd.MarkFlagRequired("topic")
}
