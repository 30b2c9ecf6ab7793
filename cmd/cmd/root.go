package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"newsmith/internal/config"
	"newsmith/internal/llm"
	"newsmith/internal/logger"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "newsmith",
	Short: "Newsmith synthesizes original articles from aggregated news sources.",
	Long: `Newsmith pulls news from feeds or caller-provided sources, enriches thin
content by extracting the full article text, and synthesizes an original
article in a chosen style using an LLM provider. It can also generate an
accompanying illustration through a fallback chain that never fails.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./newsmith.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Load .env file if it exists (for local development)
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if _, err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logger.SetLevel(config.GetLogging().Level)
}

// providerTemperature returns the sampling temperature configured for the
// selected provider.
func providerTemperature() float32 {
	ai := config.GetAI()
	if llm.ProviderType(ai.DefaultProvider) == llm.ProviderTypeOpenAI {
		return ai.OpenAI.Temperature
	}
	return ai.Gemini.Temperature
}

// buildProvider creates the configured text provider.
func buildProvider() (llm.Provider, error) {
	ai := config.GetAI()
	factory := llm.NewFactory()

	switch llm.ProviderType(ai.DefaultProvider) {
	case llm.ProviderTypeOpenAI:
		return factory.CreateProvider(llm.ProviderTypeOpenAI, map[string]string{
			"api_key":  ai.OpenAI.APIKey,
			"model":    ai.OpenAI.Model,
			"base_url": ai.OpenAI.BaseURL,
		})
	case llm.ProviderTypeMock:
		return factory.CreateProvider(llm.ProviderTypeMock, nil)
	default:
		return factory.CreateProvider(llm.ProviderTypeGemini, map[string]string{
			"api_key": ai.Gemini.APIKey,
			"model":   ai.Gemini.Model,
		})
	}
}
