package main

import (
	"fmt"
	"os"

	"github.com/dom/pokedex-web/internal/config"
	"github.com/dom/pokedex-web/internal/pokeapi"
	"github.com/dom/pokedex-web/internal/repository/memory"
	"github.com/dom/pokedex-web/internal/service"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	baseURL string
)

var rootCmd = &cobra.Command{
	Use:   "pokedex",
	Short: "Look up Pokémon, evolution chains and generations from the terminal",
	Long: `pokedex runs the same lookups as the web pages against PokeAPI:
single Pokémon, their evolution chains, and whole generations loaded
in batches.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&baseURL, "api-url", "", "PokeAPI base URL (overrides config)")
}

// loadServices builds the service layer without a session store; the CLI
// never hands anything off.
func loadServices() (*service.Services, *config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if baseURL != "" {
		cfg.PokeAPIBaseURL = baseURL
	}

	client := pokeapi.NewClient(cfg.PokeAPIBaseURL, cfg.HTTPTimeout())
	return service.NewServices(memory.NewRepositories(), client, cfg), cfg, nil
}
