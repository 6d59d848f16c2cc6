package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cafecritique/review-api/internal/pkg/config"
	"github.com/cafecritique/review-api/pkg/logger"
)

const serviceName = "cafecritique"

var (
	// Global flags
	envFile string
	version = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cafecritique",
	Short: "Cafe Critique - restaurant review API",
	Long: `Cafe Critique serves the restaurant review REST API.

Configuration is read from the environment; an optional .env file is loaded first.

Commands:
  serve    - Run the HTTP API
  migrate  - Create the MongoDB indexes`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file loaded before reading the environment")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// bootstrap loads the dotenv file, reads the configuration and initialises
// the logger. Variables already set in the environment win over the file.
func bootstrap() (*config.Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := config.Load()
	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
		Version: version,
	})
	return cfg, nil
}
