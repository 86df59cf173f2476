// Command invasion evaluates a closed-form model of inbreeding tolerance
// under parental care and renders its figures: standalone pages, a composed
// HTML report, CSV exports and a local dashboard.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/tomkeaney/inbreeding-parental-care/internal/config"
	"github.com/tomkeaney/inbreeding-parental-care/internal/figures"
	"github.com/tomkeaney/inbreeding-parental-care/internal/version"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// cfg holds the loaded configuration; commands read their defaults
	// from it. An empty config falls back to built-in defaults.
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "invasion",
	Short: "Inbreeding invasion model: figures, reports and data exports",
	Long: `invasion works with a closed-form model of inbreeding under parental care:
when does mating with a relative pay off despite inbreeding depression,
how does parental care shift that threshold, and when should a male care
for the brood at the cost of outside mating opportunities.

Subcommands render the curated figures as interactive HTML and PNG,
compose the full report, export the underlying parameter grids as CSV,
and serve a local dashboard with live figures and the run history.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initLogger()
		return loadConfig()
	},
}

// versionCmd prints the build metadata baked in at link time.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}

func initLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
		}),
	))
}

func loadConfig() error {
	if configPath == "" {
		cfg = config.Empty()
		return nil
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = loaded
	slog.Debug("loaded config", "path", configPath)
	return nil
}

// selectFigures resolves figure-name arguments into definitions. No
// arguments selects all curated figures.
func selectFigures(args []string) ([]figures.Definition, error) {
	if len(args) == 0 {
		return figures.All(), nil
	}

	defs := make([]figures.Definition, 0, len(args))
	for _, name := range args {
		def, err := figures.ByName(name)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")

	// Add commands to root
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
