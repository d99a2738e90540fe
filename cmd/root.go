package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/apivideo/apivideo"
	"github.com/s0up4200/apivideo/browser"
	"github.com/s0up4200/apivideo/config"
)

var (
	cfgFile      string
	sandbox      bool
	outputFormat string

	cfg    *config.Config
	logger zerolog.Logger
	client *apivideo.Client
	appFs  = afero.NewOsFs()

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "apivideo",
	Short: "Manage api.video live streams and players",
	Long: `apivideo is a CLI tool for the api.video REST API. It lists, creates,
updates and deletes live streams and player themes, and uploads live stream
thumbnails and player logos.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// SetVersion sets the version reported by the CLI and used by update
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = fmt.Sprintf("%s (built %s)", v, built)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&sandbox, "sandbox", false, "use the api.video sandbox environment")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", outputTable, "output format: table, json or yaml")

	// Add subcommands
	rootCmd.AddCommand(livesCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(updateCmd)
}

// initializeApp initializes the configuration and client
func initializeApp(cmd *cobra.Command, args []string) error {
	if err := validateOutputFormat(outputFormat); err != nil {
		return err
	}

	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Override environment from command line if specified
	if cmd.Flags().Changed("sandbox") && sandbox {
		if err := cfg.APIVideo.UseSandbox(); err != nil {
			return fmt.Errorf("--sandbox: %w", err)
		}
	}

	opts := append(cfg.APIVideo.BrowserOptions(),
		browser.WithFs(appFs),
		browser.WithUserAgent("apivideo-cli/"+version),
	)

	// Create api.video client
	client, err = apivideo.NewClient(cfg.APIVideo.APIKey, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create api.video client: %w", err)
	}

	logger.Debug().
		Str("endpoint", cfg.APIVideo.Endpoint()).
		Msg("api.video client ready")

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, colour only on a terminal
	fd := os.Stderr.Fd()
	color := cfg.Color && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to api.video",
	Long:  `Authenticate against api.video and display the number of live streams and players.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Testing connection to api.video at %s...\n", cfg.APIVideo.Endpoint())

	var (
		lives   []*apivideo.Live
		players []*apivideo.Player
	)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		var err error
		lives, err = client.Lives.Search(ctx, apivideo.LiveSearchParams{
			PageParams: apivideo.PageParams{PageSize: cfg.Search.PageSize},
		})
		if err != nil {
			return fmt.Errorf("failed to get live streams: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		players, err = client.Players.Search(ctx, apivideo.PlayerSearchParams{
			PageParams: apivideo.PageParams{PageSize: cfg.Search.PageSize},
		})
		if err != nil {
			return fmt.Errorf("failed to get players: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintln(out, "✓ Connection successful!")

	broadcasting := 0
	for _, live := range lives {
		if live != nil && live.Broadcasting {
			broadcasting++
		}
	}

	fmt.Fprintf(out, "\napi.video Statistics:\n")
	fmt.Fprintf(out, "- Environment: %s\n", cfg.APIVideo.Environment)
	fmt.Fprintf(out, "- Live streams: %d (%d broadcasting)\n", len(lives), broadcasting)
	fmt.Fprintf(out, "- Players: %d\n", len(players))

	if len(cfg.Filters) > 0 {
		fmt.Fprintf(out, "\nConfigured filters:\n")
		for name, expression := range cfg.Filters {
			fmt.Fprintf(out, "  • %s: %s\n", name, expression)
		}
	}

	return nil
}
