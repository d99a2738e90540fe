package cmd

import (
	"fmt"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"github.com/s0up4200/apivideo/config"
)

// updateRepository is the GitHub repository releases are published to
const updateRepository = "s0up4200/apivideo"

var updateCheckOnly bool

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update apivideo to the latest release",
	Long:  `Check GitHub for the latest apivideo release and replace the running binary with it.`,
	Args:  cobra.NoArgs,

	// update works without credentials
	PersistentPreRunE: initializeUpdate,
	RunE:              runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&updateCheckOnly, "check", false, "only report whether an update is available")
}

func initializeUpdate(cmd *cobra.Command, args []string) error {
	if err := validateOutputFormat(outputFormat); err != nil {
		return err
	}
	logger = setupLogger(config.LoggingConfig{Level: "info", Format: "console", Color: true})
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	current, err := semver.ParseTolerant(version)
	if err != nil {
		return fmt.Errorf("cannot update a development build (version %q): %w", version, err)
	}

	ctx := cmd.Context()
	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(updateRepository))
	if err != nil {
		return fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", updateRepository)
	}

	if latest.LessOrEqual(current.String()) {
		fmt.Fprintf(out, "✓ apivideo %s is up to date\n", current)
		return nil
	}

	if updateCheckOnly {
		fmt.Fprintf(out, "Update available: %s -> %s\n", current, latest.Version())
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	logger.Info().
		Str("from", current.String()).
		Str("to", latest.Version()).
		Str("asset", latest.AssetName).
		Msg("Updating apivideo")

	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}

	fmt.Fprintf(out, "✓ Updated apivideo to %s\n", latest.Version())
	return nil
}
