package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/s0up4200/apivideo/apivideo"
	"github.com/s0up4200/apivideo/filter"
)

var (
	// players list flags
	playerSearch     apivideo.PlayerSearchParams
	playerFilterExpr string

	// players create/update flags
	playerPropertiesFile string
	playerLogoLink       string
)

type (
	playerStringFlag struct {
		name  string
		usage string
		field func(p *apivideo.PlayerProperties) **string
	}

	playerIntFlag struct {
		name  string
		usage string
		field func(p *apivideo.PlayerProperties) **int
	}

	playerBoolFlag struct {
		name  string
		usage string
		field func(p *apivideo.PlayerProperties) **bool
	}
)

var playerStringFlags = []playerStringFlag{
	{"shape-aspect", "shape of the controls (flat, ...)", func(p *apivideo.PlayerProperties) **string { return &p.ShapeAspect }},
	{"shape-background-top", "controls background top colour", func(p *apivideo.PlayerProperties) **string { return &p.ShapeBackgroundTop }},
	{"shape-background-bottom", "controls background bottom colour", func(p *apivideo.PlayerProperties) **string { return &p.ShapeBackgroundBottom }},
	{"text", "text colour", func(p *apivideo.PlayerProperties) **string { return &p.Text }},
	{"link", "link colour", func(p *apivideo.PlayerProperties) **string { return &p.Link }},
	{"link-hover", "link hover colour", func(p *apivideo.PlayerProperties) **string { return &p.LinkHover }},
	{"link-active", "link active colour", func(p *apivideo.PlayerProperties) **string { return &p.LinkActive }},
	{"track-played", "played track colour", func(p *apivideo.PlayerProperties) **string { return &p.TrackPlayed }},
	{"track-unplayed", "unplayed track colour", func(p *apivideo.PlayerProperties) **string { return &p.TrackUnplayed }},
	{"track-background", "track background colour", func(p *apivideo.PlayerProperties) **string { return &p.TrackBackground }},
	{"background-top", "background top colour", func(p *apivideo.PlayerProperties) **string { return &p.BackgroundTop }},
	{"background-bottom", "background bottom colour", func(p *apivideo.PlayerProperties) **string { return &p.BackgroundBottom }},
	{"background-text", "background text colour", func(p *apivideo.PlayerProperties) **string { return &p.BackgroundText }},
}

var playerIntFlags = []playerIntFlag{
	{"shape-margin", "controls margin in pixels", func(p *apivideo.PlayerProperties) **int { return &p.ShapeMargin }},
	{"shape-radius", "controls corner radius in pixels", func(p *apivideo.PlayerProperties) **int { return &p.ShapeRadius }},
}

var playerBoolFlags = []playerBoolFlag{
	{"enable-api", "allow the player API", func(p *apivideo.PlayerProperties) **bool { return &p.EnableAPI }},
	{"enable-controls", "show the player controls", func(p *apivideo.PlayerProperties) **bool { return &p.EnableControls }},
	{"force-autoplay", "start playback automatically", func(p *apivideo.PlayerProperties) **bool { return &p.ForceAutoplay }},
	{"hide-title", "hide the video title", func(p *apivideo.PlayerProperties) **bool { return &p.HideTitle }},
	{"force-loop", "loop playback", func(p *apivideo.PlayerProperties) **bool { return &p.ForceLoop }},
}

// playersCmd represents the players command
var playersCmd = &cobra.Command{
	Use:     "players",
	Aliases: []string{"player"},
	Short:   "Manage player themes",
}

var playersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List player themes",
	Long: `List player themes, fetching every page unless --page is set. Results can be
narrowed with --filter, an expression over the player fields or the name of a
filter from the config file.`,
	Example: `  apivideo players list --filter 'forceAutoplay or hideTitle'`,
	Args:    cobra.NoArgs,
	RunE:    runPlayersList,
}

var playersGetCmd = &cobra.Command{
	Use:   "get PLAYER_ID",
	Short: "Show a player theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlayersGet,
}

var playersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a player theme",
	Long: `Create a player theme from a properties file and/or flags. Flags override
values from the file.`,
	Example: `  apivideo players create --properties theme.yaml --hide-title`,
	Args:    cobra.NoArgs,
	RunE:    runPlayersCreate,
}

var playersUpdateCmd = &cobra.Command{
	Use:   "update PLAYER_ID",
	Short: "Update a player theme",
	Long:  `Update a player theme. Only the properties that are given are sent.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPlayersUpdate,
}

var playersDeleteCmd = &cobra.Command{
	Use:   "delete PLAYER_ID...",
	Short: "Delete one or more player themes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlayersDelete,
}

var playersUploadLogoCmd = &cobra.Command{
	Use:   "upload-logo PLAYER_ID FILE",
	Short: "Upload a player logo",
	Args:  cobra.ExactArgs(2),
	RunE:  runPlayersUploadLogo,
}

var playersDeleteLogoCmd = &cobra.Command{
	Use:   "delete-logo PLAYER_ID",
	Short: "Delete a player logo",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlayersDeleteLogo,
}

func init() {
	playersListCmd.Flags().IntVar(&playerSearch.CurrentPage, "page", 0, "fetch only this page (default: all pages)")
	playersListCmd.Flags().IntVar(&playerSearch.PageSize, "page-size", 0, "items per page (default from config)")
	playersListCmd.Flags().StringVar(&playerSearch.SortBy, "sort-by", "", "sort field (createdAt, updatedAt)")
	playersListCmd.Flags().StringVar(&playerSearch.SortOrder, "sort-order", "", "sort order (asc, desc)")
	playersListCmd.Flags().StringVarP(&playerFilterExpr, "filter", "f", "", "filter expression or configured filter name")

	for _, c := range []*cobra.Command{playersCreateCmd, playersUpdateCmd} {
		c.Flags().StringVar(&playerPropertiesFile, "properties", "", "YAML or JSON file with player properties")
		for _, f := range playerStringFlags {
			c.Flags().String(f.name, "", f.usage)
		}
		for _, f := range playerIntFlags {
			c.Flags().Int(f.name, 0, f.usage)
		}
		for _, f := range playerBoolFlags {
			c.Flags().Bool(f.name, false, f.usage)
		}
	}

	playersUploadLogoCmd.Flags().StringVar(&playerLogoLink, "link", "", "URL opened when the logo is clicked")

	playersCmd.AddCommand(playersListCmd)
	playersCmd.AddCommand(playersGetCmd)
	playersCmd.AddCommand(playersCreateCmd)
	playersCmd.AddCommand(playersUpdateCmd)
	playersCmd.AddCommand(playersDeleteCmd)
	playersCmd.AddCommand(playersUploadLogoCmd)
	playersCmd.AddCommand(playersDeleteLogoCmd)
}

func runPlayersList(cmd *cobra.Command, args []string) error {
	f, err := compileFilter(playerFilterExpr, cfg.Filters)
	if err != nil {
		return err
	}

	params := playerSearch
	if params.PageSize == 0 {
		params.PageSize = cfg.Search.PageSize
	}

	players, err := client.Players.Search(cmd.Context(), params)
	if err != nil {
		return fmt.Errorf("failed to list players: %w", err)
	}
	players = slices.DeleteFunc(players, func(p *apivideo.Player) bool { return p == nil })

	players, err = filter.Apply(f, players, (*apivideo.Player).Fields)
	if err != nil {
		return err
	}

	return renderList(cmd.OutOrStdout(), outputFormat, players, printPlayerRow)
}

func printPlayerRow(w io.Writer, player *apivideo.Player) {
	fmt.Fprintf(w, "• %s", player.PlayerID)
	if player.ForceAutoplay {
		fmt.Fprintf(w, " [AUTOPLAY]")
	}
	if player.ForceLoop {
		fmt.Fprintf(w, " [LOOP]")
	}
	if player.HideTitle {
		fmt.Fprintf(w, " [NO TITLE]")
	}
	fmt.Fprintln(w)
	if player.Logo != nil && player.Logo.Logo != "" {
		fmt.Fprintf(w, "  Logo: %s\n", player.Logo.Logo)
	}
}

func runPlayersGet(cmd *cobra.Command, args []string) error {
	player, err := client.Players.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get player %s: %w", args[0], err)
	}
	return renderPlayer(cmd, player)
}

func runPlayersCreate(cmd *cobra.Command, args []string) error {
	props, err := playerProperties(cmd)
	if err != nil {
		return err
	}

	player, err := client.Players.Create(cmd.Context(), props)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	return renderPlayer(cmd, player)
}

func runPlayersUpdate(cmd *cobra.Command, args []string) error {
	props, err := playerProperties(cmd)
	if err != nil {
		return err
	}

	player, err := client.Players.Update(cmd.Context(), args[0], props)
	if err != nil {
		return fmt.Errorf("failed to update player %s: %w", args[0], err)
	}
	return renderPlayer(cmd, player)
}

func runPlayersDelete(cmd *cobra.Command, args []string) error {
	result := client.Players.BatchDelete(cmd.Context(), args)
	return printBatchResult(cmd.OutOrStdout(), "player", result)
}

func runPlayersUploadLogo(cmd *cobra.Command, args []string) error {
	player, err := client.Players.UploadLogo(cmd.Context(), args[1], args[0], playerLogoLink)
	if err != nil {
		return fmt.Errorf("failed to upload logo: %w", err)
	}
	return renderPlayer(cmd, player)
}

func runPlayersDeleteLogo(cmd *cobra.Command, args []string) error {
	status, err := client.Players.DeleteLogo(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to delete logo: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted logo of player %s (status %d)\n", args[0], status)
	return nil
}

// playerProperties merges the properties file with the flags that were set
func playerProperties(cmd *cobra.Command) (apivideo.PlayerProperties, error) {
	var props apivideo.PlayerProperties
	if playerPropertiesFile != "" {
		var err error
		props, err = loadPlayerProperties(appFs, playerPropertiesFile)
		if err != nil {
			return props, err
		}
	}

	flags := cmd.Flags()
	for _, f := range playerStringFlags {
		if flags.Changed(f.name) {
			v, _ := flags.GetString(f.name)
			*f.field(&props) = &v
		}
	}
	for _, f := range playerIntFlags {
		if flags.Changed(f.name) {
			v, _ := flags.GetInt(f.name)
			*f.field(&props) = &v
		}
	}
	for _, f := range playerBoolFlags {
		if flags.Changed(f.name) {
			v, _ := flags.GetBool(f.name)
			*f.field(&props) = &v
		}
	}

	return props, nil
}

// loadPlayerProperties decodes a YAML (or JSON) properties file, rejecting
// unknown keys
func loadPlayerProperties(fs afero.Fs, path string) (apivideo.PlayerProperties, error) {
	var props apivideo.PlayerProperties

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return props, fmt.Errorf("failed to read properties file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&props); err != nil && !errors.Is(err, io.EOF) {
		return props, fmt.Errorf("failed to parse properties file %s: %w", path, err)
	}
	return props, nil
}

func renderPlayer(cmd *cobra.Command, player *apivideo.Player) error {
	if player == nil {
		return fmt.Errorf("api.video returned an empty player")
	}
	return renderItem(cmd.OutOrStdout(), outputFormat, player)
}
