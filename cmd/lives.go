package cmd

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/s0up4200/apivideo/apivideo"
	"github.com/s0up4200/apivideo/filter"
)

var (
	// lives list flags
	liveSearch     apivideo.LiveSearchParams
	liveFilterExpr string

	// lives create/update flags
	liveName     string
	liveRecord   bool
	livePublic   bool
	livePlayerID string
)

// livesCmd represents the lives command
var livesCmd = &cobra.Command{
	Use:     "lives",
	Aliases: []string{"live", "live-streams"},
	Short:   "Manage live streams",
}

var livesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List live streams",
	Long: `List live streams, fetching every page unless --page is set. Results can be
narrowed with --filter, an expression over the live stream fields or the name
of a filter from the config file.`,
	Example: `  apivideo lives list --name "launch"
  apivideo lives list --filter 'broadcasting and containsFold(name, "launch")'`,
	Args: cobra.NoArgs,
	RunE: runLivesList,
}

var livesGetCmd = &cobra.Command{
	Use:   "get LIVE_STREAM_ID",
	Short: "Show a live stream",
	Args:  cobra.ExactArgs(1),
	RunE:  runLivesGet,
}

var livesCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a live stream",
	Args:  cobra.ExactArgs(1),
	RunE:  runLivesCreate,
}

var livesUpdateCmd = &cobra.Command{
	Use:   "update LIVE_STREAM_ID",
	Short: "Update a live stream",
	Long:  `Update a live stream. Only the flags that are given are sent.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runLivesUpdate,
}

var livesDeleteCmd = &cobra.Command{
	Use:   "delete LIVE_STREAM_ID...",
	Short: "Delete one or more live streams",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLivesDelete,
}

var livesUploadThumbnailCmd = &cobra.Command{
	Use:   "upload-thumbnail LIVE_STREAM_ID FILE",
	Short: "Upload a live stream thumbnail",
	Args:  cobra.ExactArgs(2),
	RunE:  runLivesUploadThumbnail,
}

var livesDeleteThumbnailCmd = &cobra.Command{
	Use:   "delete-thumbnail LIVE_STREAM_ID",
	Short: "Delete a live stream thumbnail",
	Args:  cobra.ExactArgs(1),
	RunE:  runLivesDeleteThumbnail,
}

func init() {
	livesListCmd.Flags().IntVar(&liveSearch.CurrentPage, "page", 0, "fetch only this page (default: all pages)")
	livesListCmd.Flags().IntVar(&liveSearch.PageSize, "page-size", 0, "items per page (default from config)")
	livesListCmd.Flags().StringVar(&liveSearch.Name, "name", "", "only live streams with this name")
	livesListCmd.Flags().StringVar(&liveSearch.StreamKey, "stream-key", "", "only the live stream with this stream key")
	livesListCmd.Flags().StringVar(&liveSearch.SortBy, "sort-by", "", "sort field (name, createdAt, updatedAt)")
	livesListCmd.Flags().StringVar(&liveSearch.SortOrder, "sort-order", "", "sort order (asc, desc)")
	livesListCmd.Flags().StringVarP(&liveFilterExpr, "filter", "f", "", "filter expression or configured filter name")

	for _, c := range []*cobra.Command{livesCreateCmd, livesUpdateCmd} {
		c.Flags().BoolVar(&liveRecord, "record", false, "record the live stream")
		c.Flags().BoolVar(&livePublic, "public", true, "make the live stream public")
		c.Flags().StringVar(&livePlayerID, "player-id", "", "player theme to use")
	}
	livesUpdateCmd.Flags().StringVar(&liveName, "name", "", "new name")

	livesCmd.AddCommand(livesListCmd)
	livesCmd.AddCommand(livesGetCmd)
	livesCmd.AddCommand(livesCreateCmd)
	livesCmd.AddCommand(livesUpdateCmd)
	livesCmd.AddCommand(livesDeleteCmd)
	livesCmd.AddCommand(livesUploadThumbnailCmd)
	livesCmd.AddCommand(livesDeleteThumbnailCmd)
}

func runLivesList(cmd *cobra.Command, args []string) error {
	f, err := compileFilter(liveFilterExpr, cfg.Filters)
	if err != nil {
		return err
	}

	params := liveSearch
	if params.PageSize == 0 {
		params.PageSize = cfg.Search.PageSize
	}

	logger.Debug().
		Int("page", params.CurrentPage).
		Int("page_size", params.PageSize).
		Str("filter", liveFilterExpr).
		Msg("Searching live streams")

	lives, err := client.Lives.Search(cmd.Context(), params)
	if err != nil {
		return fmt.Errorf("failed to list live streams: %w", err)
	}
	lives = slices.DeleteFunc(lives, func(l *apivideo.Live) bool { return l == nil })

	lives, err = filter.Apply(f, lives, (*apivideo.Live).Fields)
	if err != nil {
		return err
	}

	return renderList(cmd.OutOrStdout(), outputFormat, lives, printLiveRow)
}

func printLiveRow(w io.Writer, live *apivideo.Live) {
	fmt.Fprintf(w, "• %s  %s", live.LiveStreamID, live.Name)
	if live.Broadcasting {
		fmt.Fprintf(w, " [LIVE]")
	}
	if live.Record {
		fmt.Fprintf(w, " [REC]")
	}
	fmt.Fprintln(w)
	if live.Assets != nil && live.Assets.Player != "" {
		fmt.Fprintf(w, "  Player: %s\n", live.Assets.Player)
	}
}

func runLivesGet(cmd *cobra.Command, args []string) error {
	live, err := client.Lives.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get live stream %s: %w", args[0], err)
	}
	return renderLive(cmd, live)
}

func runLivesCreate(cmd *cobra.Command, args []string) error {
	live, err := client.Lives.Create(cmd.Context(), args[0], liveProperties(cmd))
	if err != nil {
		return fmt.Errorf("failed to create live stream: %w", err)
	}
	return renderLive(cmd, live)
}

func runLivesUpdate(cmd *cobra.Command, args []string) error {
	props := liveProperties(cmd)
	if cmd.Flags().Changed("name") {
		props.Name = liveName
	}

	live, err := client.Lives.Update(cmd.Context(), args[0], props)
	if err != nil {
		return fmt.Errorf("failed to update live stream %s: %w", args[0], err)
	}
	return renderLive(cmd, live)
}

func runLivesDelete(cmd *cobra.Command, args []string) error {
	result := client.Lives.BatchDelete(cmd.Context(), args)
	return printBatchResult(cmd.OutOrStdout(), "live stream", result)
}

func runLivesUploadThumbnail(cmd *cobra.Command, args []string) error {
	live, err := client.Lives.UploadThumbnail(cmd.Context(), args[1], args[0])
	if err != nil {
		return fmt.Errorf("failed to upload thumbnail: %w", err)
	}
	return renderLive(cmd, live)
}

func runLivesDeleteThumbnail(cmd *cobra.Command, args []string) error {
	live, err := client.Lives.DeleteThumbnail(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to delete thumbnail: %w", err)
	}
	return renderLive(cmd, live)
}

// liveProperties builds the request body from the flags that were set
func liveProperties(cmd *cobra.Command) apivideo.LiveProperties {
	var props apivideo.LiveProperties
	if cmd.Flags().Changed("record") {
		props.Record = apivideo.Bool(liveRecord)
	}
	if cmd.Flags().Changed("public") {
		props.Public = apivideo.Bool(livePublic)
	}
	if cmd.Flags().Changed("player-id") {
		props.PlayerID = apivideo.String(livePlayerID)
	}
	return props
}

func renderLive(cmd *cobra.Command, live *apivideo.Live) error {
	if live == nil {
		return fmt.Errorf("api.video returned an empty live stream")
	}
	return renderItem(cmd.OutOrStdout(), outputFormat, live)
}
