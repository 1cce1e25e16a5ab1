package cli

import (
	"fmt"

	"github.com/nomadkaraoke/kbputils/internal/kbp"
	"github.com/spf13/cobra"
)

var lyricsCmd = &cobra.Command{
	Use:   "lyrics [source.kbp]",
	Short: "Extract lyric text from a .kbp project",
	Long: `Extract a project's lyric text without any timing information.

To produce text that could be re-imported into KBS to restart sync, keep
empty lines and mark syllable breaks:

  kbputils lyrics song.kbp --include-empty --syllable-separator / --space-is-separator`,
	Args: cobra.ExactArgs(1),
	RunE: runLyrics,
}

func init() {
	rootCmd.AddCommand(lyricsCmd)

	lyricsCmd.Flags().
		String("page-separator", "", "Separator line placed between pages")
	lyricsCmd.Flags().
		Bool("include-empty", false, "Keep empty lines in the output")
	lyricsCmd.Flags().
		String("syllable-separator", "", "Marker inserted between syllables")
	lyricsCmd.Flags().
		Bool("space-is-separator", false, "Treat trailing spaces as syllable breaks")
}

func runLyrics(cmd *cobra.Command, args []string) error {
	sourcePath := args[0]

	pageSeparator, _ := cmd.Flags().GetString("page-separator")
	includeEmpty, _ := cmd.Flags().GetBool("include-empty")
	syllableSeparator, _ := cmd.Flags().GetString("syllable-separator")
	spaceIsSeparator, _ := cmd.Flags().GetBool("space-is-separator")

	file, err := kbp.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", sourcePath, err)
	}

	logger.Infow("Extracting lyrics",
		"source", sourcePath,
		"pages", len(file.Pages),
	)

	fmt.Println(file.Text(kbp.TextOptions{
		PageSeparator:     pageSeparator,
		IncludeEmpty:      includeEmpty,
		SyllableSeparator: syllableSeparator,
		SpaceIsSeparator:  spaceIsSeparator,
	}))

	return nil
}
