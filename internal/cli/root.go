package cli

import (
	"github.com/nomadkaraoke/kbputils/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "kbputils",
	Short: "Tools for Karaoke Builder Studio project files",
	Long: `kbputils reads Karaoke Builder Studio (.kbp) project files and converts
them to Advanced SubStation Alpha (.ass) subtitles with per-syllable
karaoke wipe timing, or extracts their lyric text.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}
