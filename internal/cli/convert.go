package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nomadkaraoke/kbputils/internal/convert"
	"github.com/nomadkaraoke/kbputils/internal/kbp"
	"github.com/nomadkaraoke/kbputils/internal/kbpfont"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var convertCmd = &cobra.Command{
	Use:   "convert [source.kbp] [dest.ass]",
	Short: "Convert a .kbp project to an .ass subtitle file",
	Long: `Convert a Karaoke Builder Studio project into an Advanced SubStation Alpha
subtitle document carrying per-syllable karaoke wipe timing.

When no destination is given, the document is written to standard output.

Examples:
  kbputils convert song.kbp
  kbputils convert song.kbp song.ass
  kbputils convert song.kbp song.ass --fade-in 0 --fade-out 0
  kbputils convert song.kbp --offset 25`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		Int("fade-in", 300, "Fade-in applied to each line, in milliseconds")
	convertCmd.Flags().
		Int("fade-out", 200, "Fade-out applied to each line, in milliseconds")
	convertCmd.Flags().
		Bool("transparency", true, "Keep the background transparent")
	convertCmd.Flags().
		String("offset", "true", "Timing offset: true, false, or an integer (reserved)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	sourcePath := args[0]

	fadeIn, _ := cmd.Flags().GetInt("fade-in")
	fadeOut, _ := cmd.Flags().GetInt("fade-out")
	transparency, _ := cmd.Flags().GetBool("transparency")
	offsetStr, _ := cmd.Flags().GetString("offset")

	offset, err := convert.ParseOffset(offsetStr)
	if err != nil {
		return err
	}

	opts := convert.Options{
		FadeIn:       fadeIn,
		FadeOut:      fadeOut,
		Transparency: transparency,
		Offset:       offset,
	}

	logger.Infow("Converting KBP project",
		"source", sourcePath,
		"fade_in", fadeIn,
		"fade_out", fadeOut,
	)

	file, err := kbp.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", sourcePath, err)
	}
	warnUnknownFonts(file)

	doc, err := convert.New(file, opts).Document()
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if len(args) < 2 {
		return doc.Write(os.Stdout)
	}

	destPath := args[1]
	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", destPath, err)
	}
	defer func() {
		_ = out.Close()
	}()

	// Downstream karaoke tools expect UTF-8 with a BOM.
	writer := transform.NewWriter(out, unicode.UTF8BOM.NewEncoder())
	if err := doc.Write(writer); err != nil {
		return fmt.Errorf("failed to write %s: %w", destPath, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", destPath, err)
	}

	absDest, _ := filepath.Abs(destPath)
	logger.Infow("Wrote ASS document",
		"dest", absDest,
		"pages", len(file.Pages),
		"events", len(doc.Events),
		"styles", len(doc.Styles),
	)

	return nil
}

// warnUnknownFonts reports, once per font, style fonts with no spacing hint
// in the metrics table.
func warnUnknownFonts(file *kbp.File) {
	warned := make(map[string]bool)
	for _, key := range file.Styles.Keys() {
		if key < 0 {
			continue
		}
		style, err := file.Styles.Get(key)
		if err != nil {
			continue
		}
		bold := strings.ContainsRune(style.FontStyle, 'B')
		if _, known := kbpfont.Spacing(style.FontName, style.FontSize, bold); !known {
			desc := fmt.Sprintf("%s/%d/bold=%t", style.FontName, style.FontSize, bold)
			if !warned[desc] {
				warned[desc] = true
				logger.Warnw("Font metrics unknown, using default spacing",
					"font", style.FontName,
					"size", style.FontSize,
					"bold", bold,
					"default", kbpfont.DefaultSpacing,
				)
			}
		}
	}
}
