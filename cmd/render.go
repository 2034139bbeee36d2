package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/workdraw/pkg/viewer"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	renderOutput string
	renderMargin int
	renderNoGrid bool
)

var renderCmd = &cobra.Command{
	Use:   "render [script]",
	Short: "Replay a pointer script and save the sketch as PNG",
	Long:  "Replay a pointer-event script and draw the resulting worktops, measurements and connection markers into a PNG image.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file (default: script name with .png)")
	renderCmd.Flags().IntVar(&renderMargin, "margin", viewer.DefaultRasterOptions().Margin, "margin around the sketch in pixels")
	renderCmd.Flags().BoolVar(&renderNoGrid, "no-grid", false, "do not draw the grid")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) (err error) {
	path := args[0]
	_, session, err := replay(path)
	if err != nil {
		return err
	}

	output := renderOutput
	if output == "" {
		output = strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer closeFile(f, &err)

	opts := viewer.RasterOptions{Margin: renderMargin, Grid: !renderNoGrid}
	if err := viewer.WritePNG(f, session.Scene(), opts); err != nil {
		return err
	}

	log.Info().Str("file", output).Int("worktops", len(session.Worktops())).Msg("Sketch rendered")
	fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d worktops to %s\n", len(session.Worktops()), output)
	return nil
}
