package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/workdraw/pkg/stl"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	exportOutput    string
	exportThickness float64
	exportASCII     bool
)

var exportCmd = &cobra.Command{
	Use:   "export [script]",
	Short: "Replay a pointer script and export the worktops as an STL model",
	Long: `Replay a pointer-event script and write every worktop as a solid slab in
millimetres, for a 3D preview of the cut pieces in any STL viewer.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: script name with .stl)")
	exportCmd.Flags().Float64Var(&exportThickness, "thickness", stl.DefaultThickness, "worktop thickness in millimetres")
	exportCmd.Flags().BoolVar(&exportASCII, "ascii", false, "write ASCII instead of binary STL")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) (err error) {
	if exportThickness <= 0 {
		return fmt.Errorf("thickness must be positive, got %v", exportThickness)
	}

	path := args[0]
	sc, session, err := replay(path)
	if err != nil {
		return err
	}

	output := exportOutput
	if output == "" {
		output = strings.TrimSuffix(path, filepath.Ext(path)) + ".stl"
	}

	model := stl.FromWorktops(sc.Name, session.Worktops(), exportThickness)

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer closeFile(f, &err)

	write := stl.WriteBinary
	if exportASCII {
		write = stl.WriteASCII
	}
	if err := write(f, model); err != nil {
		return err
	}

	area := model.SurfaceArea() / 1e6
	log.Info().Str("file", output).Int("triangles", model.TriangleCount()).Float64("area", area).Msg("Model exported")
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d worktops (%d triangles, %.3f m²) to %s\n",
		len(session.Worktops()), model.TriangleCount(), area, output)
	return nil
}
