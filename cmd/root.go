package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/philipparndt/workdraw/internal/app"
	"github.com/philipparndt/workdraw/internal/config"
	"github.com/philipparndt/workdraw/internal/logging"
	"github.com/philipparndt/workdraw/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	gridSize   int
	noSnap     bool

	// appConfig is populated before any command runs
	appConfig = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "workdraw [script]",
	Short: "Sketch L- and U-shaped kitchen worktops",
	Long: `Workdraw is a sketch tool for kitchen worktops. Drag on the canvas to draw
a worktop, turn without releasing to add a corner. Connections, inner and
outer edges and lengths in millimetres are worked out while you draw.

Started without a subcommand it opens the desktop window, optionally
replaying a pointer script first.`,
	Args:              cobra.MaximumNArgs(1),
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		script := ""
		if len(args) == 1 {
			script = args[0]
		}
		return app.Run(appConfig, script)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	flags.StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	flags.IntVar(&gridSize, "grid", 0, "grid size in pixels")
	flags.BoolVar(&noSnap, "no-snap", false, "disable snapping to the grid")
}

// loadConfig reads the configuration file, applies flag overrides and sets
// up logging
func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if cmd.Flags().Changed("grid") {
		cfg.Sketch.GridSize = gridSize
	}
	if noSnap {
		cfg.Sketch.SnapToGrid = false
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := logging.Setup(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Pretty); err != nil {
		return err
	}

	appConfig = cfg
	return nil
}

// closeFile closes f and reports a close failure through err unless an
// earlier error is already set
func closeFile(f *os.File, err *error) {
	if cerr := f.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("failed to close %s: %w", f.Name(), cerr)
	}
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
