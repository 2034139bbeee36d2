package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/philipparndt/workdraw/internal/measurement"
	"github.com/philipparndt/workdraw/pkg/analysis"
	"github.com/philipparndt/workdraw/pkg/script"
	"github.com/philipparndt/workdraw/pkg/sketch"
	"github.com/philipparndt/workdraw/pkg/watcher"
	"github.com/philipparndt/workdraw/pkg/worktop"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	replayJSON  bool
	replayLog   string
	replayWatch bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [script]",
	Short: "Replay a pointer script and print the resulting layout",
	Long: `Replay a pointer-event script without opening a window and print the
worktops, their edge measurements, connections, straight runs and exterior
faces.

Scripts are either text (one "down x,y", "move x,y", "up x,y", "drag x,y ...",
"clear" or "snap on|off" per line) or JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&replayJSON, "json", false, "print the report as JSON")
	replayCmd.Flags().StringVar(&replayLog, "log", "", "write the measurement log as TSV to this file")
	replayCmd.Flags().BoolVarP(&replayWatch, "watch", "w", false, "replay again whenever the script changes")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()

	if err := replayFile(out, path); err != nil {
		return err
	}
	if !replayWatch {
		return nil
	}

	fw, err := watcher.NewFileWatcher(watcher.DefaultDebounce)
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Watch([]string{path}, func(string) {
		fmt.Fprintln(out)
		if err := replayFile(out, path); err != nil {
			log.Error().Err(err).Str("file", path).Msg("Replay failed")
		}
	}); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	fw.Start(ctx)
	log.Info().Str("file", path).Msg("Watching for changes, press Ctrl+C to stop")
	<-ctx.Done()
	return nil
}

// Report is the machine readable result of a replay
type Report struct {
	Script       string                       `json:"script"`
	Steps        int                          `json:"steps"`
	Actions      map[string]int               `json:"actions"`
	Worktops     []sketch.WorktopSummary      `json:"worktops"`
	Measurements []*analysis.MeasurementResult `json:"measurements"`
	Connections  []sketch.ConnectionSummary   `json:"connections"`
	Runs         []RunReport                  `json:"runs"`
	Faces        []FaceReport                 `json:"faces"`
}

// RunReport describes a straight run of worktops
type RunReport struct {
	Label    string `json:"label"`
	Axis     string `json:"axis"`
	LengthMm int    `json:"lengthMm"`
}

// FaceReport describes an exterior face. Continuous faces span several
// worktops.
type FaceReport struct {
	Label      string       `json:"label"`
	Side       worktop.Side `json:"side"`
	LengthMm   int          `json:"lengthMm"`
	Continuous bool         `json:"continuous"`
}

// replay parses a script and replays it into a fresh session
func replay(path string) (*script.Script, *sketch.Session, error) {
	sc, err := script.Parse(path)
	if err != nil {
		return nil, nil, err
	}

	session, err := sketch.New(appConfig.Sketch)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}
	sc.Replay(session)
	return sc, session, nil
}

func buildReport(sc *script.Script, session *sketch.Session) Report {
	report := Report{
		Script:       sc.Name,
		Steps:        sc.StepCount(),
		Actions:      make(map[string]int),
		Worktops:     session.WorktopSummaries(),
		Measurements: session.Measurements(),
		Connections:  session.ConnectionSummaries(),
	}
	for _, run := range session.Runs() {
		report.Runs = append(report.Runs, RunReport{
			Label:    run.Label(),
			Axis:     run.Axis.String(),
			LengthMm: analysis.PixelsToMm(float64(run.LengthPx)),
		})
	}
	for _, f := range session.ExteriorFaces() {
		report.Faces = append(report.Faces, FaceReport{
			Label:      f.Label(),
			Side:       f.Side,
			LengthMm:   analysis.FaceLengthMm(f),
			Continuous: f.Continuous(),
		})
	}
	for action, n := range sc.Counts() {
		report.Actions[action.String()] = n
	}
	return report
}

func replayFile(out io.Writer, path string) error {
	sc, session, err := replay(path)
	if err != nil {
		return err
	}

	if replayLog != "" {
		if err := writeLog(replayLog, session); err != nil {
			return err
		}
	}

	report := buildReport(sc, session)
	if replayJSON {
		data, err := sonic.ConfigStd.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	printReport(out, report)
	return nil
}

func writeLog(path string, session *sketch.Session) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer closeFile(f, &err)

	entries := measurement.Collect(session.Worktops(), session.Calculator())
	entries.AddFaces(session.ExteriorFaces())
	if err := entries.WriteTSV(f); err != nil {
		return err
	}
	log.Info().Str("file", path).Int("entries", entries.Len()).Msg("Measurement log written")
	return nil
}

func printReport(out io.Writer, report Report) {
	fmt.Fprintln(out, "Worktop Layout")
	fmt.Fprintln(out, "==============")
	fmt.Fprintf(out, "Script: %s (%d steps: %s)\n\n", report.Script, report.Steps, formatActions(report.Actions))

	fmt.Fprintln(out, "Worktops:")
	if len(report.Worktops) == 0 {
		fmt.Fprintln(out, "  none")
	}
	for i, w := range report.Worktops {
		m := report.Measurements[i]
		fmt.Fprintf(out, "  %s (%s)\n", w, w.Direction)
		for _, e := range m.Edges {
			kind := e.Label.String()
			if e.Label == worktop.Unlabelled {
				kind = "width"
			}
			fmt.Fprintf(out, "    %-6s %-6s %s\n", e.Side.String()+":", kind, e.Text())
		}
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Connections:")
	if len(report.Connections) == 0 {
		fmt.Fprintln(out, "  none")
	}
	for _, c := range report.Connections {
		fmt.Fprintf(out, "  %s\n", c)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Runs:")
	if len(report.Runs) == 0 {
		fmt.Fprintln(out, "  none")
	}
	for _, r := range report.Runs {
		fmt.Fprintf(out, "  %s: %s (%s)\n", r.Label, analysis.FormatMillimeters(r.LengthMm), r.Axis)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Exterior faces:")
	if len(report.Faces) == 0 {
		fmt.Fprintln(out, "  none")
	}
	for _, f := range report.Faces {
		mark := ""
		if f.Continuous {
			mark = " continuous"
		}
		fmt.Fprintf(out, "  %s %s: %s%s\n", f.Label, f.Side, analysis.FormatMillimeters(f.LengthMm), mark)
	}
}

// formatActions lists the step counts in script action order, e.g.
// "1 down, 40 move, 1 up"
func formatActions(counts map[string]int) string {
	var parts []string
	for _, a := range []script.Action{script.Down, script.Move, script.Up, script.Clear, script.Snap} {
		if n := counts[a.String()]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, a))
		}
	}
	if len(parts) == 0 {
		return "empty"
	}
	return strings.Join(parts, ", ")
}
