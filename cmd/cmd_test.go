package cmd

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/philipparndt/workdraw/pkg/stl"
)

// execute runs the root command with fresh flag values
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, logLevel, gridSize, noSnap = "", "", 0, false
	replayJSON, replayLog, replayWatch = false, "", false
	renderOutput, renderMargin, renderNoGrid = "", 60, false
	exportOutput, exportThickness, exportASCII = "", stl.DefaultThickness, false

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestReplayReport(t *testing.T) {
	out, err := execute(t, "replay", "testdata/corner.txt", "--log-level", "warn")
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}

	for _, want := range []string{
		"Worktop Layout",
		"Script: corner (42 steps: 1 down, 40 move, 1 up)",
		"A: 1300mm x 600mm (east)",
		"B: 700mm x 600mm (south)",
		"outer  1300mm",
		"inner  700mm",
		"Runs:\n  none",
		"Exterior faces:",
		"A+B right: 1300mm continuous",
		"A top: 1300mm\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestReplayJSON(t *testing.T) {
	out, err := execute(t, "replay", "testdata/corner.txt", "--json", "--log-level", "warn")
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}

	var report Report
	if err := sonic.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if report.Script != "corner" {
		t.Errorf("expected script corner, got %s", report.Script)
	}
	if len(report.Worktops) != 2 {
		t.Fatalf("expected 2 worktops, got %d", len(report.Worktops))
	}
	if report.Worktops[0].LengthMm != 1300 {
		t.Errorf("expected A to be 1300mm, got %d", report.Worktops[0].LengthMm)
	}
	if len(report.Connections) == 0 {
		t.Error("expected connections in the report")
	}
	if report.Actions["move"] != 40 {
		t.Errorf("expected 40 moves, got %v", report.Actions)
	}

	var continuous []FaceReport
	for _, f := range report.Faces {
		if f.Continuous {
			continuous = append(continuous, f)
		}
	}
	if len(report.Faces) != 6 || len(continuous) != 1 {
		t.Fatalf("expected 6 faces with 1 continuous, got %+v", report.Faces)
	}
	if continuous[0].Label != "A+B" || continuous[0].LengthMm != 1300 {
		t.Errorf("unexpected continuous face %+v", continuous[0])
	}
}

func TestReplayWritesLog(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "measurements.tsv")
	if _, err := execute(t, "replay", "testdata/corner.txt", "--log", logFile, "--log-level", "warn"); err != nil {
		t.Fatalf("replay failed: %v", err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if !strings.HasPrefix(string(data), "=== MEASUREMENT LOGS ===") {
		t.Errorf("unexpected log header: %q", string(data))
	}
	// 4 edges for each of the 2 worktops, the continuous face, a header and a title
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 12 {
		t.Errorf("expected 12 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[11], "ExteriorFace (A+B)\tvertical\texterior-face\t") {
		t.Errorf("unexpected face row %q", lines[11])
	}
}

func TestReplayMissingFile(t *testing.T) {
	if _, err := execute(t, "replay", "testdata/missing.txt"); err == nil {
		t.Error("expected an error for a missing script")
	}
}

func TestReplayNoSnap(t *testing.T) {
	out, err := execute(t, "replay", "testdata/corner.txt", "--no-snap", "--log-level", "warn")
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if !strings.Contains(out, "A: ") {
		t.Errorf("expected a worktop without snapping, got:\n%s", out)
	}
	if appConfig.Sketch.SnapToGrid {
		t.Error("expected snapping disabled")
	}
}

func TestRenderWritesPNG(t *testing.T) {
	output := filepath.Join(t.TempDir(), "corner.png")
	out, err := execute(t, "render", "testdata/corner.txt", "-o", output, "--log-level", "warn")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, "Rendered 2 worktops") {
		t.Errorf("unexpected output: %s", out)
	}

	f, err := os.Open(output)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("expected a valid png: %v", err)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	if _, err := execute(t, "replay", "testdata/corner.txt", "--log-level", "loud"); err == nil {
		t.Error("expected an error for an unknown log level")
	}
}

func TestCompletion(t *testing.T) {
	out, err := execute(t, "completion", "bash", "--log-level", "warn")
	if err != nil {
		t.Fatalf("completion failed: %v", err)
	}
	if !strings.Contains(out, "workdraw") {
		t.Errorf("expected a bash completion script for workdraw")
	}
}

func TestExportWritesSTL(t *testing.T) {
	output := filepath.Join(t.TempDir(), "corner.stl")
	out, err := execute(t, "export", "testdata/corner.txt", "-o", output, "--ascii", "--log-level", "warn")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out, "Exported 2 worktops (24 triangles, 2.656 m²)") {
		t.Errorf("unexpected output: %s", out)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "solid corner") {
		t.Errorf("expected an ASCII STL named corner")
	}
}

func TestExportRejectsThickness(t *testing.T) {
	if _, err := execute(t, "export", "testdata/corner.txt", "--thickness", "0", "--log-level", "warn"); err == nil {
		t.Error("expected an error for zero thickness")
	}
}

func TestCloseFileReportsError(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}

	// closing twice fails, the error must reach the caller
	var result error
	closeFile(f, &result)
	if result == nil {
		t.Error("expected the close error to be returned")
	}

	first := os.ErrInvalid
	result = first
	closeFile(f, &result)
	if result != first {
		t.Errorf("expected the earlier error to be kept, got %v", result)
	}
}
