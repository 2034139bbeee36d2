package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/philipparndt/workdraw/pkg/sketch"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a := test.NewTempApp(t)
	w := a.NewWindow("test")
	t.Cleanup(w.Close)

	session, err := sketch.New(sketch.DefaultConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return New(w, session)
}

func TestPanelStartsEmpty(t *testing.T) {
	a := newTestApp(t)
	if a.panel.WorktopText() != noWorktops {
		t.Errorf("expected %q, got %q", noWorktops, a.panel.WorktopText())
	}
	if a.panel.ConnectionText() != noConnections {
		t.Errorf("expected %q, got %q", noConnections, a.panel.ConnectionText())
	}
}

func TestPanelListsCorner(t *testing.T) {
	a := newTestApp(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "corner.txt")
	if err := os.WriteFile(path, []byte("drag 100,100 300,100 300,300\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	a.replayFile(path)

	worktops := a.panel.WorktopText()
	if !strings.Contains(worktops, "A: ") || !strings.Contains(worktops, "B: ") {
		t.Errorf("expected worktops A and B, got %q", worktops)
	}
	if a.panel.ConnectionText() == noConnections {
		t.Errorf("expected a connection between A and B")
	}
	if !strings.Contains(a.panel.status.Text, "corner") {
		t.Errorf("expected status to name the script, got %q", a.panel.status.Text)
	}
}

func TestClearResetsPanel(t *testing.T) {
	a := newTestApp(t)
	a.session.PointerDown(100, 100)
	for x := 110.0; x <= 300; x += 10 {
		a.session.PointerMove(x, 100)
	}
	a.session.PointerUp(300, 100)

	if a.panel.WorktopText() != "A: 1000mm x 600mm" {
		t.Errorf("expected single worktop entry, got %q", a.panel.WorktopText())
	}

	a.clear()
	if a.panel.WorktopText() != noWorktops {
		t.Errorf("expected empty list after clear, got %q", a.panel.WorktopText())
	}
}

func TestSnapCheckFollowsSession(t *testing.T) {
	a := newTestApp(t)
	if !a.snap.Checked {
		t.Fatal("expected snap checked by default")
	}
	a.snap.SetChecked(false)
	if a.session.SnapEnabled() {
		t.Errorf("expected snap disabled after unchecking")
	}
}
