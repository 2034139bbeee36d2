package app

import (
	"fmt"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/workdraw/internal/config"
	"github.com/philipparndt/workdraw/internal/logging"
	"github.com/philipparndt/workdraw/pkg/script"
	"github.com/philipparndt/workdraw/pkg/sketch"
	"github.com/philipparndt/workdraw/pkg/viewer"
	"github.com/rs/zerolog"
)

// App is the desktop sketch window
type App struct {
	window  fyne.Window
	session *sketch.Session
	canvas  *viewer.Canvas
	panel   *InfoPanel
	snap    *widget.Check
	log     zerolog.Logger
}

// Run opens the window and blocks until it is closed. A non-empty script is
// replayed once the window is set up.
func Run(cfg config.Config, scriptPath string) error {
	session, err := sketch.New(cfg.Sketch)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	a := fyneapp.NewWithID("com.github.philipparndt.workdraw")
	w := a.NewWindow("Workdraw - Worktop Sketch")

	ui := New(w, session)
	if scriptPath != "" {
		ui.replayFile(scriptPath)
	}

	w.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	ui.log.Info().Str("session", session.ID.String()).Msg("Window opened")
	w.ShowAndRun()
	return nil
}

// New builds the window content around an existing session
func New(w fyne.Window, session *sketch.Session) *App {
	a := &App{
		window:  w,
		session: session,
		panel:   NewInfoPanel(),
		log:     logging.Module("app"),
	}
	a.canvas = viewer.NewCanvas(session)
	session.Attach(a.canvas, a.panel)
	a.setupMainUI()
	return a
}

func (a *App) setupMainUI() {
	clearButton := widget.NewButton("Clear", a.clear)

	openButton := widget.NewButton("Replay Script", func() {
		a.showFileDialog()
	})

	a.snap = widget.NewCheck("Snap to grid", func(checked bool) {
		a.session.SetSnap(checked)
	})
	a.snap.SetChecked(a.session.SnapEnabled())

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Press and drag to draw a worktop\n" +
			"• Turn 90° without releasing to add a corner\n" +
			"• Release to finish the run\n" +
			"• Worktops touching each other are connected",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabelWithStyle("Worktops:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewSeparator(),
		a.panel.worktops,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Connections:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewSeparator(),
		a.panel.connections,
		widget.NewSeparator(),
		widget.NewLabel("Display Options:"),
		a.snap,
		widget.NewSeparator(),
		instructions,
		widget.NewSeparator(),
		openButton,
		clearButton,
		a.panel.status,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(300, 0))

	content := container.NewBorder(
		nil,
		nil,
		nil,
		infoScroll,
		a.canvas,
	)

	a.window.SetContent(content)
}

func (a *App) clear() {
	a.session.Clear()
	a.panel.SetStatus("")
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.replayFile(reader.URI().Path())
	}, a.window)
}

// replayFile clears the sketch and replays a script file into it
func (a *App) replayFile(path string) {
	s, err := script.Parse(path)
	if err != nil {
		a.log.Error().Err(err).Str("file", path).Msg("Failed to load script")
		dialog.ShowError(fmt.Errorf("failed to load script: %w", err), a.window)
		return
	}

	a.session.Clear()
	s.Replay(a.session)
	a.snap.SetChecked(a.session.SnapEnabled())
	a.panel.SetStatus(fmt.Sprintf("Replayed %s (%d steps)", s.Name, s.StepCount()))
	a.log.Info().Str("script", s.Name).Int("worktops", len(a.session.Worktops())).Msg("Script replayed")
}
