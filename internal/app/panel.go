package app

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/workdraw/pkg/sketch"
)

const (
	noWorktops    = "No worktops yet"
	noConnections = "No connections"
)

// InfoPanel shows the worktop and connection lists next to the canvas
type InfoPanel struct {
	worktops    *widget.Label
	connections *widget.Label
	status      *widget.Label
}

var _ sketch.ListSink = (*InfoPanel)(nil)

// NewInfoPanel creates an empty panel
func NewInfoPanel() *InfoPanel {
	p := &InfoPanel{
		worktops:    widget.NewLabel(noWorktops),
		connections: widget.NewLabel(noConnections),
		status:      widget.NewLabel(""),
	}
	p.worktops.TextStyle = fyne.TextStyle{Monospace: true}
	p.connections.TextStyle = fyne.TextStyle{Monospace: true}
	p.connections.Wrapping = fyne.TextWrapWord
	return p
}

// UpdateLists replaces both lists
func (p *InfoPanel) UpdateLists(worktops []sketch.WorktopSummary, connections []sketch.ConnectionSummary) {
	p.worktops.SetText(joinLines(worktops, noWorktops))
	p.connections.SetText(joinLines(connections, noConnections))
}

// SetStatus shows a one line message below the lists
func (p *InfoPanel) SetStatus(text string) {
	p.status.SetText(text)
}

// WorktopText returns the current worktop list
func (p *InfoPanel) WorktopText() string {
	return p.worktops.Text
}

// ConnectionText returns the current connection list
func (p *InfoPanel) ConnectionText() string {
	return p.connections.Text
}

func joinLines[T interface{ String() string }](items []T, empty string) string {
	if len(items) == 0 {
		return empty
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = item.String()
	}
	return strings.Join(lines, "\n")
}
