package measurement

import (
	"github.com/philipparndt/workdraw/pkg/geometry"
)

// Entry is one logged edge measurement
type Entry struct {
	Worktop  string
	Edge     string
	Type     string
	Line     geometry.Line
	LengthPx int
	LengthMm int
	Details  string
}

// Log collects edge measurements for export
type Log struct {
	Entries []Entry
}

// NewLog creates an empty measurement log
func NewLog() *Log {
	return &Log{
		Entries: make([]Entry, 0),
	}
}

// Add appends an entry
func (l *Log) Add(e Entry) {
	l.Entries = append(l.Entries, e)
}

// Len returns the number of entries
func (l *Log) Len() int {
	return len(l.Entries)
}
