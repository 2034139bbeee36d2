package worktop

// Labeler hands out sequential labels A, B, ..., Z, AA, AB, ...
type Labeler struct {
	next int
}

// Next returns the next label in the sequence
func (l *Labeler) Next() string {
	label := LabelFor(l.next)
	l.next++
	return label
}

// Reset starts the sequence over at A
func (l *Labeler) Reset() {
	l.next = 0
}

// LabelFor returns the label at zero-based index n
func LabelFor(n int) string {
	var buf []byte
	for n++; n > 0; n = (n - 1) / 26 {
		buf = append([]byte{byte('A' + (n-1)%26)}, buf...)
	}
	return string(buf)
}
