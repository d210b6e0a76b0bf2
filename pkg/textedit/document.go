package textedit

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strings"
)

// Position is a zero-based line and byte column.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Before reports whether p sorts before o.
func (p Position) Before(o Position) bool {
	return p.Line < o.Line || (p.Line == o.Line && p.Column < o.Column)
}

// Range is a half-open span of text.
type Range struct {
	Start Position
	End   Position
}

// Contains reports whether p falls within r (the end position is inclusive so
// that a cursor placed right after a word still selects it).
func (r Range) Contains(p Position) bool {
	return !p.Before(r.Start) && !r.End.Before(p)
}

// Edit replaces the text of Range with NewText.  An empty range is an insert.
type Edit struct {
	Range   Range
	NewText string
}

// Insert returns an edit inserting text at p.
func Insert(p Position, text string) Edit {
	return Edit{Range: Range{Start: p, End: p}, NewText: text}
}

// Replace returns an edit replacing r with text.
func Replace(r Range, text string) Edit {
	return Edit{Range: r, NewText: text}
}

// Delete returns an edit removing r.
func Delete(r Range) Edit {
	return Edit{Range: r}
}

// OverlapError is returned by Apply when two edits of one batch touch the same
// text.
type OverlapError struct {
	A, B Edit
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("overlapping edits: %v-%v and %v-%v", e.A.Range.Start, e.A.Range.End, e.B.Range.Start, e.B.Range.End)
}

// Document is an in-memory text buffer.  All edits are addressed against the
// current snapshot; a batch passed to Apply is validated and committed as a
// single history entry.
type Document struct {
	filename string
	mode     fs.FileMode

	text       string
	lineStarts []int
	history    []string
	saved      string
	anchors    []*Anchor
}

// NewDocument constructs a document over text.
func NewDocument(filename, text string) *Document {
	d := &Document{filename: filename, mode: 0o644, saved: text}
	d.setText(text)
	return d
}

// ReadDocument loads a document from disk.
func ReadDocument(filename string) (*Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	d := NewDocument(filename, string(data))
	d.mode = info.Mode()
	return d, nil
}

// Save writes the document back to its file when it has been modified.
func (d *Document) Save() error {
	if !d.Dirty() {
		return nil
	}
	if err := os.WriteFile(d.filename, []byte(d.text), d.mode); err != nil {
		return err
	}
	d.saved = d.text
	return nil
}

// Dirty reports whether the text differs from what was last loaded or saved.
func (d *Document) Dirty() bool {
	return d.text != d.saved
}

func (d *Document) Filename() string {
	return d.filename
}

func (d *Document) Text() string {
	return d.text
}

func (d *Document) Bytes() []byte {
	return []byte(d.text)
}

// LineCount is the number of lines.  A trailing newline opens an empty last
// line.
func (d *Document) LineCount() int {
	return len(d.lineStarts)
}

// Line returns the text of line i without its line terminator.
func (d *Document) Line(i int) string {
	if i < 0 || i >= len(d.lineStarts) {
		return ""
	}
	start := d.lineStarts[i]
	end := len(d.text)
	if i+1 < len(d.lineStarts) {
		end = d.lineStarts[i+1] - 1
	}
	return strings.TrimSuffix(d.text[start:end], "\r")
}

// LineRange spans the text of line i, excluding its terminator.
func (d *Document) LineRange(i int) Range {
	return Range{
		Start: Position{Line: i},
		End:   Position{Line: i, Column: len(d.Line(i))},
	}
}

// FullLineRange spans line i including its terminator, so deleting it removes
// the line entirely.
func (d *Document) FullLineRange(i int) Range {
	if i+1 < len(d.lineStarts) {
		return Range{Start: Position{Line: i}, End: Position{Line: i + 1}}
	}
	return d.LineRange(i)
}

// Offset converts a position to a byte offset, clamping to the document.
// Position{Line: LineCount()} addresses the end of the text.
func (d *Document) Offset(p Position) int {
	if p.Line < 0 {
		return 0
	}
	if p.Line >= len(d.lineStarts) {
		return len(d.text)
	}
	start := d.lineStarts[p.Line]
	end := len(d.text)
	if p.Line+1 < len(d.lineStarts) {
		end = d.lineStarts[p.Line+1]
	}
	off := start + p.Column
	if off > end {
		off = end
	}
	return off
}

// PositionAt converts a byte offset to a position.
func (d *Document) PositionAt(off int) Position {
	if off < 0 {
		off = 0
	}
	if off > len(d.text) {
		off = len(d.text)
	}
	line := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > off
	}) - 1
	return Position{Line: line, Column: off - d.lineStarts[line]}
}

// TextIn returns the text spanned by r.
func (d *Document) TextIn(r Range) string {
	start, end := d.Offset(r.Start), d.Offset(r.End)
	if end < start {
		return ""
	}
	return d.text[start:end]
}

// WordRangeAt returns the range of the re match on p's line that contains p.
func (d *Document) WordRangeAt(p Position, re *regexp.Regexp) (Range, bool) {
	line := d.Line(p.Line)
	for _, loc := range re.FindAllStringIndex(line, -1) {
		if loc[0] <= p.Column && p.Column <= loc[1] {
			return Range{
				Start: Position{Line: p.Line, Column: loc[0]},
				End:   Position{Line: p.Line, Column: loc[1]},
			}, true
		}
	}
	return Range{}, false
}

// FindAll returns the ranges of every re match over the whole text.
func (d *Document) FindAll(re *regexp.Regexp) []Range {
	var ranges []Range
	for _, loc := range re.FindAllStringIndex(d.text, -1) {
		ranges = append(ranges, Range{Start: d.PositionAt(loc[0]), End: d.PositionAt(loc[1])})
	}
	return ranges
}

// Apply commits a batch of edits computed against the current snapshot.  The
// batch is rejected as a whole if any two edits overlap.  Inserts at the same
// position keep their relative order.
func (d *Document) Apply(edits ...Edit) error {
	if len(edits) == 0 {
		return nil
	}

	type span struct {
		start, end int
		edit       Edit
	}
	spans := make([]span, len(edits))
	for i, e := range edits {
		start, end := d.Offset(e.Range.Start), d.Offset(e.Range.End)
		if end < start {
			return fmt.Errorf("invalid edit range %v-%v", e.Range.Start, e.Range.End)
		}
		spans[i] = span{start: start, end: end, edit: e}
	}
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].start < spans[j].start
	})
	for i := 1; i < len(spans); i++ {
		if spans[i].start < spans[i-1].end {
			return &OverlapError{A: spans[i-1].edit, B: spans[i].edit}
		}
	}

	changes := make([]change, len(spans))
	for i, s := range spans {
		changes[i] = change{start: s.start, end: s.end, size: len(s.edit.NewText)}
	}

	// bottom-to-top so that earlier offsets stay valid
	text := d.text
	for i := len(spans) - 1; i >= 0; i-- {
		s := spans[i]
		text = text[:s.start] + s.edit.NewText + text[s.end:]
	}

	d.history = append(d.history, d.text)
	d.setText(text)
	d.moveAnchors(changes)
	return nil
}

// Checkpoint marks the current history depth.
func (d *Document) Checkpoint() int {
	return len(d.history)
}

// Squash collapses every history entry recorded since cp into one, so that a
// single Undo reverts them together.
func (d *Document) Squash(cp int) {
	if cp < 0 || cp >= len(d.history) {
		return
	}
	d.history = d.history[:cp+1]
}

// Undo reverts the last history entry.
func (d *Document) Undo() bool {
	if len(d.history) == 0 {
		return false
	}
	last := len(d.history) - 1
	d.setText(d.history[last])
	d.history = d.history[:last]
	return true
}

func (d *Document) setText(text string) {
	d.text = text
	d.lineStarts = d.lineStarts[:0]
	d.lineStarts = append(d.lineStarts, 0)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			d.lineStarts = append(d.lineStarts, i+1)
		}
	}
}
