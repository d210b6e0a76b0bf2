package textedit

// Anchor is a position that follows the edits applied after it was placed.
// An anchor inside a replaced range moves to the start of the replacement.
type Anchor struct {
	doc    *Document
	offset int
}

// Anchor places an anchor at p.  Release it when it is no longer needed.
func (d *Document) Anchor(p Position) *Anchor {
	a := &Anchor{doc: d, offset: d.Offset(p)}
	d.anchors = append(d.anchors, a)
	return a
}

// Release stops tracking the given anchors.
func (d *Document) Release(anchors ...*Anchor) {
	kept := d.anchors[:0]
	for _, a := range d.anchors {
		released := false
		for _, r := range anchors {
			if a == r {
				released = true
				break
			}
		}
		if !released {
			kept = append(kept, a)
		}
	}
	d.anchors = kept
}

// Position returns the current position of the anchor.
func (a *Anchor) Position() Position {
	return a.doc.PositionAt(a.offset)
}

// change is one committed edit in offsets of the text before the batch.
type change struct {
	start, end, size int
}

// moveAnchors shifts the anchors over a batch of changes sorted by start.
// An insertion at an anchor's offset pushes the anchor after it.
func (d *Document) moveAnchors(changes []change) {
	for _, a := range d.anchors {
		shift := 0
		for _, c := range changes {
			switch {
			case c.end <= a.offset:
				shift += c.size - (c.end - c.start)
			case c.start < a.offset:
				shift += c.start - a.offset
			}
		}
		a.offset += shift
	}
}
