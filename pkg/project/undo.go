package project

type undoEntry struct {
	label string
	snap  *Project
}

// BeginUndoBlock opens an undo bracket. Only the outermost bracket takes
// a snapshot; nested brackets just track depth so a whole run reverts as
// one action.
func (p *Project) BeginUndoBlock(label string) {
	p.undoDepth++
	if p.undoDepth == 1 {
		p.undoStack = append(p.undoStack, undoEntry{label: label, snap: p.Clone()})
	}
}

// EndUndoBlock closes the innermost open undo bracket.
func (p *Project) EndUndoBlock() {
	if p.undoDepth > 0 {
		p.undoDepth--
	}
}

// CanUndo reports whether a closed undo bracket is available.
func (p *Project) CanUndo() bool {
	return p.undoDepth == 0 && len(p.undoStack) > 0
}

// UndoLabel returns the label of the bracket Undo would revert, or "".
func (p *Project) UndoLabel() string {
	if !p.CanUndo() {
		return ""
	}
	return p.undoStack[len(p.undoStack)-1].label
}

// Undo restores the project to the state captured by the most recent
// closed undo bracket. It reports whether anything was undone.
func (p *Project) Undo() bool {
	if !p.CanUndo() {
		return false
	}
	entry := p.undoStack[len(p.undoStack)-1]
	remaining := p.undoStack[:len(p.undoStack)-1]

	*p = *entry.snap
	p.undoStack = remaining
	p.undoDepth = 0
	return true
}

// Clone returns a deep copy of the project's model state. The undo stack
// itself is not carried into the copy.
func (p *Project) Clone() *Project {
	cp := &Project{
		Name:            p.Name,
		Tempo:           p.Tempo,
		TicksPerQuarter: p.TicksPerQuarter,
	}
	for _, tr := range p.Tracks {
		cp.Tracks = append(cp.Tracks, tr.clone())
	}
	return cp
}

func (tr *Track) clone() *Track {
	ct := &Track{Name: tr.Name, Selected: tr.Selected}
	for _, env := range tr.Envelopes {
		ce := &Envelope{Name: env.Name, Points: append([]Point(nil), env.Points...)}
		ct.Envelopes = append(ct.Envelopes, ce)
	}
	for _, it := range tr.Items {
		ct.Items = append(ct.Items, it.clone())
	}
	return ct
}

func (i *Item) clone() *Item {
	ci := &Item{Position: i.Position, Length: i.Length}
	if i.Take != nil {
		take := &Take{
			MIDI:  i.Take.MIDI,
			CCs:   append([]CCEvent(nil), i.Take.CCs...),
			Notes: append([]NoteEvent(nil), i.Take.Notes...),
		}
		for _, sx := range i.Take.SysEx {
			take.SysEx = append(take.SysEx, SysExEvent{PPQ: sx.PPQ, Data: append([]byte(nil), sx.Data...)})
		}
		ci.Take = take
	}
	return ci
}
