package project

// FindTrack scans tracks in index order and returns the first track whose
// name matches exactly (case-sensitive), or nil if there is no match.
func (p *Project) FindTrack(name string) *Track {
	for _, tr := range p.Tracks {
		if tr.Name == name {
			return tr
		}
	}
	return nil
}

// AddTrack appends a new empty track with the given name and returns it.
func (p *Project) AddTrack(name string) *Track {
	tr := &Track{Name: name}
	p.Tracks = append(p.Tracks, tr)
	return tr
}

// EnsureTrack returns the track with the given name, creating it at the
// end of the track list when absent.
func (p *Project) EnsureTrack(name string) *Track {
	if tr := p.FindTrack(name); tr != nil {
		return tr
	}
	return p.AddTrack(name)
}

// SelectedTracks returns the selected tracks in index order.
func (p *Project) SelectedTracks() []*Track {
	var sel []*Track
	for _, tr := range p.Tracks {
		if tr.Selected {
			sel = append(sel, tr)
		}
	}
	return sel
}

// Length returns the project length in seconds: the furthest point in
// time reached by any item end or envelope breakpoint.
func (p *Project) Length() float64 {
	var max float64
	for _, tr := range p.Tracks {
		for _, it := range tr.Items {
			if end := it.End(); end > max {
				max = end
			}
		}
		for _, env := range tr.Envelopes {
			for _, pt := range env.Points {
				if pt.Time > max {
					max = pt.Time
				}
			}
		}
	}
	return max
}

// AddMIDIItem creates a new empty MIDI item on the track at the given
// position and length (seconds) and returns it.
func (tr *Track) AddMIDIItem(position, length float64) *Item {
	it := &Item{
		Position: position,
		Length:   length,
		Take:     &Take{MIDI: true},
	}
	tr.Items = append(tr.Items, it)
	return it
}

// DeleteItem removes the item at the given index. Out-of-range indices
// are ignored.
func (tr *Track) DeleteItem(index int) {
	if index < 0 || index >= len(tr.Items) {
		return
	}
	tr.Items = append(tr.Items[:index], tr.Items[index+1:]...)
}

// RemoveItem deletes the first occurrence of the given item pointer.
func (tr *Track) RemoveItem(item *Item) {
	for i, it := range tr.Items {
		if it == item {
			tr.DeleteItem(i)
			return
		}
	}
}
