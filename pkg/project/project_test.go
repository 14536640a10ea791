package project

import (
	"testing"
)

func TestFindTrack(t *testing.T) {
	p := New("demo")
	p.AddTrack("A")
	p.AddTrack("B")
	p.AddTrack("Target")

	tests := []struct {
		name  string
		found bool
	}{
		{"Target", true},
		{"A", true},
		{"Missing", false},
		{"target", false}, // case-sensitive
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := p.FindTrack(tt.name)
			if (tr != nil) != tt.found {
				t.Errorf("FindTrack(%q) = %v, want found=%v", tt.name, tr, tt.found)
			}
			if tr != nil && tr.Name != tt.name {
				t.Errorf("FindTrack(%q) returned track %q", tt.name, tr.Name)
			}
		})
	}
}

func TestFindTrackEmptyProject(t *testing.T) {
	p := New("empty")
	if tr := p.FindTrack("anything"); tr != nil {
		t.Errorf("FindTrack on empty project = %v, want nil", tr)
	}
}

func TestFindTrackFirstMatch(t *testing.T) {
	p := New("dupes")
	first := p.AddTrack("Dup")
	p.AddTrack("Dup")

	if tr := p.FindTrack("Dup"); tr != first {
		t.Error("FindTrack should return the lowest-index match")
	}
}

func TestEnsureTrack(t *testing.T) {
	p := New("demo")
	p.AddTrack("A")

	tr := p.EnsureTrack("Target")
	if tr == nil {
		t.Fatal("EnsureTrack returned nil")
	}
	if len(p.Tracks) != 2 || p.Tracks[1] != tr {
		t.Error("EnsureTrack should append the new track at the end")
	}

	again := p.EnsureTrack("Target")
	if again != tr {
		t.Error("EnsureTrack should return the existing track")
	}
	if len(p.Tracks) != 2 {
		t.Errorf("track count = %d, want 2", len(p.Tracks))
	}
}

func TestSelectedTracks(t *testing.T) {
	p := New("demo")
	p.AddTrack("A").Selected = true
	p.AddTrack("B")
	p.AddTrack("C").Selected = true

	sel := p.SelectedTracks()
	if len(sel) != 2 {
		t.Fatalf("selected = %d, want 2", len(sel))
	}
	if sel[0].Name != "A" || sel[1].Name != "C" {
		t.Errorf("selection order = %q, %q, want A, C", sel[0].Name, sel[1].Name)
	}
}

func TestProjectLength(t *testing.T) {
	p := New("demo")
	a := p.AddTrack("A")
	a.Envelopes = append(a.Envelopes, &Envelope{
		Name:   "Volume",
		Points: []Point{{Time: 0}, {Time: 3.5}},
	})
	b := p.AddTrack("B")
	b.AddMIDIItem(1.0, 4.0)

	if got := p.Length(); got != 5.0 {
		t.Errorf("Length() = %v, want 5.0", got)
	}
}

func TestTimeToPPQ(t *testing.T) {
	p := New("demo") // 120 bpm, 480 tpq

	tests := []struct {
		seconds float64
		ticks   int64
	}{
		{0.0, 0},
		{0.5, 480},
		{1.0, 960},
		{2.0, 1920},
	}

	for _, tt := range tests {
		if got := p.TimeToPPQ(tt.seconds); got != tt.ticks {
			t.Errorf("TimeToPPQ(%v) = %d, want %d", tt.seconds, got, tt.ticks)
		}
		if got := p.PPQToTime(tt.ticks); got != tt.seconds {
			t.Errorf("PPQToTime(%d) = %v, want %v", tt.ticks, got, tt.seconds)
		}
	}
}

func TestItemPPQ(t *testing.T) {
	p := New("demo")
	tr := p.AddTrack("A")
	it := tr.AddMIDIItem(1.0, 2.0)

	// Item-relative ticks: 1.5s project time is 0.5s into the item.
	if got := p.ItemPPQ(it, 1.5); got != 480 {
		t.Errorf("ItemPPQ = %d, want 480", got)
	}
}

func TestSortEvents(t *testing.T) {
	take := &Take{MIDI: true}
	take.InsertCC(CCEvent{PPQ: 960, Controller: 16, Value: 100})
	take.InsertCC(CCEvent{PPQ: 0, Controller: 16, Value: 1})
	take.InsertCC(CCEvent{PPQ: 480, Controller: 17, Value: 50})
	take.InsertNote(NoteEvent{PPQ: 240, EndPPQ: 480, Note: 60})
	take.InsertNote(NoteEvent{PPQ: 0, EndPPQ: 120, Note: 62})

	take.SortEvents()

	for i := 1; i < len(take.CCs); i++ {
		if take.CCs[i-1].PPQ > take.CCs[i].PPQ {
			t.Fatalf("CC events not sorted: %v", take.CCs)
		}
	}
	if take.Notes[0].Note != 62 {
		t.Errorf("note order after sort = %v", take.Notes)
	}
}

func TestDeleteItem(t *testing.T) {
	p := New("demo")
	tr := p.AddTrack("A")
	first := tr.AddMIDIItem(0, 1)
	second := tr.AddMIDIItem(1, 1)
	third := tr.AddMIDIItem(2, 1)

	tr.DeleteItem(1)
	if len(tr.Items) != 2 || tr.Items[0] != first || tr.Items[1] != third {
		t.Errorf("DeleteItem(1) left %v", tr.Items)
	}

	tr.DeleteItem(5) // out of range, ignored
	if len(tr.Items) != 2 {
		t.Error("out-of-range delete should be a no-op")
	}

	tr.RemoveItem(second) // already gone, ignored
	tr.RemoveItem(first)
	if len(tr.Items) != 1 || tr.Items[0] != third {
		t.Errorf("RemoveItem left %v", tr.Items)
	}
}

func TestIsMIDI(t *testing.T) {
	tests := []struct {
		name string
		item *Item
		want bool
	}{
		{"nil item", nil, false},
		{"nil take", &Item{}, false},
		{"audio take", &Item{Take: &Take{}}, false},
		{"midi take", &Item{Take: &Take{MIDI: true}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.IsMIDI(); got != tt.want {
				t.Errorf("IsMIDI() = %v, want %v", got, tt.want)
			}
		})
	}
}
