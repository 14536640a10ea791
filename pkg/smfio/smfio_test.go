package smfio

import (
	"bytes"
	"testing"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/harlanmb/env2cc/pkg/project"
)

type ccCapture struct {
	tick       int64
	channel    uint8
	controller uint8
	value      uint8
}

func readCCs(t *testing.T, data []byte) []ccCapture {
	t.Helper()

	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("generated SMF does not parse: %v", err)
	}

	var ccs []ccCapture
	for _, track := range s.Tracks {
		var tick int64
		for _, ev := range track {
			tick += int64(ev.Delta)
			var ch, cc, val uint8
			if ev.Message.GetControlChange(&ch, &cc, &val) {
				ccs = append(ccs, ccCapture{tick: tick, channel: ch, controller: cc, value: val})
			}
		}
	}
	return ccs
}

func TestExportTrackUnknown(t *testing.T) {
	p := project.New("demo")
	if _, err := ExportTrack(p, "Missing"); err == nil {
		t.Error("ExportTrack() on a missing track should fail")
	}
}

func TestExportTrackCCPlacement(t *testing.T) {
	p := project.New("demo")
	tr := p.AddTrack("Target")

	it := tr.AddMIDIItem(1, 2) // 1s offset = 960 ticks
	it.Take.InsertCC(project.CCEvent{PPQ: 0, Channel: 0, Controller: 16, Value: 0})
	it.Take.InsertCC(project.CCEvent{PPQ: 960, Channel: 0, Controller: 16, Value: 127})
	it.Take.InsertCC(project.CCEvent{PPQ: 480, Channel: 1, Controller: 17, Value: 64, Muted: true})

	data, err := ExportTrack(p, "Target")
	if err != nil {
		t.Fatalf("ExportTrack() error = %v", err)
	}

	ccs := readCCs(t, data)
	if len(ccs) != 2 {
		t.Fatalf("cc count = %d, want 2 (muted event dropped)", len(ccs))
	}
	if ccs[0].tick != 960 || ccs[0].value != 0 {
		t.Errorf("cc[0] = %+v, want tick 960 value 0", ccs[0])
	}
	if ccs[1].tick != 1920 || ccs[1].value != 127 {
		t.Errorf("cc[1] = %+v, want tick 1920 value 127", ccs[1])
	}
}

func TestExportSkipsNonMIDIItems(t *testing.T) {
	p := project.New("demo")
	tr := p.AddTrack("Target")
	tr.Items = append(tr.Items, &project.Item{Position: 0, Length: 5, Take: &project.Take{}})
	it := tr.AddMIDIItem(0, 1)
	it.Take.InsertCC(project.CCEvent{PPQ: 0, Controller: 20, Value: 42})

	data, err := ExportTrack(p, "Target")
	if err != nil {
		t.Fatalf("ExportTrack() error = %v", err)
	}

	ccs := readCCs(t, data)
	if len(ccs) != 1 || ccs[0].controller != 20 {
		t.Errorf("ccs = %+v, want the single MIDI item's event", ccs)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	p := project.New("demo")
	tr := p.AddTrack("Target")
	it := tr.AddMIDIItem(0, 2)
	it.Take.InsertCC(project.CCEvent{PPQ: 0, Channel: 0, Controller: 16, Value: 10})
	it.Take.InsertCC(project.CCEvent{PPQ: 960, Channel: 1, Controller: 17, Value: 20})
	it.Take.InsertNote(project.NoteEvent{PPQ: 480, EndPPQ: 960, Channel: 0, Note: 60, Velocity: 100})

	data, err := ExportTrack(p, "Target")
	if err != nil {
		t.Fatalf("ExportTrack() error = %v", err)
	}

	dst := project.New("dst")
	imported, err := ImportItem(dst, "Imported", data)
	if err != nil {
		t.Fatalf("ImportItem() error = %v", err)
	}

	if !imported.IsMIDI() {
		t.Fatal("imported item should be a MIDI take")
	}
	if got := len(imported.Take.CCs); got != 2 {
		t.Fatalf("imported ccs = %d, want 2", got)
	}
	if imported.Take.CCs[1] != (project.CCEvent{PPQ: 960, Channel: 1, Controller: 17, Value: 20}) {
		t.Errorf("cc[1] = %+v", imported.Take.CCs[1])
	}
	if got := len(imported.Take.Notes); got != 1 {
		t.Fatalf("imported notes = %d, want 1", got)
	}
	note := imported.Take.Notes[0]
	if note.PPQ != 480 || note.EndPPQ != 960 || note.Note != 60 || note.Velocity != 100 {
		t.Errorf("note = %+v", note)
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	p := project.New("demo")
	if _, err := ImportItem(p, "X", []byte("not a midi file")); err == nil {
		t.Error("ImportItem() should fail on non-SMF data")
	}
}
