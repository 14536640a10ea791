package project

import (
	"path/filepath"
	"testing"
)

const demoYAML = `
name: demo
tracks:
  - name: Bass
    selected: true
    envelopes:
      - name: Volume
        points:
          - {time: 0.0, value: 0.0}
          - {time: 1.0, value: 1.0}
  - name: Target
    items:
      - position: 0
        length: 2
        take:
          midi: true
          ccs:
            - {ppq: 0, channel: 0, controller: 16, value: 64}
`

func TestLoadAppliesDefaults(t *testing.T) {
	p, err := Load([]byte(demoYAML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if p.Tempo != DefaultTempo {
		t.Errorf("Tempo = %v, want default %v", p.Tempo, DefaultTempo)
	}
	if p.TicksPerQuarter != DefaultTicksPerQuarter {
		t.Errorf("TicksPerQuarter = %v, want default %v", p.TicksPerQuarter, DefaultTicksPerQuarter)
	}
	if len(p.Tracks) != 2 {
		t.Fatalf("tracks = %d, want 2", len(p.Tracks))
	}
	if !p.Tracks[0].Selected {
		t.Error("Bass track should be selected")
	}
	if got := len(p.Tracks[0].Envelopes[0].Points); got != 2 {
		t.Errorf("envelope points = %d, want 2", got)
	}
	if !p.Tracks[1].Items[0].IsMIDI() {
		t.Error("Target item should be a MIDI take")
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", ":\n  - ["},
		{"negative tempo", "tempo: -10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load([]byte(tt.data)); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	p := New("roundtrip")
	tr := p.AddTrack("Lead")
	tr.Selected = true
	tr.Envelopes = append(tr.Envelopes, &Envelope{
		Name:   "Cutoff",
		Points: []Point{{Time: 0.5, Value: 0.25}},
	})
	it := tr.AddMIDIItem(1, 3)
	it.Take.InsertCC(CCEvent{PPQ: 480, Channel: 1, Controller: 17, Value: 90})
	it.Take.InsertNote(NoteEvent{PPQ: 0, EndPPQ: 240, Note: 64, Velocity: 100})

	path := filepath.Join(t.TempDir(), "p.yaml")
	if err := p.SaveFile(path); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	gt := got.FindTrack("Lead")
	if gt == nil || !gt.Selected {
		t.Fatal("loaded project lost the Lead track or its selection")
	}
	if gt.Envelopes[0].Points[0] != (Point{Time: 0.5, Value: 0.25}) {
		t.Errorf("envelope point = %v", gt.Envelopes[0].Points[0])
	}
	gi := gt.Items[0]
	if gi.Position != 1 || gi.Length != 3 || !gi.IsMIDI() {
		t.Errorf("item = %+v", gi)
	}
	if gi.Take.CCs[0] != (CCEvent{PPQ: 480, Channel: 1, Controller: 17, Value: 90}) {
		t.Errorf("cc = %+v", gi.Take.CCs[0])
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadFile() on missing file should fail")
	}
}
