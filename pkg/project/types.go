// Package project models a DAW-style project: an ordered list of tracks
// carrying automation envelopes and MIDI items.
package project

import "sort"

// DefaultTempo is the tempo assumed when a project file does not set one.
const DefaultTempo = 120.0

// DefaultTicksPerQuarter is the PPQ resolution assumed when unset.
const DefaultTicksPerQuarter = 480

// Point is a single envelope breakpoint: a project-relative time in
// seconds and a nominally normalized value.
type Point struct {
	Time  float64 `yaml:"time"`
	Value float64 `yaml:"value"`
}

// Envelope is an ordered sequence of automation breakpoints.
type Envelope struct {
	Name   string  `yaml:"name"`
	Points []Point `yaml:"points"`
}

// CCEvent is a MIDI control-change event. PPQ is in ticks relative to the
// start of the item owning the event.
type CCEvent struct {
	PPQ        int64 `yaml:"ppq"`
	Channel    uint8 `yaml:"channel"`
	Controller uint8 `yaml:"controller"`
	Value      uint8 `yaml:"value"`
	Selected   bool  `yaml:"selected,omitempty"`
	Muted      bool  `yaml:"muted,omitempty"`
}

// NoteEvent is a MIDI note with its start and end positions in ticks
// relative to the item start.
type NoteEvent struct {
	PPQ      int64 `yaml:"ppq"`
	EndPPQ   int64 `yaml:"endPpq"`
	Channel  uint8 `yaml:"channel"`
	Note     uint8 `yaml:"note"`
	Velocity uint8 `yaml:"velocity"`
	Selected bool  `yaml:"selected,omitempty"`
	Muted    bool  `yaml:"muted,omitempty"`
}

// SysExEvent is a raw system-exclusive payload, without the framing F0/F7
// bytes.
type SysExEvent struct {
	PPQ  int64  `yaml:"ppq"`
	Data []byte `yaml:"data"`
}

// Take holds the MIDI contents of an item. Events are kept in three
// ordered lists, the way they are traversed and copied.
type Take struct {
	MIDI  bool         `yaml:"midi"`
	CCs   []CCEvent    `yaml:"ccs,omitempty"`
	Notes []NoteEvent  `yaml:"notes,omitempty"`
	SysEx []SysExEvent `yaml:"sysex,omitempty"`
}

// Item is a media item on a track: a position and length in seconds plus
// one take.
type Item struct {
	Position float64 `yaml:"position"`
	Length   float64 `yaml:"length"`
	Take     *Take   `yaml:"take"`
}

// Track is a named track with automation envelopes and media items.
type Track struct {
	Name      string      `yaml:"name"`
	Selected  bool        `yaml:"selected,omitempty"`
	Envelopes []*Envelope `yaml:"envelopes,omitempty"`
	Items     []*Item     `yaml:"items,omitempty"`
}

// Project is the root of the model.
type Project struct {
	Name            string   `yaml:"name"`
	Tempo           float64  `yaml:"tempo"`
	TicksPerQuarter uint16   `yaml:"ticksPerQuarter"`
	Tracks          []*Track `yaml:"tracks"`

	undoDepth int
	undoStack []undoEntry
}

// New creates an empty project with default tempo and PPQ resolution.
func New(name string) *Project {
	return &Project{
		Name:            name,
		Tempo:           DefaultTempo,
		TicksPerQuarter: DefaultTicksPerQuarter,
	}
}

// IsMIDI reports whether the item owns a valid MIDI take.
func (i *Item) IsMIDI() bool {
	return i != nil && i.Take != nil && i.Take.MIDI
}

// End returns the item's end position in seconds.
func (i *Item) End() float64 {
	return i.Position + i.Length
}

// InsertCC appends a control-change event to the take.
func (t *Take) InsertCC(ev CCEvent) {
	t.CCs = append(t.CCs, ev)
}

// InsertNote appends a note event to the take.
func (t *Take) InsertNote(ev NoteEvent) {
	t.Notes = append(t.Notes, ev)
}

// InsertSysEx appends a sysex event to the take.
func (t *Take) InsertSysEx(ev SysExEvent) {
	t.SysEx = append(t.SysEx, ev)
}

// SortEvents orders each event list by tick position. Insertion order is
// preserved between events at the same tick.
func (t *Take) SortEvents() {
	sort.SliceStable(t.CCs, func(i, j int) bool { return t.CCs[i].PPQ < t.CCs[j].PPQ })
	sort.SliceStable(t.Notes, func(i, j int) bool { return t.Notes[i].PPQ < t.Notes[j].PPQ })
	sort.SliceStable(t.SysEx, func(i, j int) bool { return t.SysEx[i].PPQ < t.SysEx[j].PPQ })
}

// EventCount returns the total number of events in the take.
func (t *Take) EventCount() int {
	return len(t.CCs) + len(t.Notes) + len(t.SysEx)
}
