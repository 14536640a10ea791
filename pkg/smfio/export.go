// Package smfio converts project tracks to and from Standard MIDI Files.
package smfio

import (
	"bytes"
	"fmt"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/harlanmb/env2cc/pkg/project"
)

type timedMessage struct {
	tick uint32
	msg  smf.Message
}

// ExportTrack renders the named track's MIDI items into a single-track
// SMF. Event positions are item-relative ticks; they are shifted by each
// item's project offset so the file plays back at the arranged times.
// Muted events are not exported.
func ExportTrack(p *project.Project, trackName string) ([]byte, error) {
	tr := p.FindTrack(trackName)
	if tr == nil {
		return nil, fmt.Errorf("track %q not found", trackName)
	}

	tpq := p.TicksPerQuarter
	if tpq == 0 {
		tpq = project.DefaultTicksPerQuarter
	}
	tempo := p.Tempo
	if tempo <= 0 {
		tempo = project.DefaultTempo
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(tpq)

	var track smf.Track

	// Track name meta event (FF 03).
	if tr.Name != "" {
		name := []byte(tr.Name)
		track.Add(0, smf.Message(append([]byte{0xFF, 0x03, byte(len(name))}, name...)))
	}

	// Tempo meta event (FF 51 03).
	microsecondsPerBeat := uint32(60000000.0 / tempo)
	track.Add(0, smf.Message([]byte{
		0xFF, 0x51, 0x03,
		byte(microsecondsPerBeat >> 16),
		byte(microsecondsPerBeat >> 8),
		byte(microsecondsPerBeat),
	}))

	// Time signature 4/4 (FF 58 04).
	track.Add(0, smf.Message([]byte{0xFF, 0x58, 0x04, 0x04, 0x02, 0x18, 0x08}))

	var events []timedMessage
	add := func(tick int64, msg smf.Message) {
		if tick < 0 {
			tick = 0
		}
		events = append(events, timedMessage{tick: uint32(tick), msg: msg})
	}

	for _, it := range tr.Items {
		if !it.IsMIDI() {
			continue
		}
		base := p.TimeToPPQ(it.Position)

		for _, cc := range it.Take.CCs {
			if cc.Muted {
				continue
			}
			add(base+cc.PPQ, smf.Message(midi.ControlChange(cc.Channel, cc.Controller, cc.Value)))
		}
		for _, note := range it.Take.Notes {
			if note.Muted {
				continue
			}
			add(base+note.PPQ, smf.Message(midi.NoteOn(note.Channel, note.Note, note.Velocity)))
			add(base+note.EndPPQ, smf.Message(midi.NoteOff(note.Channel, note.Note)))
		}
		for _, sx := range it.Take.SysEx {
			add(base+sx.PPQ, smf.Message(midi.SysEx(sx.Data)))
		}
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].tick < events[j].tick })

	var currentTick uint32
	for _, ev := range events {
		track.Add(ev.tick-currentTick, ev.msg)
		currentTick = ev.tick
	}

	track.Close(0)
	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("failed to add track: %w", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}
	return buf.Bytes(), nil
}
