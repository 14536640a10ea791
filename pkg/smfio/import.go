package smfio

import (
	"bytes"
	"fmt"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/harlanmb/env2cc/pkg/project"
)

// ImportItem parses SMF data and appends its CC, note and sysex events as
// one new MIDI item at the start of the named track, creating the track
// when absent. Tick positions are rescaled from the file's resolution to
// the project's.
func ImportItem(p *project.Project, trackName string, data []byte) (*project.Item, error) {
	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse MIDI: %w", err)
	}

	fileTPQ := uint16(project.DefaultTicksPerQuarter)
	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		fileTPQ = mt.Resolution()
	}
	projTPQ := p.TicksPerQuarter
	if projTPQ == 0 {
		projTPQ = project.DefaultTicksPerQuarter
	}
	rescale := func(tick int64) int64 {
		return tick * int64(projTPQ) / int64(fileTPQ)
	}

	take := &project.Take{MIDI: true}
	var maxTick int64

	type noteKey struct {
		channel uint8
		note    uint8
	}
	type openNote struct {
		tick     int64
		velocity uint8
	}

	for _, track := range s.Tracks {
		var currentTick int64
		open := make(map[noteKey][]openNote)

		for _, ev := range track {
			currentTick += int64(ev.Delta)
			if currentTick > maxTick {
				maxTick = currentTick
			}

			var ch, key, vel, cc, val uint8
			var payload []byte
			msg := ev.Message

			switch {
			case msg.GetControlChange(&ch, &cc, &val):
				take.InsertCC(project.CCEvent{
					PPQ:        rescale(currentTick),
					Channel:    ch,
					Controller: cc,
					Value:      val,
				})
			case msg.GetNoteStart(&ch, &key, &vel):
				k := noteKey{channel: ch, note: key}
				open[k] = append(open[k], openNote{tick: currentTick, velocity: vel})
			case msg.GetNoteEnd(&ch, &key):
				k := noteKey{channel: ch, note: key}
				if stack := open[k]; len(stack) > 0 {
					start := stack[len(stack)-1]
					open[k] = stack[:len(stack)-1]
					take.InsertNote(project.NoteEvent{
						PPQ:      rescale(start.tick),
						EndPPQ:   rescale(currentTick),
						Channel:  ch,
						Note:     key,
						Velocity: start.velocity,
					})
				}
			case msg.GetSysEx(&payload):
				take.InsertSysEx(project.SysExEvent{
					PPQ:  rescale(currentTick),
					Data: append([]byte(nil), payload...),
				})
			}
		}

		// Notes never closed run to the end of the file.
		for k, stack := range open {
			for _, start := range stack {
				take.InsertNote(project.NoteEvent{
					PPQ:      rescale(start.tick),
					EndPPQ:   rescale(maxTick),
					Channel:  k.channel,
					Note:     k.note,
					Velocity: start.velocity,
				})
			}
		}
	}

	take.SortEvents()

	tr := p.EnsureTrack(trackName)
	item := &project.Item{
		Position: 0,
		Length:   p.PPQToTime(rescale(maxTick)),
		Take:     take,
	}
	tr.Items = append(tr.Items, item)
	return item, nil
}
