package engine

import (
	"fmt"
	"math"

	"github.com/harlanmb/env2cc/pkg/project"
)

// MapEnvelopes converts automation envelopes on every selected track into
// MIDI CC events on the destination track, creating it when absent.
//
// Each selected track with at least one envelope gets one MIDI item
// spanning the whole project. Every breakpoint becomes one CC event;
// controller numbers are assigned sequentially from opts.BaseCC, one per
// envelope with at least one point, shared across tracks and scoped to
// this call. The channel cycles with the controller offset. Envelope
// values are clamped to [0,1] before scaling to the 7-bit range.
func MapEnvelopes(p *project.Project, opts Options) (*Report, error) {
	opts = opts.withDefaults()

	selected := p.SelectedTracks()
	if len(selected) == 0 {
		return nil, ErrNoSelection
	}

	target := p.EnsureTrack(opts.TargetTrack)
	length := p.Length()
	report := &Report{}
	counter := 0

	for _, tr := range selected {
		if len(tr.Envelopes) == 0 {
			report.Skips = append(report.Skips, TrackSkip{Track: tr.Name, Reason: "no envelopes"})
			continue
		}

		item := target.AddMIDIItem(0, length)
		if !item.IsMIDI() {
			// Roll the item back before reporting, so a failed
			// track leaves nothing behind.
			target.RemoveItem(item)
			report.Skips = append(report.Skips, TrackSkip{Track: tr.Name, Reason: "item take is not MIDI"})
			continue
		}
		report.ItemsCreated++

		for _, env := range tr.Envelopes {
			if len(env.Points) == 0 {
				continue
			}

			controller := int(opts.BaseCC) + counter
			if controller > 127 {
				return report, fmt.Errorf("envelope %q on track %q: %w", env.Name, tr.Name, ErrControllerRange)
			}
			channel := uint8((controller - int(opts.BaseCC)) % 16)

			for _, pt := range env.Points {
				item.Take.InsertCC(project.CCEvent{
					PPQ:        p.ItemPPQ(item, pt.Time),
					Channel:    channel,
					Controller: uint8(controller),
					Value:      scaleValue(pt.Value),
				})
				report.EventsInserted++
			}

			report.Controllers = append(report.Controllers, uint8(controller))
			counter++
		}

		item.Take.SortEvents()
	}

	return report, nil
}

// scaleValue clamps a breakpoint value to [0,1] and scales it into the
// 7-bit MIDI range.
func scaleValue(v float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(math.Floor(v * 127))
}
