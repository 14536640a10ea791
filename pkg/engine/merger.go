package engine

import (
	"fmt"

	"github.com/harlanmb/env2cc/pkg/project"
)

// Merge combines every MIDI item on the named track into a single item
// spanning their union and deletes the originals. Event positions are
// re-based from each source item's start to the merged item's start, so
// the result is correct even when the span does not begin at zero.
// Non-MIDI items on the track are left untouched.
func Merge(p *project.Project, trackName string) (*project.Item, error) {
	tr := p.FindTrack(trackName)
	if tr == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoTargetTrack, trackName)
	}

	var sources []int
	for i, it := range tr.Items {
		if it.IsMIDI() {
			sources = append(sources, i)
		}
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoMIDIItems, trackName)
	}

	minPos := tr.Items[sources[0]].Position
	maxPos := tr.Items[sources[0]].End()
	for _, i := range sources[1:] {
		it := tr.Items[i]
		if it.Position < minPos {
			minPos = it.Position
		}
		if it.End() > maxPos {
			maxPos = it.End()
		}
	}

	merged := tr.AddMIDIItem(minPos, maxPos-minPos)

	for _, i := range sources {
		src := tr.Items[i]
		offset := p.TimeToPPQ(src.Position - minPos)

		for _, cc := range src.Take.CCs {
			cc.PPQ += offset
			merged.Take.InsertCC(cc)
		}
		for _, note := range src.Take.Notes {
			note.PPQ += offset
			note.EndPPQ += offset
			merged.Take.InsertNote(note)
		}
		for _, sx := range src.Take.SysEx {
			merged.Take.InsertSysEx(project.SysExEvent{
				PPQ:  sx.PPQ + offset,
				Data: append([]byte(nil), sx.Data...),
			})
		}
	}

	merged.Take.SortEvents()

	// Reverse index order keeps the remaining indices stable while
	// deleting.
	for i := len(sources) - 1; i >= 0; i-- {
		tr.DeleteItem(sources[i])
	}

	return merged, nil
}
