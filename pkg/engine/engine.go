// Package engine converts per-track automation envelopes into MIDI CC
// events on a destination track and merges the resulting items.
package engine

import (
	"errors"

	"github.com/harlanmb/env2cc/pkg/project"
)

// Failure kinds surfaced by the mapper and merger.
var (
	ErrNoSelection     = errors.New("no tracks selected")
	ErrNoTargetTrack   = errors.New("destination track not found")
	ErrNoMIDIItems     = errors.New("no MIDI items on destination track")
	ErrControllerRange = errors.New("controller number exceeds 127")
)

// DefaultBaseCC is the first controller number assigned when none is
// configured.
const DefaultBaseCC = 16

// DefaultTargetTrack is the destination track name.
const DefaultTargetTrack = "Target"

// Options configures a mapping run.
type Options struct {
	// BaseCC is the controller number assigned to the first mapped
	// envelope; later envelopes count up from it.
	BaseCC uint8
	// TargetTrack is the destination track name, created when absent.
	TargetTrack string
}

// DefaultOptions returns the standard run configuration.
func DefaultOptions() Options {
	return Options{
		BaseCC:      DefaultBaseCC,
		TargetTrack: DefaultTargetTrack,
	}
}

func (o Options) withDefaults() Options {
	if o.TargetTrack == "" {
		o.TargetTrack = DefaultTargetTrack
	}
	return o
}

// TrackSkip records a selected track the mapper passed over and why.
type TrackSkip struct {
	Track  string
	Reason string
}

// MergeInfo describes the merged item produced at the end of a run.
type MergeInfo struct {
	Start  float64
	End    float64
	Events int
}

// Report summarizes a mapping run.
type Report struct {
	ItemsCreated   int
	EventsInserted int
	Controllers    []uint8
	Skips          []TrackSkip
	Merged         *MergeInfo
}

// Run executes the full pipeline inside one undo bracket: ensure the
// destination track, map every selected track's envelopes to CC events,
// then merge the destination track's MIDI items into a single item. A
// mapping failure aborts the run before the merge; the bracket is closed
// either way so the caller can revert the whole run in one action.
func Run(p *project.Project, opts Options) (*Report, error) {
	opts = opts.withDefaults()

	p.BeginUndoBlock("Map envelopes to CC")
	defer p.EndUndoBlock()

	report, err := MapEnvelopes(p, opts)
	if err != nil {
		return report, err
	}

	merged, err := Merge(p, opts.TargetTrack)
	if err != nil {
		return report, err
	}
	report.Merged = &MergeInfo{
		Start:  merged.Position,
		End:    merged.End(),
		Events: merged.Take.EventCount(),
	}
	return report, nil
}
