package engine

import (
	"errors"
	"testing"

	"github.com/harlanmb/env2cc/pkg/project"
)

func TestRunFullPipeline(t *testing.T) {
	p := demoProject()
	second := p.AddTrack("Lead")
	second.Selected = true
	second.Envelopes = append(second.Envelopes, &project.Envelope{
		Name:   "Cutoff",
		Points: []project.Point{{Time: 1.5, Value: 0.75}},
	})

	report, err := Run(p, DefaultOptions())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	target := p.FindTrack("Target")
	if target == nil {
		t.Fatal("destination track missing after run")
	}
	if len(target.Items) != 1 {
		t.Fatalf("items after run = %d, want the single merged item", len(target.Items))
	}
	if got := target.Items[0].Take.EventCount(); got != 4 {
		t.Errorf("merged events = %d, want 4", got)
	}
	if report.Merged == nil {
		t.Fatal("report.Merged is nil")
	}
	if report.Merged.Events != 4 {
		t.Errorf("report.Merged.Events = %d, want 4", report.Merged.Events)
	}
}

func TestRunIsOneUndoAction(t *testing.T) {
	p := demoProject()
	tracksBefore := len(p.Tracks)

	if _, err := Run(p, DefaultOptions()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !p.CanUndo() {
		t.Fatal("run should leave one closed undo bracket")
	}
	if !p.Undo() {
		t.Fatal("Undo() = false")
	}
	if len(p.Tracks) != tracksBefore {
		t.Errorf("tracks after undo = %d, want %d", len(p.Tracks), tracksBefore)
	}
	if p.FindTrack("Target") != nil {
		t.Error("undo should remove the created destination track")
	}
}

func TestRunFailureStillClosesBracket(t *testing.T) {
	p := project.New("demo") // nothing selected

	_, err := Run(p, DefaultOptions())
	if !errors.Is(err, ErrNoSelection) {
		t.Fatalf("error = %v, want ErrNoSelection", err)
	}
	if !p.CanUndo() {
		t.Error("bracket should be closed even when the run fails")
	}
}

func TestRunDefaultsEmptyTargetName(t *testing.T) {
	p := demoProject()

	if _, err := Run(p, Options{BaseCC: 16}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if p.FindTrack(DefaultTargetTrack) == nil {
		t.Errorf("empty target option should fall back to %q", DefaultTargetTrack)
	}
}
