package project

import "math"

// TimeToPPQ converts a time in seconds to ticks at the project's tempo
// and PPQ resolution. The project carries a single constant tempo.
func (p *Project) TimeToPPQ(seconds float64) int64 {
	tempo := p.Tempo
	if tempo <= 0 {
		tempo = DefaultTempo
	}
	tpq := p.TicksPerQuarter
	if tpq == 0 {
		tpq = DefaultTicksPerQuarter
	}
	return int64(math.Round(seconds * tempo / 60.0 * float64(tpq)))
}

// PPQToTime converts ticks back to seconds.
func (p *Project) PPQToTime(ticks int64) float64 {
	tempo := p.Tempo
	if tempo <= 0 {
		tempo = DefaultTempo
	}
	tpq := p.TicksPerQuarter
	if tpq == 0 {
		tpq = DefaultTicksPerQuarter
	}
	return float64(ticks) * 60.0 / (tempo * float64(tpq))
}

// ItemPPQ converts a project-relative time to ticks relative to the
// item's start, the position space item events live in.
func (p *Project) ItemPPQ(item *Item, seconds float64) int64 {
	return p.TimeToPPQ(seconds - item.Position)
}
