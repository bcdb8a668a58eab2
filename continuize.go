package carom

import (
	"fmt"

	"github.com/akmonengine/carom/actor"
	"github.com/akmonengine/carom/motion"
)

// Continuize resamples every ball's event-based trajectory onto a uniform
// time grid of step dt, for playback. Each sample is re-derived from the most
// recent event-boundary sample with the same closed-form kinematics that
// produced the authoritative history, so the result is exact up to floating
// point, not an integration. The event log and the per-ball histories are
// never modified.
func (s *System) Continuize(dt float64) (map[string][]actor.HistoryEntry, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("continuize: step %v must be positive", dt)
	}

	out := make(map[string][]actor.HistoryEntry, len(s.Balls))
	for id, b := range s.Balls {
		out[id] = continuizeBall(b, s.Cfg.Gravity, s.T, dt)
	}
	return out, nil
}

func continuizeBall(b *actor.Ball, g, end, dt float64) []actor.HistoryEntry {
	if len(b.History) == 0 {
		return nil
	}

	samples := make([]actor.HistoryEntry, 0, int(end/dt)+2)
	idx := 0
	for t := b.History[0].T; t <= end; t += dt {
		// Advance to the last event sample at or before t
		for idx+1 < len(b.History) && b.History[idx+1].T <= t {
			idx++
		}
		ref := b.History[idx]

		k, state := motion.Evolve(ref.State, ref.K, b.Params, g, t-ref.T)
		samples = append(samples, actor.HistoryEntry{T: t, K: k, State: state})
	}
	return samples
}
