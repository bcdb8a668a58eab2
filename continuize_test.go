package carom

import (
	"testing"

	"github.com/akmonengine/carom/actor"
	"github.com/akmonengine/carom/motion"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContinuize_UniformGrid(t *testing.T) {
	s := bigSystem(t)
	s.AddBall(actor.NewBall("cue", actor.DefaultBallParams(), 25, 25))

	_, err := s.Simulate(SimulateOptions{
		Strike: &actor.Strike{BallID: "cue", V0: 0.2},
	})
	require.NoError(t, err)

	const dt = 0.05
	traj, err := s.Continuize(dt)
	require.NoError(t, err)

	samples := traj["cue"]
	require.NotEmpty(t, samples)

	for i, sample := range samples {
		assert.InDelta(t, float64(i)*dt, sample.T, 1e-12)
		assert.LessOrEqual(t, sample.T, s.T)
	}
	// Dense enough to reach the end of the shot
	assert.Greater(t, samples[len(samples)-1].T, s.T-dt)
}

func TestContinuize_MatchesClosedForm(t *testing.T) {
	// A single struck ball only ever transitions, so its entire trajectory is
	// one closed-form evolution from the post-strike state. Resampling through
	// the piecewise history must reproduce it exactly.
	s := bigSystem(t)
	b := actor.NewBall("cue", actor.DefaultBallParams(), 25, 25)
	s.AddBall(b)

	_, err := s.Simulate(SimulateOptions{
		Strike: &actor.Strike{BallID: "cue", V0: 0.2, B: 0.1},
	})
	require.NoError(t, err)

	// The last history entry at t=0 carries the post-strike kinematics
	var ref actor.HistoryEntry
	for _, h := range b.History {
		if h.T == 0 {
			ref = h
		}
	}
	require.Equal(t, actor.StateSliding, ref.State)

	traj, err := s.Continuize(0.05)
	require.NoError(t, err)

	approx := cmpopts.EquateApprox(0, 1e-9)
	for _, sample := range traj["cue"] {
		k, state := motion.Evolve(ref.State, ref.K, b.Params, s.Cfg.Gravity, sample.T)
		want := actor.HistoryEntry{T: sample.T, K: k, State: state}
		if diff := cmp.Diff(want, sample, approx); diff != "" {
			t.Errorf("sample at t=%v diverges (-want +got):\n%s", sample.T, diff)
		}
	}
}

func TestContinuize_DoesNotMutate(t *testing.T) {
	s := bigSystem(t)
	b := actor.NewBall("cue", actor.DefaultBallParams(), 25, 25)
	s.AddBall(b)

	_, err := s.Simulate(SimulateOptions{
		Strike: &actor.Strike{BallID: "cue", V0: 0.2},
	})
	require.NoError(t, err)

	events := len(s.Events)
	history := len(b.History)
	k := b.K

	_, err = s.Continuize(0.1)
	require.NoError(t, err)

	assert.Equal(t, events, len(s.Events))
	assert.Equal(t, history, len(b.History))
	assert.Equal(t, k, b.K)
}

func TestContinuize_RejectsBadStep(t *testing.T) {
	s := bigSystem(t)

	for _, dt := range []float64{0, -0.1} {
		if _, err := s.Continuize(dt); err == nil {
			t.Errorf("step %v accepted", dt)
		}
	}
}
