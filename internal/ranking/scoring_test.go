package ranking

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/jonathan/teammatch/internal/matching"
	"github.com/jonathan/teammatch/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreAll_SkipsMalformedCandidate(t *testing.T) {
	engine, err := matching.NewEngine(matching.DefaultWeights())
	require.NoError(t, err)

	target := &types.Target{ID: "p1"}
	target.RequiredSkills = []string{"python", "react"}
	candidates := []*types.Profile{
		{ID: "u1", Skills: []string{"python"}, ExperienceYears: types.YearsOf(2)},
		{ID: "u2", Skills: []string{"python", "react"}, ExperienceYears: types.Years{Raw: "ten-ish"}},
		{ID: "u3", Skills: []string{"python", "react"}, ExperienceYears: types.YearsOf(4)},
	}

	var skipped []int
	matches, err := ScoreAll(context.Background(), len(candidates), 2,
		func(i int) (*types.Match, error) { return engine.Match(candidates[i], target) },
		func(i int, err error) {
			assert.True(t, matching.IsScoreError(err))
			skipped = append(skipped, i)
		})

	require.NoError(t, err)
	assert.Equal(t, []int{1}, skipped)
	require.Len(t, matches, 2)

	ranked := Rank(matches, 0)
	assert.Equal(t, "u3", ranked[0].CandidateID)
	assert.Equal(t, "u1", ranked[1].CandidateID)
}

func TestScoreAll_PreservesInputOrder(t *testing.T) {
	n := 50
	matches, err := ScoreAll(context.Background(), n, 8, func(i int) (*types.Match, error) {
		return &types.Match{TargetID: string(rune('A' + i%26)), Score: float64(i)}, nil
	}, nil)

	require.NoError(t, err)
	require.Len(t, matches, n)
	for i, m := range matches {
		assert.Equal(t, float64(i), m.Score)
	}
}

func TestScoreAll_HardErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	_, err := ScoreAll(context.Background(), 4, 1, func(i int) (*types.Match, error) {
		if i == 2 {
			return nil, boom
		}
		return &types.Match{}, nil
	}, nil)

	assert.ErrorIs(t, err, boom)
}

func TestScoreAll_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	_, err := ScoreAll(ctx, 10, 2, func(i int) (*types.Match, error) {
		calls.Add(1)
		return &types.Match{}, nil
	}, nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), calls.Load())
}

func TestScoreAll_Empty(t *testing.T) {
	matches, err := ScoreAll(context.Background(), 0, 4, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, matches)
}
