package serpent

import (
	"time"
)

// stubRand replays a fixed sequence of rolls; once exhausted it returns the
// final value forever. IntN always picks the first element.
type stubRand struct {
	rolls []float64
	i     int
}

func (r *stubRand) Float64() float64 {
	if len(r.rolls) == 0 {
		return 0.999 // fail every probabilistic roll by default
	}
	v := r.rolls[min(r.i, len(r.rolls)-1)]
	r.i++
	return v
}

func (r *stubRand) IntN(n int) int { return 0 }

func testEngine(rolls ...float64) Engine {
	return NewEngine(DefaultTuning(), &stubRand{rolls: rolls})
}

var testNow = time.Unix(1_700_000_000, 0)

// newTestState builds a neutral run: no archetype, no curse, beat anchored
// at testNow with base BPM.
func newTestState() *RunState {
	return &RunState{
		RunID:                 "test-run",
		SnakeLength:           3,
		ComboMultiplier:       1.0,
		BeatOrigin:            testNow,
		LastScoredBeatIndex:   -1,
		LastAutoBiteBeatIndex: -1,
		VenomRushEndBeat:      -1,
		MouthOpen:             true,
		UpgradeLevels:         map[string]int{},
		AscensionLevels:       map[string]int{},
		EssencePerBite:        1.0,
		Stats:                 RunStats{ComboHigh: 1.0, RunStartTime: testNow},
	}
}

func almostEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}
