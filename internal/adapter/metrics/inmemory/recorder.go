package inmemory

import (
	"sync"

	"ouroverse/internal/domain/serpent"
)

type Snapshot struct {
	BiteTotal    uint64            `json:"bite_total"`
	ByOutcome    map[string]uint64 `json:"by_outcome"`
	AutoBites    uint64            `json:"auto_bites"`
	Purchases    uint64            `json:"purchases"`
	ByUpgrade    map[string]uint64 `json:"by_upgrade"`
	Sheds        uint64            `json:"sheds"`
	Ascensions   uint64            `json:"ascensions"`
	SaveFailures uint64            `json:"save_failures"`
}

type Recorder struct {
	mu           sync.Mutex
	byOutcome    map[string]uint64
	autoBites    uint64
	byUpgrade    map[string]uint64
	purchases    uint64
	sheds        uint64
	ascensions   uint64
	saveFailures uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byOutcome: map[string]uint64{},
		byUpgrade: map[string]uint64{},
	}
}

func (r *Recorder) RecordBite(outcome serpent.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byOutcome[string(outcome)]++
}

func (r *Recorder) RecordAutoBite() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.autoBites++
}

func (r *Recorder) RecordPurchase(upgradeID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.purchases++
	r.byUpgrade[upgradeID]++
}

func (r *Recorder) RecordShed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sheds++
}

func (r *Recorder) RecordAscension() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ascensions++
}

func (r *Recorder) RecordSaveFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveFailures++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		AutoBites:    r.autoBites,
		Purchases:    r.purchases,
		Sheds:        r.sheds,
		Ascensions:   r.ascensions,
		SaveFailures: r.saveFailures,
		ByOutcome:    make(map[string]uint64, len(r.byOutcome)),
		ByUpgrade:    make(map[string]uint64, len(r.byUpgrade)),
	}
	for k, v := range r.byOutcome {
		out.ByOutcome[k] = v
		out.BiteTotal += v
	}
	for k, v := range r.byUpgrade {
		out.ByUpgrade[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
