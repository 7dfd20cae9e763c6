package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"ouroverse/internal/app/ports"
	"ouroverse/internal/domain/serpent"
)

var testNow = time.Unix(1_700_000_000, 0)

type scriptedRand struct {
	rolls []float64
	i     int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.rolls) == 0 {
		return 0.999
	}
	v := r.rolls[min(r.i, len(r.rolls)-1)]
	r.i++
	return v
}

func (r *scriptedRand) IntN(n int) int { return 0 }

type fakeSnapshotRepo struct {
	state    *serpent.RunState
	saves    int
	failSave bool
}

func (r *fakeSnapshotRepo) Load(_ context.Context) (*serpent.RunState, error) {
	if r.state == nil {
		return nil, ports.ErrNotFound
	}
	return r.state, nil
}

func (r *fakeSnapshotRepo) Save(_ context.Context, state *serpent.RunState, _ time.Time) error {
	if r.failSave {
		return errors.New("save failed")
	}
	r.state = state
	r.saves++
	return nil
}

func (r *fakeSnapshotRepo) Delete(_ context.Context) error {
	r.state = nil
	return nil
}

type fakeMetaRepo struct {
	rec ports.MetaRecord
}

func (r *fakeMetaRepo) Get(_ context.Context) (ports.MetaRecord, error) { return r.rec, nil }
func (r *fakeMetaRepo) Save(_ context.Context, rec ports.MetaRecord) error {
	r.rec = rec
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMetrics struct {
	bites        map[serpent.Outcome]int
	autoBites    int
	purchases    int
	sheds        int
	ascensions   int
	saveFailures int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{bites: map[serpent.Outcome]int{}}
}

func (m *fakeMetrics) RecordBite(outcome serpent.Outcome) { m.bites[outcome]++ }
func (m *fakeMetrics) RecordAutoBite()                    { m.autoBites++ }
func (m *fakeMetrics) RecordPurchase(string)              { m.purchases++ }
func (m *fakeMetrics) RecordShed()                        { m.sheds++ }
func (m *fakeMetrics) RecordAscension()                   { m.ascensions++ }
func (m *fakeMetrics) RecordSaveFailure()                 { m.saveFailures++ }

type timeSource struct {
	now time.Time
}

func (c *timeSource) Now() time.Time { return c.now }

func newTestSession(t *testing.T, repo *fakeSnapshotRepo, rolls ...float64) (*Session, *fakeMetaRepo, *fakeMetrics, *timeSource) {
	t.Helper()
	meta := &fakeMetaRepo{}
	metrics := newFakeMetrics()
	clock := &timeSource{now: testNow}
	s := &Session{
		Engine:    serpent.NewEngine(serpent.DefaultTuning(), &scriptedRand{rolls: rolls}),
		Snapshots: repo,
		Meta:      meta,
		Tx:        fakeTxManager{},
		Metrics:   metrics,
		Now:       clock.Now,
	}
	if err := s.Open(context.Background()); err != nil {
		t.Fatalf("open session: %v", err)
	}
	return s, meta, metrics, clock
}

func TestOpenRollsFreshRunWhenEmpty(t *testing.T) {
	repo := &fakeSnapshotRepo{}
	s, _, _, _ := newTestSession(t, repo)

	if repo.saves != 1 {
		t.Fatalf("expected the fresh run saved once, got=%d", repo.saves)
	}
	if s.state.RunID == "" {
		t.Fatalf("expected a rolled run")
	}
	if s.state.ArchetypeID == "" || s.state.CurseID == "" {
		t.Fatalf("expected archetype and curse rolled")
	}
}

func TestOpenReanchorsStaleSnapshot(t *testing.T) {
	eng := serpent.NewEngine(serpent.DefaultTuning(), &scriptedRand{})
	old := eng.NewRun(testNow.Add(-2*time.Hour), serpent.Carryover{})
	repo := &fakeSnapshotRepo{state: old}

	s, _, _, _ := newTestSession(t, repo)
	if !s.state.BeatOrigin.Equal(testNow) {
		t.Fatalf("expected stale beat origin re-anchored, got=%v", s.state.BeatOrigin)
	}
	if repo.saves != 0 {
		t.Fatalf("expected no save on restore, got=%d", repo.saves)
	}
}

func TestFeedPerfectPaysOut(t *testing.T) {
	s, _, metrics, clock := newTestSession(t, &fakeSnapshotRepo{})
	clock.now = testNow.Add(20 * time.Millisecond)

	resp, err := s.Feed(context.Background(), FeedRequest{})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if resp.Outcome != serpent.OutcomePerfect {
		t.Fatalf("expected perfect, got=%s", resp.Outcome)
	}
	// Coiled Striker: epp 2.0 from the starting grant, x1.5 from the
	// archetype's tier bonus once the combo is live.
	if resp.Earned < 2.99 || resp.Earned > 3.01 {
		t.Fatalf("expected ~3.0 essence, got=%v", resp.Earned)
	}
	if metrics.bites[serpent.OutcomePerfect] != 1 {
		t.Fatalf("expected perfect recorded, got=%v", metrics.bites)
	}
	if resp.State.ComboHits != 2 {
		t.Fatalf("expected 2 combo hits in the view, got=%d", resp.State.ComboHits)
	}
	if s.state.IdleSeconds != 0 {
		t.Fatalf("expected manual press to reset idle seconds, got=%v", s.state.IdleSeconds)
	}
}

func TestFeedWhileLockedIsSwallowed(t *testing.T) {
	s, _, metrics, clock := newTestSession(t, &fakeSnapshotRepo{})
	clock.now = testNow.Add(20 * time.Millisecond)
	if _, err := s.Feed(context.Background(), FeedRequest{}); err != nil {
		t.Fatalf("feed: %v", err)
	}

	clock.now = testNow.Add(40 * time.Millisecond)
	resp, err := s.Feed(context.Background(), FeedRequest{})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if resp.Outcome != serpent.OutcomeSwallowed {
		t.Fatalf("expected swallowed, got=%s", resp.Outcome)
	}
	if resp.Earned != 0 {
		t.Fatalf("expected nothing earned, got=%v", resp.Earned)
	}
	if metrics.bites[serpent.OutcomeSwallowed] != 1 {
		t.Fatalf("expected swallowed recorded, got=%v", metrics.bites)
	}
}

func TestFeedRejectsUnknownClientResult(t *testing.T) {
	s, _, _, _ := newTestSession(t, &fakeSnapshotRepo{})

	_, err := s.Feed(context.Background(), FeedRequest{ClientResult: "legendary"})
	if !errors.Is(err, ErrInvalidOutcome) {
		t.Fatalf("expected ErrInvalidOutcome, got=%v", err)
	}
}

func TestFeedAcceptsClientResult(t *testing.T) {
	s, _, _, clock := newTestSession(t, &fakeSnapshotRepo{})
	clock.now = testNow.Add(500 * time.Millisecond) // off-beat, server would miss

	resp, err := s.Feed(context.Background(), FeedRequest{ClientResult: serpent.OutcomeGood})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if resp.Outcome != serpent.OutcomeGood {
		t.Fatalf("expected the trusted outcome applied, got=%s", resp.Outcome)
	}
	if resp.Earned <= 0 {
		t.Fatalf("expected a good press to pay, got=%v", resp.Earned)
	}
}

func TestFeedMissStillReachesLedger(t *testing.T) {
	s, _, metrics, clock := newTestSession(t, &fakeSnapshotRepo{})
	clock.now = testNow.Add(500 * time.Millisecond) // off-beat

	resp, err := s.Feed(context.Background(), FeedRequest{})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if resp.Outcome != serpent.OutcomeMiss {
		t.Fatalf("expected miss, got=%s", resp.Outcome)
	}
	// A miss still counts as a press: it pays essence-per-bite (epp 2.0 from
	// the starting grant, x1.5 archetype tier bonus) and drives the press
	// total that the echo cadence is counted against.
	if resp.Earned < 2.99 || resp.Earned > 3.01 {
		t.Fatalf("expected ~3.0 essence, got=%v", resp.Earned)
	}
	if s.state.Stats.TotalBites != 1 {
		t.Fatalf("expected 1 total bite, got=%d", s.state.Stats.TotalBites)
	}
	if metrics.bites[serpent.OutcomeMiss] != 1 {
		t.Fatalf("expected miss recorded, got=%v", metrics.bites)
	}
}

func TestCatchUpClampsLongGap(t *testing.T) {
	s, _, _, clock := newTestSession(t, &fakeSnapshotRepo{})
	rate := s.state.IdleIncomeRate
	if rate <= 0 {
		t.Fatalf("expected idle income, got=%v", rate)
	}

	clock.now = testNow.Add(10 * time.Minute)
	view, err := s.State(context.Background())
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	want := rate * 60 // clamped to one minute of catch-up
	if view.Essence < want*0.99 || view.Essence > want*1.01 {
		t.Fatalf("expected ~%v essence after clamped catch-up, got=%v", want, view.Essence)
	}
	if s.state.IdleSeconds != 60 {
		t.Fatalf("expected idle seconds clamped to 60, got=%v", s.state.IdleSeconds)
	}
}

func TestAutosaveOnInterval(t *testing.T) {
	repo := &fakeSnapshotRepo{}
	s, _, _, clock := newTestSession(t, repo)

	clock.now = testNow.Add(10 * time.Second)
	if _, err := s.State(context.Background()); err != nil {
		t.Fatalf("state: %v", err)
	}
	if repo.saves != 1 {
		t.Fatalf("expected no autosave before the interval, got=%d", repo.saves)
	}

	clock.now = testNow.Add(40 * time.Second)
	if _, err := s.State(context.Background()); err != nil {
		t.Fatalf("state: %v", err)
	}
	if repo.saves != 2 {
		t.Fatalf("expected an autosave after the interval, got=%d", repo.saves)
	}
}

func TestBuyRejections(t *testing.T) {
	s, _, _, _ := newTestSession(t, &fakeSnapshotRepo{})
	ctx := context.Background()

	if _, err := s.Buy(ctx, "no_such_upgrade"); !errors.Is(err, ErrUnknownUpgrade) {
		t.Fatalf("expected ErrUnknownUpgrade, got=%v", err)
	}
	if _, err := s.Buy(ctx, "stellar_coils"); !errors.Is(err, ErrUpgradeLocked) {
		t.Fatalf("expected ErrUpgradeLocked, got=%v", err)
	}
	s.state.Essence = 0
	if _, err := s.Buy(ctx, "fang_sharpening"); !errors.Is(err, ErrCannotAfford) {
		t.Fatalf("expected ErrCannotAfford, got=%v", err)
	}
}

func TestBuyPersistsAndRecords(t *testing.T) {
	repo := &fakeSnapshotRepo{}
	s, _, metrics, _ := newTestSession(t, repo)
	s.state.Essence = 100

	view, err := s.Buy(context.Background(), "fang_sharpening")
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	var bought UpgradeView
	for _, u := range view.Upgrades {
		if u.ID == "fang_sharpening" {
			bought = u
		}
	}
	// Coiled Striker starts at level 2.
	if bought.Level != 3 {
		t.Fatalf("expected level 3 after purchase, got=%d", bought.Level)
	}
	if metrics.purchases != 1 {
		t.Fatalf("expected purchase recorded, got=%d", metrics.purchases)
	}
	if repo.saves != 2 {
		t.Fatalf("expected purchase persisted, got=%d saves", repo.saves)
	}
}

func TestShedFlow(t *testing.T) {
	s, _, metrics, _ := newTestSession(t, &fakeSnapshotRepo{})
	ctx := context.Background()

	if _, err := s.Shed(ctx); !errors.Is(err, ErrShedUnavailable) {
		t.Fatalf("expected ErrShedUnavailable, got=%v", err)
	}

	s.state.Essence = 1170
	s.state.SnakeLength = 120
	resp, err := s.Shed(ctx)
	if err != nil {
		t.Fatalf("shed: %v", err)
	}
	if resp.ScalesEarned != 10 {
		t.Fatalf("expected 10 scales, got=%v", resp.ScalesEarned)
	}
	if resp.State.StageIndex != 1 {
		t.Fatalf("expected stage 1, got=%d", resp.State.StageIndex)
	}
	if metrics.sheds != 1 {
		t.Fatalf("expected shed recorded, got=%d", metrics.sheds)
	}
}

func TestAscendBanksKnowledgeAndRollsFresh(t *testing.T) {
	s, meta, metrics, _ := newTestSession(t, &fakeSnapshotRepo{})
	ctx := context.Background()

	if _, err := s.Ascend(ctx, AscendRequest{}); !errors.Is(err, ErrAscendUnavailable) {
		t.Fatalf("expected ErrAscendUnavailable, got=%v", err)
	}

	oldID := s.state.RunID
	s.state.StageIndex = 9
	s.state.SnakeLength = 1_000_000
	s.state.Stats.PeakLength = 1_000_000
	s.state.Stats.Sheds = 9
	s.state.Scales = 50_000

	resp, err := s.Ascend(ctx, AscendRequest{Purchases: []string{"serpent_memory"}})
	if err != nil {
		t.Fatalf("ascend: %v", err)
	}
	// floor(log2(1_000_000)) = 19, plus 9 sheds.
	if resp.KnowledgeEarned != 28 {
		t.Fatalf("expected 28 knowledge, got=%d", resp.KnowledgeEarned)
	}
	if meta.rec.Knowledge != 28 || meta.rec.RunsFinished != 1 {
		t.Fatalf("expected meta banked, got=%+v", meta.rec)
	}
	if s.state.RunID == oldID {
		t.Fatalf("expected a fresh run")
	}
	if s.state.AscensionLevels["serpent_memory"] != 1 {
		t.Fatalf("expected the ascension purchase carried, got=%v", s.state.AscensionLevels)
	}
	if s.state.Essence != 50 {
		t.Fatalf("expected the starting essence bonus applied, got=%v", s.state.Essence)
	}
	if metrics.ascensions != 1 {
		t.Fatalf("expected ascension recorded, got=%d", metrics.ascensions)
	}
}

func TestAscendRejectsBadPurchases(t *testing.T) {
	s, _, _, _ := newTestSession(t, &fakeSnapshotRepo{})
	s.state.StageIndex = 9
	s.state.SnakeLength = 1_000_000
	ctx := context.Background()

	if _, err := s.Ascend(ctx, AscendRequest{Purchases: []string{"bogus"}}); !errors.Is(err, ErrUnknownUpgrade) {
		t.Fatalf("expected ErrUnknownUpgrade, got=%v", err)
	}
	if _, err := s.Ascend(ctx, AscendRequest{Purchases: []string{"serpent_memory"}}); !errors.Is(err, ErrCannotAfford) {
		t.Fatalf("expected ErrCannotAfford, got=%v", err)
	}
}

func TestStartFrenzyOnlyOnce(t *testing.T) {
	s, _, _, _ := newTestSession(t, &fakeSnapshotRepo{})
	ctx := context.Background()

	view, err := s.StartFrenzy(ctx)
	if err != nil {
		t.Fatalf("start frenzy: %v", err)
	}
	if !view.FrenzyActive {
		t.Fatalf("expected frenzy active")
	}
	if _, err := s.StartFrenzy(ctx); !errors.Is(err, ErrFrenzyActive) {
		t.Fatalf("expected ErrFrenzyActive, got=%v", err)
	}
}

func TestSaveReportsProjectedKnowledge(t *testing.T) {
	s, _, _, clock := newTestSession(t, &fakeSnapshotRepo{})
	s.state.Stats.PeakLength = 1024
	s.state.Stats.Sheds = 2
	clock.now = testNow.Add(5 * time.Second)

	resp, err := s.Save(context.Background())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if resp.ProjectedKnowledge != 12 {
		t.Fatalf("expected projected knowledge 12, got=%d", resp.ProjectedKnowledge)
	}
	if !resp.SavedAt.Equal(clock.now) {
		t.Fatalf("expected saved-at %v, got=%v", clock.now, resp.SavedAt)
	}
}

func TestSaveFailureIsRecorded(t *testing.T) {
	repo := &fakeSnapshotRepo{}
	s, _, metrics, _ := newTestSession(t, repo)
	repo.failSave = true

	if _, err := s.Save(context.Background()); err == nil {
		t.Fatalf("expected save error")
	}
	if metrics.saveFailures != 1 {
		t.Fatalf("expected save failure recorded, got=%d", metrics.saveFailures)
	}
}
