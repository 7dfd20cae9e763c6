package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"ouroverse/internal/app/ports"
	"ouroverse/internal/domain/catalog"
	"ouroverse/internal/domain/serpent"
)

var (
	ErrInvalidOutcome    = errors.New("invalid client outcome")
	ErrUnknownUpgrade    = errors.New("unknown upgrade")
	ErrUpgradeMaxed      = errors.New("upgrade maxed")
	ErrUpgradeLocked     = errors.New("upgrade locked")
	ErrCannotAfford      = errors.New("cannot afford upgrade")
	ErrShedUnavailable   = errors.New("shed unavailable")
	ErrAscendUnavailable = errors.New("ascension unavailable")
	ErrFrenzyActive      = errors.New("frenzy already active")
)

// Session owns the single active run. Every operation funnels through one
// mutex; before the operation body runs, the session lazily catches the
// state up to now, so no background ticker is needed. The catch-up window is
// clamped so a long pause cannot replay unbounded progress.
type Session struct {
	Engine    serpent.Engine
	Snapshots ports.RunSnapshotRepository
	Meta      ports.MetaRepository
	Tx        ports.TxManager
	Metrics   ports.SessionMetrics
	Now       func() time.Time

	mu       sync.Mutex
	state    *serpent.RunState
	lastTick time.Time
	lastSave time.Time
}

// Open loads the persisted run or rolls a fresh one when none exists.
func (s *Session) Open(ctx context.Context) error {
	now := s.now()

	st, err := s.Snapshots.Load(ctx)
	switch {
	case err == nil:
		s.Engine.Restore(st, now)
	case errors.Is(err, ports.ErrNotFound):
		st = s.Engine.NewRun(now, serpent.Carryover{})
		if err := s.Snapshots.Save(ctx, st, now); err != nil {
			return err
		}
	default:
		return err
	}

	s.mu.Lock()
	s.state = st
	s.lastTick = now
	s.lastSave = now
	s.mu.Unlock()
	return nil
}

// State catches the run up to now and returns the full view.
func (s *Session) State(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.catchUp(ctx, now)
	return s.view(now), nil
}

type FeedRequest struct {
	// ClientResult is an optional pre-evaluated outcome from a trusted
	// client; empty means the server evaluates the press itself.
	ClientResult serpent.Outcome
}

type FeedResponse struct {
	Outcome serpent.Outcome `json:"outcome"`
	Earned  float64         `json:"earned"`
	State   View            `json:"state"`
}

// Feed handles one press. Every outcome the resolver emits reaches the
// economy ledger; only swallowed presses earn nothing.
func (s *Session) Feed(ctx context.Context, req FeedRequest) (FeedResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.catchUp(ctx, now)

	st := s.state
	st.IdleSeconds = 0

	var outcome serpent.Outcome
	if req.ClientResult != "" {
		switch req.ClientResult {
		case serpent.OutcomePerfect, serpent.OutcomeGood, serpent.OutcomeMiss:
		default:
			return FeedResponse{}, ErrInvalidOutcome
		}
		outcome = s.Engine.ApplyClientOutcome(st, req.ClientResult, now)
	} else {
		outcome = s.Engine.AttemptBite(st, now)
	}

	var earned float64
	if outcome.Scored() {
		// Refold first so the press pays at the post-resolution multiplier.
		s.Engine.ComputeDerived(st, now)
		earned = s.Engine.HandlePress(st)
	}
	if s.Metrics != nil {
		s.Metrics.RecordBite(outcome)
	}

	return FeedResponse{Outcome: outcome, Earned: earned, State: s.view(now)}, nil
}

// Buy purchases one level of a run upgrade.
func (s *Session) Buy(ctx context.Context, upgradeID string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.catchUp(ctx, now)

	st := s.state
	def, ok := catalog.Upgrades[upgradeID]
	if !ok {
		return View{}, ErrUnknownUpgrade
	}
	if !s.Engine.UpgradeAvailable(st, upgradeID) {
		return View{}, ErrUpgradeLocked
	}
	if st.UpgradeLevel(upgradeID) >= def.MaxLevel {
		return View{}, ErrUpgradeMaxed
	}
	if !s.Engine.CanAfford(st, upgradeID) {
		return View{}, ErrCannotAfford
	}

	s.Engine.Purchase(st, upgradeID, now)
	if s.Metrics != nil {
		s.Metrics.RecordPurchase(upgradeID)
	}
	s.persist(ctx, now)
	return s.view(now), nil
}

type ShedResponse struct {
	ScalesEarned float64 `json:"scales_earned"`
	State        View    `json:"state"`
}

// Shed advances the run one growth stage.
func (s *Session) Shed(ctx context.Context) (ShedResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.catchUp(ctx, now)

	if !s.Engine.CanShed(s.state) {
		return ShedResponse{}, ErrShedUnavailable
	}
	earned := s.Engine.Shed(s.state, now)
	if s.Metrics != nil {
		s.Metrics.RecordShed()
	}
	s.persist(ctx, now)
	return ShedResponse{ScalesEarned: earned, State: s.view(now)}, nil
}

type AscendRequest struct {
	// Purchases are ascension upgrade ids to buy with Scales before the
	// next run rolls.
	Purchases []string
}

type AscendResponse struct {
	KnowledgeEarned int  `json:"knowledge_earned"`
	State           View `json:"state"`
}

// Ascend finishes the run: buys the requested permanent upgrades, banks the
// knowledge reward, and rolls a fresh run carrying only scales and ascension
// levels. The meta update and the new snapshot commit together.
func (s *Session) Ascend(ctx context.Context, req AscendRequest) (AscendResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.catchUp(ctx, now)

	st := s.state
	if !s.Engine.CanAscend(st) {
		return AscendResponse{}, ErrAscendUnavailable
	}
	for _, id := range req.Purchases {
		def, ok := catalog.AscensionUpgrades[id]
		if !ok {
			return AscendResponse{}, ErrUnknownUpgrade
		}
		if st.AscensionLevels[id] >= def.MaxLevel {
			return AscendResponse{}, ErrUpgradeMaxed
		}
		if !s.Engine.PurchaseAscension(st, id) {
			return AscendResponse{}, ErrCannotAfford
		}
	}

	knowledge := serpent.KnowledgeReward(st.Stats)
	next := s.Engine.NewRun(now, s.Engine.AscendCarryover(st))

	err := s.Tx.RunInTx(ctx, func(txCtx context.Context) error {
		rec, err := s.Meta.Get(txCtx)
		if err != nil {
			return err
		}
		rec.Knowledge += knowledge
		rec.RunsFinished++
		rec.UpdatedAt = now
		if err := s.Meta.Save(txCtx, rec); err != nil {
			return err
		}
		return s.Snapshots.Save(txCtx, next, now)
	})
	if err != nil {
		return AscendResponse{}, err
	}

	s.state = next
	s.lastSave = now
	if s.Metrics != nil {
		s.Metrics.RecordAscension()
	}
	return AscendResponse{KnowledgeEarned: knowledge, State: s.view(now)}, nil
}

// StartFrenzy opens a feeding frenzy window. The event scheduler that grants
// frenzies is out of scope; this is its entry point.
func (s *Session) StartFrenzy(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.catchUp(ctx, now)

	if s.state.FrenzyActive {
		return View{}, ErrFrenzyActive
	}
	s.Engine.StartFrenzy(s.state, now)
	return s.view(now), nil
}

type SaveResponse struct {
	SavedAt time.Time `json:"saved_at"`
	// ProjectedKnowledge is what ending the run now would bank.
	ProjectedKnowledge int `json:"projected_knowledge"`
}

// Save forces an immediate snapshot write.
func (s *Session) Save(ctx context.Context) (SaveResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.catchUp(ctx, now)

	if err := s.Snapshots.Save(ctx, s.state, now); err != nil {
		if s.Metrics != nil {
			s.Metrics.RecordSaveFailure()
		}
		return SaveResponse{}, err
	}
	s.lastSave = now
	return SaveResponse{
		SavedAt:            now,
		ProjectedKnowledge: serpent.KnowledgeReward(s.state.Stats),
	}, nil
}

// catchUp replays everything that should have happened since the last
// operation: idle income, mouth reopen, rush and frenzy expiry, at most one
// auto bite, combo decay, and the post-frenzy ramp. Must hold the lock.
func (s *Session) catchUp(ctx context.Context, now time.Time) {
	dt := now.Sub(s.lastTick).Seconds()
	if dt < 0 {
		dt = 0
	}
	if clamp := s.Engine.T.CatchupClamp.Seconds(); dt > clamp {
		dt = clamp
	}
	s.lastTick = now

	st := s.state
	s.Engine.TickIdle(st, dt)
	st.IdleSeconds += dt
	s.Engine.TickMouth(st, now)
	s.Engine.TickVenomRush(st, now)
	s.Engine.TickFrenzy(st, now)
	if s.Engine.TickAutoBite(st, now) {
		s.Engine.ComputeDerived(st, now)
		s.Engine.HandlePress(st)
		if s.Metrics != nil {
			s.Metrics.RecordAutoBite()
		}
	}
	s.Engine.TickComboDecay(st, now)
	s.Engine.TickPostFrenzyBPM(st, now)
	s.Engine.ComputeDerived(st, now)

	if now.Sub(s.lastSave) >= s.Engine.T.AutosaveInterval {
		s.persist(ctx, now)
	}
}

// persist writes the snapshot without failing the surrounding operation.
func (s *Session) persist(ctx context.Context, now time.Time) {
	if err := s.Snapshots.Save(ctx, s.state, now); err != nil {
		if s.Metrics != nil {
			s.Metrics.RecordSaveFailure()
		}
		return
	}
	s.lastSave = now
}

func (s *Session) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
