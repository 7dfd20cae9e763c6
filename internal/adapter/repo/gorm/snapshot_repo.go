package gormrepo

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"ouroverse/internal/app/ports"
	"ouroverse/internal/domain/serpent"
)

// runSnapshot is the single persistence row for the active run. The state is
// stored as one JSON payload so engine schema churn never needs a migration.
type runSnapshot struct {
	ID      int       `gorm:"column:id;primaryKey"`
	RunID   string    `gorm:"column:run_id"`
	Payload []byte    `gorm:"column:payload"`
	SavedAt time.Time `gorm:"column:saved_at"`
}

func (runSnapshot) TableName() string { return "run_snapshots" }

const snapshotRowID = 1

type RunSnapshotRepo struct {
	db *gorm.DB
}

func NewRunSnapshotRepo(db *gorm.DB) RunSnapshotRepo {
	return RunSnapshotRepo{db: db}
}

func (r RunSnapshotRepo) Load(ctx context.Context) (*serpent.RunState, error) {
	var m runSnapshot
	if err := getDBFromCtx(ctx, r.db).Where("id = ?", snapshotRowID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}

	var state serpent.RunState
	if err := sonic.Unmarshal(m.Payload, &state); err != nil {
		// A corrupt payload reads as missing so the caller rolls a fresh run.
		return nil, ports.ErrNotFound
	}
	return &state, nil
}

func (r RunSnapshotRepo) Save(ctx context.Context, state *serpent.RunState, savedAt time.Time) error {
	payload, err := sonic.Marshal(state)
	if err != nil {
		return err
	}
	db := getDBFromCtx(ctx, r.db)

	updates := map[string]any{
		"run_id":   state.RunID,
		"payload":  payload,
		"saved_at": savedAt,
	}
	res := db.Model(&runSnapshot{}).Where("id = ?", snapshotRowID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		m := runSnapshot{
			ID:      snapshotRowID,
			RunID:   state.RunID,
			Payload: payload,
			SavedAt: savedAt,
		}
		return db.Create(&m).Error
	}
	return nil
}

func (r RunSnapshotRepo) Delete(ctx context.Context) error {
	return getDBFromCtx(ctx, r.db).Where("id = ?", snapshotRowID).Delete(&runSnapshot{}).Error
}
