package gormrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"ouroverse/internal/app/ports"
)

type metaState struct {
	ID           int       `gorm:"column:id;primaryKey"`
	Knowledge    int       `gorm:"column:knowledge"`
	RunsFinished int       `gorm:"column:runs_finished"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (metaState) TableName() string { return "meta_state" }

const metaRowID = 1

type MetaRepo struct {
	db *gorm.DB
}

func NewMetaRepo(db *gorm.DB) MetaRepo {
	return MetaRepo{db: db}
}

// Get returns a zero record before the first save.
func (r MetaRepo) Get(ctx context.Context) (ports.MetaRecord, error) {
	var m metaState
	if err := getDBFromCtx(ctx, r.db).Where("id = ?", metaRowID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.MetaRecord{}, nil
		}
		return ports.MetaRecord{}, err
	}
	return ports.MetaRecord{
		Knowledge:    m.Knowledge,
		RunsFinished: m.RunsFinished,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

func (r MetaRepo) Save(ctx context.Context, record ports.MetaRecord) error {
	db := getDBFromCtx(ctx, r.db)

	updates := map[string]any{
		"knowledge":     record.Knowledge,
		"runs_finished": record.RunsFinished,
		"updated_at":    record.UpdatedAt,
	}
	res := db.Model(&metaState{}).Where("id = ?", metaRowID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		m := metaState{
			ID:           metaRowID,
			Knowledge:    record.Knowledge,
			RunsFinished: record.RunsFinished,
			UpdatedAt:    record.UpdatedAt,
		}
		return db.Create(&m).Error
	}
	return nil
}
