package gormrepo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"ouroverse/internal/app/ports"
	"ouroverse/internal/domain/serpent"
)

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("OUROVERSE_DB_DSN")
	if dsn == "" {
		t.Skip("OUROVERSE_DB_DSN is required for integration test")
	}
	return dsn
}

func TestRunSnapshotRepo_RoundTrip(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	if err := ApplyMigrations(ctx, db, "../../../../migrations"); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	repo := NewRunSnapshotRepo(db)
	if err := repo.Delete(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Load(ctx); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty table, got %v", err)
	}

	eng := serpent.NewEngine(serpent.DefaultTuning(), nil)
	seed := eng.NewRun(time.Now().UTC().Truncate(time.Second), serpent.Carryover{Scales: 12.5})
	seed.Essence = 321.5
	seed.ComboHits = 17
	seed.UpgradeLevels["fang_sharpening"] = 4

	if err := repo.Save(ctx, seed, time.Now()); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.RunID != seed.RunID {
		t.Fatalf("expected run id %s, got %s", seed.RunID, got.RunID)
	}
	if got.Essence != seed.Essence || got.ComboHits != seed.ComboHits {
		t.Fatalf("expected essence/combo %v/%d, got %v/%d", seed.Essence, seed.ComboHits, got.Essence, got.ComboHits)
	}
	if got.UpgradeLevels["fang_sharpening"] != 4 {
		t.Fatalf("expected upgrade levels preserved, got %v", got.UpgradeLevels)
	}
	if got.Scales != 12.5 {
		t.Fatalf("expected scales 12.5, got %v", got.Scales)
	}
	if !got.BeatOrigin.Equal(seed.BeatOrigin) {
		t.Fatalf("expected beat origin %v, got %v", seed.BeatOrigin, got.BeatOrigin)
	}

	// Overwrite keeps a single row.
	seed.Essence = 999
	if err := repo.Save(ctx, seed, time.Now()); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, err = repo.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Essence != 999 {
		t.Fatalf("expected overwritten essence 999, got %v", got.Essence)
	}
}

func TestMetaRepo_RoundTrip(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	if err := ApplyMigrations(ctx, db, "../../../../migrations"); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	_ = db.Exec("DELETE FROM meta_state").Error

	repo := NewMetaRepo(db)
	rec, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get empty: %v", err)
	}
	if rec.Knowledge != 0 || rec.RunsFinished != 0 {
		t.Fatalf("expected zero record, got %+v", rec)
	}

	rec.Knowledge = 28
	rec.RunsFinished = 1
	rec.UpdatedAt = time.Now()
	if err := repo.Save(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Knowledge != 28 || got.RunsFinished != 1 {
		t.Fatalf("expected 28/1, got %+v", got)
	}
}
