package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	httpadapter "ouroverse/internal/adapter/http"
	metricsinmem "ouroverse/internal/adapter/metrics/inmemory"
	gormrepo "ouroverse/internal/adapter/repo/gorm"
	memrepo "ouroverse/internal/adapter/repo/memory"
	"ouroverse/internal/app/ports"
	"ouroverse/internal/app/session"
	"ouroverse/internal/domain/serpent"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	snapshots, meta, txManager := mustBuildRepos()
	kpiRecorder := metricsinmem.NewRecorder()

	sess := &session.Session{
		Engine:    serpent.NewEngine(buildTuningFromEnv(), nil),
		Snapshots: snapshots,
		Meta:      meta,
		Tx:        txManager,
		Metrics:   kpiRecorder,
		Now:       time.Now,
	}
	if err := sess.Open(context.Background()); err != nil {
		log.Fatalf("open session: %v", err)
	}

	h := httpadapter.Handler{
		Session: sess,
		KPI:     kpiRecorder,
	}

	addr := envOr("OUROVERSE_ADDR", ":8080")
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("ouroverse server listening on %s", addr)
	s.Spin()
}

func mustBuildRepos() (ports.RunSnapshotRepository, ports.MetaRepository, ports.TxManager) {
	dsn := strings.TrimSpace(os.Getenv("OUROVERSE_DB_DSN"))
	if dsn == "" {
		log.Println("OUROVERSE_DB_DSN not set, keeping state in memory")
		return memrepo.NewStore(), memrepo.NewMetaStore(), memrepo.NewTxManager()
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if err := gormrepo.ApplyMigrations(context.Background(), db, resolveMigrationsDir()); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}
	return gormrepo.NewRunSnapshotRepo(db), gormrepo.NewMetaRepo(db), gormrepo.NewTxManager(db)
}

func buildTuningFromEnv() serpent.Tuning {
	t := serpent.DefaultTuning()
	t.BaseBPM = floatEnv("OUROVERSE_BASE_BPM", t.BaseBPM)
	t.MaxBPM = floatEnv("OUROVERSE_MAX_BPM", t.MaxBPM)
	t.CatchupClamp = time.Duration(intEnv("OUROVERSE_CATCHUP_CLAMP_SECONDS", int(t.CatchupClamp.Seconds()))) * time.Second
	t.AutosaveInterval = time.Duration(intEnv("OUROVERSE_AUTOSAVE_SECONDS", int(t.AutosaveInterval.Seconds()))) * time.Second
	return t
}

func resolveMigrationsDir() string {
	if dir := strings.TrimSpace(os.Getenv("OUROVERSE_MIGRATIONS_DIR")); dir != "" {
		return dir
	}
	return "./migrations"
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func floatEnv(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
