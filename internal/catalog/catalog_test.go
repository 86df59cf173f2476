package catalog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestOpenAppliesPragmas(t *testing.T) {
	store := openTestStore(t)

	var journalMode string
	require.NoError(t, store.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	assert.Equal(t, "wal", journalMode)

	var busyTimeout int
	require.NoError(t, store.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout))
	assert.Equal(t, 5000, busyTimeout)

	var synchronous int
	require.NoError(t, store.QueryRow("PRAGMA synchronous").Scan(&synchronous))
	assert.Equal(t, 1, synchronous, "expected synchronous=NORMAL")

	var tempStore int
	require.NoError(t, store.QueryRow("PRAGMA temp_store").Scan(&tempStore))
	assert.Equal(t, 2, tempStore, "expected temp_store=MEMORY")
}

func TestOpenNoMigrateSkipsSchema(t *testing.T) {
	store, err := OpenNoMigrate(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	// No migrations ran, so the runs table must not exist yet.
	_, err = store.ListRuns(10)
	assert.Error(t, err)

	version, dirty, err := store.MigrateVersion()
	require.NoError(t, err)
	assert.Zero(t, version)
	assert.False(t, dirty)
}

func TestNewRun(t *testing.T) {
	run := NewRun("report", "/tmp/out")

	_, err := uuid.Parse(run.ID)
	require.NoError(t, err, "run ID should be a valid UUID")
	assert.Equal(t, "report", run.Kind)
	assert.Equal(t, "/tmp/out", run.OutputDir)
	assert.Equal(t, time.UTC, run.CreatedAt.Location())
	assert.WithinDuration(t, time.Now(), run.CreatedAt, 5*time.Second)
}

func TestRecordAndListRuns(t *testing.T) {
	store := openTestStore(t)

	run := NewRun("report", "/tmp/out")
	figs := []FigureRecord{
		{RunID: run.ID, Name: "tolerance", Rows: 105, HTMLPath: "figures/tolerance.html", PNGPath: "figures/tolerance.png", CSVPath: "data/tolerance.csv"},
		{RunID: run.ID, Name: "fitness", Rows: 315, HTMLPath: "figures/fitness.html", PNGPath: "figures/fitness.png", CSVPath: "data/fitness.csv"},
	}
	require.NoError(t, store.RecordRun(run, figs))

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "report", got.Kind)
	assert.Equal(t, "/tmp/out", got.OutputDir)
	assert.Equal(t, 2, got.Figures)
	assert.True(t, got.CreatedAt.Equal(run.CreatedAt), "got %v, want %v", got.CreatedAt, run.CreatedAt)

	stored, err := store.RunFigures(run.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "fitness", stored[0].Name, "figures should be ordered by name")
	assert.Equal(t, "tolerance", stored[1].Name)
	assert.Equal(t, 315, stored[0].Rows)
	assert.Equal(t, "data/fitness.csv", stored[0].CSVPath)
}

func TestListRunsNewestFirst(t *testing.T) {
	store := openTestStore(t)

	older := NewRun("sweep", "/tmp/a")
	older.CreatedAt = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	newer := NewRun("report", "/tmp/b")
	newer.CreatedAt = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.RecordRun(older, nil))
	require.NoError(t, store.RecordRun(newer, nil))

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, newer.ID, runs[0].ID)
	assert.Equal(t, older.ID, runs[1].ID)

	limited, err := store.ListRuns(1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, newer.ID, limited[0].ID)
}

func TestRecordRunValidation(t *testing.T) {
	store := openTestStore(t)

	run := NewRun("report", "/tmp/out")
	run.ID = ""
	assert.Error(t, store.RecordRun(run, nil))

	run = NewRun("", "/tmp/out")
	assert.Error(t, store.RecordRun(run, nil))
}

func TestRunFiguresUnknownRun(t *testing.T) {
	store := openTestStore(t)

	figs, err := store.RunFigures("no-such-run")
	require.NoError(t, err)
	assert.Empty(t, figs)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	store, err := Open(path)
	require.NoError(t, err)
	run := NewRun("report", "/tmp/out")
	require.NoError(t, store.RecordRun(run, nil))
	require.NoError(t, store.Close())

	// Reopening runs migrations again; an up-to-date schema is a no-op.
	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	runs, err := reopened.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
}

func TestMigrateVersion(t *testing.T) {
	store := openTestStore(t)

	version, dirty, err := store.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
}

func TestMigrateDown(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.MigrateDown())

	_, err := store.ListRuns(10)
	assert.Error(t, err, "runs table should be gone after rolling back")
}
