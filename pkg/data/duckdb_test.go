package data

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()

	repo, err := OpenLedger(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Failed to open ledger: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func sampleRun(started time.Time) *Run {
	report := Report{}
	report.Add(Result{Index: 0, ChapterID: "1", Title: "Chapter One: Intro!", Outcome: OutcomeUpdated,
		ExpectedFilename: "chapter-one-intro.png", LocalPath: "assets/logos/chapter-one-intro.png",
		OriginalURL: "https://x.com/a.PNG"})
	report.Add(Result{Index: 1, ChapterID: "2", Title: "??", Outcome: OutcomeSkipped})
	report.Add(Result{Index: 2, ChapterID: "-", Title: "Foo Bar", Outcome: OutcomeMissing,
		ExpectedFilename: "foo-bar.svg", LocalPath: "assets/logos/foo-bar.svg",
		OriginalURL: "https://cdn.x/img.svg?v=2"})

	return &Run{
		StartedAt: started,
		Document:  "src/config.json",
		LogosDir:  "src/assets/logos",
		Report:    report,
	}
}

func TestInitDuckDB(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := InitDuckDB(dbPath)
	require.NoError(t, err)
	defer db.Close()

	var tableCount int
	err = db.QueryRow(`SELECT COUNT(*) FROM information_schema.tables WHERE table_name IN ('runs', 'run_chapters')`).Scan(&tableCount)
	require.NoError(t, err)
	assert.Equal(t, 2, tableCount)
}

func TestInitDuckDBCreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	db, err := InitDuckDB(dbPath)
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(dbPath)
	assert.False(t, os.IsNotExist(err), "DB file was not created")
}

func TestSaveAndGetRun(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	run := sampleRun(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, repo.SaveRun(ctx, run))
	assert.NotEmpty(t, run.ID)

	got, err := repo.GetRun(ctx, run.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "src/config.json", got.Document)
	assert.Equal(t, "src/assets/logos", got.LogosDir)
	assert.Equal(t, 1, got.Report.Updated)
	assert.Equal(t, 1, got.Report.Missing)
	assert.Equal(t, 1, got.Report.Skipped)
	require.Len(t, got.Report.Results, 3)
	assert.Equal(t, OutcomeUpdated, got.Report.Results[0].Outcome)
	assert.Equal(t, "assets/logos/chapter-one-intro.png", got.Report.Results[0].LocalPath)
	assert.Equal(t, OutcomeMissing, got.Report.Results[2].Outcome)
	assert.True(t, run.StartedAt.Equal(got.StartedAt))
}

func TestGetRunNotFound(t *testing.T) {
	repo := setupTestDB(t)

	got, err := repo.GetRun(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListRuns(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	runs, err := repo.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, runs)

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.SaveRun(ctx, sampleRun(base.Add(time.Duration(i)*time.Hour))))
	}

	runs, err = repo.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.True(t, runs[0].StartedAt.After(runs[1].StartedAt), "newest first")
	assert.Empty(t, runs[0].Report.Results)

	limited, err := repo.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
