package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/kerbaras/logolink/pkg/data"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocument = `{
  "chapters": [
    {"id": 1, "title": "Chapter One: Intro!", "logoUrl": "https://x.com/a.PNG"},
    {"id": 2, "title": "??", "logoUrl": ""},
    {"id": 3, "title": "Foo Bar", "logoUrl": "https://cdn.x/img.svg?v=2"}
  ]
}`

func setupFs(t *testing.T, logos ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "src/config.json", []byte(testDocument), 0o644))
	require.NoError(t, fs.MkdirAll("src/assets/logos", 0o755))
	for _, name := range logos {
		require.NoError(t, afero.WriteFile(fs, "src/assets/logos/"+name, []byte("logo"), 0o644))
	}
	return fs
}

// executeCommand runs the root command on fs. Every persistent flag is reset
// first because cobra keeps flag values between executions; args come last so
// they win.
func executeCommand(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	t.Helper()
	previous := appFs
	appFs = fs
	t.Cleanup(func() { appFs = previous })

	defaults := []string{
		"--file=src/config.json",
		"--logos-dir=src/assets/logos",
		"--prefix=assets/logos/",
		"--ledger=",
		"--dry-run=false",
		"--verbose=false",
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(defaults, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootUpdatesDocument(t *testing.T) {
	fs := setupFs(t, "chapter-one-intro.png")

	out, err := executeCommand(t, fs)
	require.NoError(t, err)

	assert.Contains(t, out, "Found 1 downloaded logos")
	assert.Contains(t, out, "#1: Chapter One: Intro!")
	assert.Contains(t, out, "Logo not found: foo-bar.svg")
	assert.Contains(t, out, "Updated: 1 logos")
	assert.Contains(t, out, "Missing: 1 logos")
	assert.Contains(t, out, "Skipped: 1 chapters")
	assert.Contains(t, out, "Logos location: src/assets/logos")

	doc, err := data.LoadDocument(fs, "src/config.json")
	require.NoError(t, err)
	assert.Equal(t, "assets/logos/chapter-one-intro.png", doc.Chapters[0].LogoURLText())
}

func TestUpdateDryRun(t *testing.T) {
	fs := setupFs(t, "chapter-one-intro.png")

	out, err := executeCommand(t, fs, "update", "--dry-run=true")
	require.NoError(t, err)
	assert.Contains(t, out, "Dry Run Complete")

	raw, err := afero.ReadFile(fs, "src/config.json")
	require.NoError(t, err)
	assert.Equal(t, testDocument, string(raw))
}

func TestUpdateMissingDocument(t *testing.T) {
	_, err := executeCommand(t, afero.NewMemMapFs(), "update")
	assert.Error(t, err)
}

func TestUpdateRecordsLedger(t *testing.T) {
	fs := setupFs(t, "foo-bar.svg")
	ledger := filepath.Join(t.TempDir(), "runs.db")

	_, err := executeCommand(t, fs, "update", "--ledger="+ledger)
	require.NoError(t, err)

	out, err := executeCommand(t, fs, "history", "--ledger="+ledger, "--limit=5", "--run=")
	require.NoError(t, err)
	assert.Contains(t, out, "1 runs")
	assert.Contains(t, out, "src/config.json")
}

func TestHistoryRequiresLedger(t *testing.T) {
	_, err := executeCommand(t, setupFs(t), "history", "--run=")
	assert.Error(t, err)
}

func TestStatus(t *testing.T) {
	fs := setupFs(t, "chapter-one-intro.png")

	out, err := executeCommand(t, fs, "status", "--only=")
	require.NoError(t, err)
	assert.Contains(t, out, "chapter-one-intro.png")
	assert.Contains(t, out, "foo-bar.svg")
	assert.Contains(t, out, "1 updated")

	missing, err := executeCommand(t, fs, "status", "--only=missing")
	require.NoError(t, err)
	assert.Contains(t, missing, "foo-bar.svg")
	assert.NotContains(t, missing, "chapter-one-intro.png")

	raw, err := afero.ReadFile(fs, "src/config.json")
	require.NoError(t, err)
	assert.Equal(t, testDocument, string(raw), "status never writes")
}

func TestInspect(t *testing.T) {
	fs := setupFs(t, "chapter-one-intro.png", "stray.gif")

	out, err := executeCommand(t, fs, "inspect", "--max-dimension=1024")
	require.NoError(t, err)
	assert.Contains(t, out, "2 logos")
	assert.Contains(t, out, "stray.gif")
	assert.Contains(t, out, "could not be decoded")
	assert.Contains(t, out, "not referenced by any chapter")
}

func TestInspectEmptyDirectory(t *testing.T) {
	out, err := executeCommand(t, setupFs(t), "inspect", "--max-dimension=1024")
	require.NoError(t, err)
	assert.Contains(t, out, "No logos in src/assets/logos")
}
