package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportedRecord = `{
  "version": "1.0.0",
  "updatedAt": "2026-10-14T09:00:00Z",
  "topics": {
    "graphs": {
      "topicId": "graphs",
      "concepts": {},
      "problems": {
        "num-islands": {"problemId": "num-islands", "status": "solved", "solvedAt": "2026-10-14T09:00:00Z"}
      }
    }
  },
  "stats": {"totalConceptsCompleted": 0, "totalProblemsSolved": 1, "currentStreak": 1, "longestStreak": 1, "lastStudyDate": "2026-10-14", "studyDays": ["2026-10-14"]},
  "preferences": {"theme": "dark", "targetProblemsPerDay": 3, "targetMinutesPerDay": 60, "showDifficulty": true, "showPatterns": true}
}`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	inMemory, resetYes, exportOutput = false, false, ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func setupEnv(t *testing.T) string {
	dir := t.TempDir()
	t.Setenv("DB_PATH", filepath.Join(dir, "progress.db"))
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("CONTENT_BASE_URL", "")
	return dir
}

func TestImportExportPersistAcrossRuns(t *testing.T) {
	dir := setupEnv(t)
	file := filepath.Join(dir, "backup.json")
	require.NoError(t, os.WriteFile(file, []byte(exportedRecord), 0o644))

	out, err := run(t, "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 1 topics, 0 concepts completed, 1 problems solved")

	target := filepath.Join(dir, "out.json")
	_, err = run(t, "export", "--output", target)
	require.NoError(t, err)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"num-islands"`)
	assert.Contains(t, string(data), `"totalProblemsSolved": 1`)
}

func TestResetRequiresConfirmation(t *testing.T) {
	dir := setupEnv(t)
	file := filepath.Join(dir, "backup.json")
	require.NoError(t, os.WriteFile(file, []byte(exportedRecord), 0o644))
	_, err := run(t, "import", file)
	require.NoError(t, err)

	_, err = run(t, "reset")
	require.Error(t, err)

	out, err := run(t, "export")
	require.NoError(t, err)
	assert.Contains(t, out, `"num-islands"`)

	out, err = run(t, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "progress reset")

	out, err = run(t, "export")
	require.NoError(t, err)
	assert.NotContains(t, out, `"num-islands"`)
}

func TestImportRejectsBadFiles(t *testing.T) {
	dir := setupEnv(t)

	_, err := run(t, "import", filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"topics": {}}`), 0o644))
	_, err = run(t, "--memory", "import", bad)
	require.Error(t, err)
}

func TestInvalidConfigIsRejected(t *testing.T) {
	setupEnv(t)
	t.Setenv("LOG_LEVEL", "LOUD")

	_, err := run(t, "export", "--memory")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}
