package docs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lawbot/docs"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "계약서.txt"), "보증금 3억원")
	writeFile(t, filepath.Join(dir, "sub", "판결문.md"), "원고 승소")
	writeFile(t, filepath.Join(dir, "ignore.json"), "{}")

	now := time.Now()
	got, err := docs.Load([]string{filepath.Join(dir, "**", "*.txt"), filepath.Join(dir, "**", "*.md")}, now)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "계약서", got[0].Title)
	assert.Equal(t, "보증금 3억원", got[0].Content)
	assert.Equal(t, now, got[0].AddedAt)
	assert.NotEmpty(t, got[0].ID)

	assert.Equal(t, "판결문", got[1].Title)
	assert.Equal(t, "원고 승소", got[1].Content)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	t.Run("invalid pattern", func(t *testing.T) {
		t.Parallel()
		_, err := docs.Load([]string{"[bad"}, time.Now())
		assert.Error(t, err)
	})

	t.Run("no matches is empty not error", func(t *testing.T) {
		t.Parallel()
		got, err := docs.Load([]string{filepath.Join(t.TempDir(), "*.txt")}, time.Now())
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
