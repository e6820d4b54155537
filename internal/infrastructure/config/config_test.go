package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnvOverrides(t *testing.T) {
	t.Setenv("SEARCH_TERM", "levis")
	t.Setenv("POST_LIMIT", "25")
	t.Setenv("SEARCH_ID", "7")
	t.Setenv("OPENAI_API_KEY", "test-key")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "levis", cfg.Search.Term)
	assert.Equal(t, 25, cfg.Search.Limit)
	assert.Equal(t, 7, cfg.Search.SubjectID)
	assert.Equal(t, "test-key", cfg.LLM.APIKey)
	// Untouched defaults survive.
	assert.Equal(t, "relevance", cfg.Search.Sort)
	assert.Equal(t, "BuyItForLife", cfg.Search.Subreddit)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
}

func TestLoad_YamlFileOverlay(t *testing.T) {
	t.Setenv("SEARCH_TERM", "")
	dir := t.TempDir()
	content := "search:\n  term: uniqlo\n  subreddit: malefashionadvice\nllm:\n  model: gpt-4o\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "uniqlo", cfg.Search.Term)
	assert.Equal(t, "malefashionadvice", cfg.Search.Subreddit)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	content := "search:\n  term: uniqlo\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(content), 0o644))
	t.Setenv("SEARCH_TERM", "patagonia")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "patagonia", cfg.Search.Term)
}

func TestLoad_MissingTermFails(t *testing.T) {
	t.Setenv("SEARCH_TERM", "")

	_, err := Load(t.TempDir())
	assert.Error(t, err)
}

func TestRunDir(t *testing.T) {
	cfg := Default()
	cfg.Search.Term = "Levi's"
	cfg.Search.Subreddit = "BuyItForLife"
	cfg.Output.Dir = "output"

	assert.Equal(t, filepath.Join("output", "levis-buyitforlife"), cfg.RunDir())
}
