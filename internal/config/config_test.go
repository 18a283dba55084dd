package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	require.Equal(t, "whisper-1", cfg.Models.Transcription)
	require.Equal(t, "gpt-4", cfg.Models.Extraction)
	require.Equal(t, "gpt-4", cfg.Models.Composition)
	require.Equal(t, "downloads", cfg.Paths.Downloads)
	require.Equal(t, 12000, cfg.Limits.TranscriptChars)
	require.Equal(t, 5, cfg.Limits.SectionWorkers)
	require.Equal(t, 8000, cfg.Server.Port)
	require.Equal(t, 120*time.Second, cfg.RequestTimeout())
	require.Equal(t, 300*time.Second, cfg.DownloadTimeout())
}

func TestLoadProjectFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "digest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
models:
  extraction: gpt-4-turbo
paths:
  downloads: media
limits:
  transcript_chars: 24000
  section_workers: 2
server:
  port: 9090
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "gpt-4-turbo", cfg.Models.Extraction)
	require.Equal(t, "whisper-1", cfg.Models.Transcription, "unset fields keep defaults")
	require.Equal(t, "media", cfg.Paths.Downloads)
	require.Equal(t, 24000, cfg.Limits.TranscriptChars)
	require.Equal(t, 2, cfg.Limits.SectionWorkers)
	require.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultDownloadDir, cfg.Paths.Downloads)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "digest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("models: [not a map"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "digest.yaml")
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("DIGEST_DOWNLOAD_DIR", "/tmp/media")
	t.Setenv("DIGEST_PORT", "9999")
	t.Setenv("DIGEST_API_BASE_URL", "http://localhost:8080/v1")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "sk-test", cfg.APIKey)
	require.Equal(t, "/tmp/media", cfg.Paths.Downloads)
	require.Equal(t, 9999, cfg.Server.Port)
	require.Equal(t, "http://localhost:8080/v1", cfg.APIBaseURL)
	require.NoError(t, cfg.Validate())
}

func TestValidateRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.ErrorIs(t, cfg.Validate(), ErrMissingAPIKey)
}
