package acquire

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/permitrdu/digest/internal/models"
)

type call struct {
	name string
	args []string
}

type fakeExecutor struct {
	calls   []call
	outputs []string
	err     error
}

func (f *fakeExecutor) Run(_ context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, call{name: name, args: args})
	if f.err != nil {
		return "", f.err
	}
	out := f.outputs[0]
	if len(f.outputs) > 1 {
		f.outputs = f.outputs[1:]
	}
	return out, nil
}

const probeOutput = `{"title": "Planning Commission - Aug 12, 2025", "duration": 5400, "thumbnail": "https://example.com/t.jpg", "uploader": "City of Raleigh"}`

func TestProbe(t *testing.T) {
	t.Run("ParsesMetadata", func(t *testing.T) {
		fake := &fakeExecutor{outputs: []string{probeOutput}}
		d := New(t.TempDir(), WithExecutor(fake))

		info, err := d.Probe(context.Background(), "https://youtube.com/watch?v=abc")
		require.NoError(t, err)
		require.Equal(t, "Planning Commission - Aug 12, 2025", info.Title)
		require.Equal(t, 5400.0, info.DurationSeconds)
		require.Equal(t, "City of Raleigh", info.Uploader)

		require.Len(t, fake.calls, 1)
		require.Equal(t, "yt-dlp", fake.calls[0].name)
		require.Equal(t, []string{"-J", "--no-playlist", "https://youtube.com/watch?v=abc"}, fake.calls[0].args)
	})

	t.Run("DefaultsForMissingFields", func(t *testing.T) {
		fake := &fakeExecutor{outputs: []string{`{"duration": 10}`}}
		d := New(t.TempDir(), WithExecutor(fake))

		info, err := d.Probe(context.Background(), "https://example.com/v")
		require.NoError(t, err)
		require.Equal(t, "Unknown", info.Title)
		require.Equal(t, "Unknown", info.Uploader)
	})

	t.Run("ToolFailure", func(t *testing.T) {
		fake := &fakeExecutor{err: errors.New("ERROR: video unavailable")}
		d := New(t.TempDir(), WithExecutor(fake))

		_, err := d.Probe(context.Background(), "https://example.com/gone")
		var acqErr *AcquisitionError
		require.ErrorAs(t, err, &acqErr)
		require.Equal(t, "https://example.com/gone", acqErr.URL)
		require.Contains(t, err.Error(), "video unavailable")
	})
}

func TestFetch(t *testing.T) {
	t.Run("AudioArguments", func(t *testing.T) {
		dir := t.TempDir()
		fake := &fakeExecutor{outputs: []string{probeOutput, ""}}
		d := New(dir, WithExecutor(fake))

		asset, err := d.Fetch(context.Background(), "https://example.com/v", models.FormatAudio, "")
		require.NoError(t, err)
		require.Equal(t, "Planning Commission - Aug 12, 2025", asset.Title)
		require.Equal(t, filepath.Join(dir, "Planning_Commission_-_Aug_12_2025.mp3"), asset.LocalPath)

		require.Len(t, fake.calls, 2)
		args := fake.calls[1].args
		require.Contains(t, args, "-x")
		require.Contains(t, args, "--audio-format")
		require.Contains(t, args, "mp3")
		require.Contains(t, args, "--no-playlist")
	})

	t.Run("VideoArguments", func(t *testing.T) {
		fake := &fakeExecutor{outputs: []string{probeOutput, ""}}
		d := New(t.TempDir(), WithExecutor(fake))

		asset, err := d.Fetch(context.Background(), "https://example.com/v", models.FormatVideo, "meeting")
		require.NoError(t, err)
		require.Equal(t, ".mp4", filepath.Ext(asset.LocalPath))

		args := fake.calls[1].args
		require.Contains(t, args, "best[ext=mp4]")
		require.NotContains(t, args, "-x")
	})

	t.Run("NameHintOverridesTitle", func(t *testing.T) {
		dir := t.TempDir()
		fake := &fakeExecutor{outputs: []string{probeOutput, ""}}
		d := New(dir, WithExecutor(fake))

		asset, err := d.Fetch(context.Background(), "https://example.com/v", models.FormatAudio, "raleigh_aug12")
		require.NoError(t, err)
		require.Equal(t, filepath.Join(dir, "raleigh_aug12.mp3"), asset.LocalPath)
	})

	t.Run("CollisionGetsTimestampSuffix", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "meeting.mp3"), []byte("x"), 0o644))

		at := time.Date(2025, 8, 12, 16, 30, 45, 0, time.UTC)
		fake := &fakeExecutor{outputs: []string{probeOutput, ""}}
		d := New(dir, WithExecutor(fake), WithClock(func() time.Time { return at }))

		asset, err := d.Fetch(context.Background(), "https://example.com/v", models.FormatAudio, "meeting")
		require.NoError(t, err)
		require.Equal(t, filepath.Join(dir, "meeting_20250812_163045.mp3"), asset.LocalPath)
	})

	t.Run("DownloadFailure", func(t *testing.T) {
		fake := &fakeExecutor{err: errors.New("network unreachable")}
		d := New(t.TempDir(), WithExecutor(fake))

		_, err := d.Fetch(context.Background(), "https://example.com/v", models.FormatAudio, "")
		var acqErr *AcquisitionError
		require.ErrorAs(t, err, &acqErr)
	})
}

func TestSanitizeTitle(t *testing.T) {
	require.Equal(t, "Planning_Commission_-_Aug_12_2025", SanitizeTitle("Planning Commission - Aug 12, 2025"))
	require.Equal(t, "a_b_c", SanitizeTitle("a / b \\ c"))
	require.Equal(t, "title", SanitizeTitle("  title!!  "))
	require.Equal(t, "", SanitizeTitle("???"))
	require.Len(t, SanitizeTitle(strings.Repeat("a", 200)), 120)
}
