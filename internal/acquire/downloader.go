// Package acquire retrieves meeting audio/video from remote video sources
// to local storage, and probes source metadata without downloading. It
// drives the yt-dlp binary; any failure it reports is passed through
// verbatim, with no retry or backoff at this layer.
package acquire

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/permitrdu/digest/internal/executor"
	"github.com/permitrdu/digest/internal/models"
)

// DefaultBinary is the media extraction tool invoked for probe and fetch.
const DefaultBinary = "yt-dlp"

// AcquisitionError wraps any resolution, network, or extraction failure
// from the media source. The underlying tool's message is preserved.
type AcquisitionError struct {
	URL string
	Err error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("acquisition failed for %s: %v", e.URL, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// Downloader fetches media into a local directory.
type Downloader struct {
	dir     string
	binary  string
	exec    executor.Executor
	timeout time.Duration
	log     *slog.Logger
	now     func() time.Time
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithExecutor replaces the command executor (used by tests).
func WithExecutor(e executor.Executor) Option {
	return func(d *Downloader) { d.exec = e }
}

// WithBinary overrides the yt-dlp binary path.
func WithBinary(bin string) Option {
	return func(d *Downloader) { d.binary = bin }
}

// WithTimeout bounds a single fetch or probe.
func WithTimeout(t time.Duration) Option {
	return func(d *Downloader) { d.timeout = t }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Downloader) { d.log = l }
}

// WithClock overrides the clock used for collision-free filenames.
func WithClock(now func() time.Time) Option {
	return func(d *Downloader) { d.now = now }
}

// New creates a Downloader writing into dir.
func New(dir string, opts ...Option) *Downloader {
	d := &Downloader{
		dir:     dir,
		binary:  DefaultBinary,
		exec:    executor.New(),
		timeout: 5 * time.Minute,
		log:     slog.Default(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// probeJSON is the subset of yt-dlp's -J output the pipeline needs.
type probeJSON struct {
	Title     string  `json:"title"`
	Duration  float64 `json:"duration"`
	Thumbnail string  `json:"thumbnail"`
	Uploader  string  `json:"uploader"`
}

// Probe returns source metadata without downloading.
func (d *Downloader) Probe(ctx context.Context, url string) (*models.MediaInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	out, err := d.exec.Run(ctx, d.binary, "-J", "--no-playlist", url)
	if err != nil {
		return nil, &AcquisitionError{URL: url, Err: err}
	}

	var pj probeJSON
	if err := json.Unmarshal([]byte(out), &pj); err != nil {
		return nil, &AcquisitionError{URL: url, Err: fmt.Errorf("unexpected metadata output: %w", err)}
	}
	if pj.Title == "" {
		pj.Title = "Unknown"
	}
	if pj.Uploader == "" {
		pj.Uploader = "Unknown"
	}

	return &models.MediaInfo{
		Title:           pj.Title,
		DurationSeconds: pj.Duration,
		ThumbnailURL:    pj.Thumbnail,
		Uploader:        pj.Uploader,
	}, nil
}

// Fetch downloads the source as audio (mp3) or video (mp4) into the
// download directory, named by the sanitized title or nameHint. Filenames
// get a timestamp suffix when the target already exists, so repeated
// downloads never clobber each other.
func (d *Downloader) Fetch(ctx context.Context, url string, format models.MediaFormat, nameHint string) (*models.MediaAsset, error) {
	info, err := d.Probe(ctx, url)
	if err != nil {
		return nil, err
	}

	name := nameHint
	if name == "" {
		name = SanitizeTitle(info.Title)
	}
	if name == "" {
		name = "download_" + uuid.NewString()[:8]
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return nil, &AcquisitionError{URL: url, Err: err}
	}

	localPath := filepath.Join(d.dir, name+"."+format.Extension())
	if _, statErr := os.Stat(localPath); statErr == nil {
		name = name + "_" + d.now().Format("20060102_150405")
		localPath = filepath.Join(d.dir, name+"."+format.Extension())
	}

	args := d.fetchArgs(url, format, filepath.Join(d.dir, name+".%(ext)s"))

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	d.log.Info("downloading media",
		"url", url, "format", string(format), "path", localPath)
	if _, err := d.exec.Run(ctx, d.binary, args...); err != nil {
		return nil, &AcquisitionError{URL: url, Err: err}
	}

	return &models.MediaAsset{
		SourceURL:       url,
		LocalPath:       localPath,
		Title:           info.Title,
		DurationSeconds: info.DurationSeconds,
		Format:          format,
	}, nil
}

// fetchArgs builds the yt-dlp invocation for the requested format.
func (d *Downloader) fetchArgs(url string, format models.MediaFormat, outputTemplate string) []string {
	args := []string{"--no-playlist", "-o", outputTemplate}
	switch format {
	case models.FormatVideo:
		args = append(args, "-f", "best[ext=mp4]")
	default:
		args = append(args, "-f", "bestaudio/best", "-x", "--audio-format", "mp3")
	}
	return append(args, url)
}

// SanitizeTitle converts a source title to a filesystem-safe base name:
// path separators and shell-hostile characters become underscores, runs of
// whitespace collapse, and the result is capped at 120 characters.
func SanitizeTitle(title string) string {
	title = strings.TrimSpace(title)
	var b strings.Builder
	lastUnderscore := false
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '.':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	s := strings.Trim(b.String(), "_.")
	if len(s) > 120 {
		s = s[:120]
	}
	return s
}
