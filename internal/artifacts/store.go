package artifacts

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/permitrdu/digest/internal/models"
)

// SavedAnalysis is the on-disk envelope for an extraction run.
type SavedAnalysis struct {
	MeetingInfo      models.MeetingContext `json:"meeting_info"`
	Analysis         models.Analysis       `json:"analysis"`
	TranscriptLength int                   `json:"transcript_length"`
	AnalyzedAt       time.Time             `json:"analyzed_at"`
}

// MediaFile describes one downloaded asset for listings.
type MediaFile struct {
	Filename string  `json:"filename"`
	Size     int64   `json:"size"`
	SizeMB   float64 `json:"size_mb"`
}

// Store reads and writes pipeline artifacts under a single output directory.
type Store struct {
	dir string
	log *slog.Logger
	now func() time.Time
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(dir string, log *slog.Logger, opts ...Option) *Store {
	if log == nil {
		log = slog.Default()
	}
	s := &Store{dir: dir, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Dir() string { return s.dir }

// SaveAnalysis writes the extraction envelope and returns the file path.
func (s *Store) SaveAnalysis(sa SavedAnalysis) (string, error) {
	name := fmt.Sprintf("analysis_%s_%s.json", slugJurisdiction(sa.MeetingInfo.Jurisdiction), s.now().Format("20060102_150405"))

	data, err := json.MarshalIndent(sa, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding analysis: %w", err)
	}

	path := filepath.Join(s.dir, name)
	if err := s.writeAtomic(path, data); err != nil {
		return "", err
	}
	s.log.Info("analysis saved", "path", path)
	return path, nil
}

// SaveNewsletter writes assembled newsletter markdown and returns the file path.
func (s *Store) SaveNewsletter(markdown string, mctx models.MeetingContext) (string, error) {
	name := fmt.Sprintf("newsletter_%s_%s.md", slugJurisdiction(mctx.Jurisdiction), s.now().Format("20060102_150405"))

	path := filepath.Join(s.dir, name)
	if err := s.writeAtomic(path, []byte(markdown)); err != nil {
		return "", err
	}
	s.log.Info("newsletter saved", "path", path)
	return path, nil
}

// LoadAnalysis reads a previously saved extraction envelope.
func (s *Store) LoadAnalysis(path string) (*SavedAnalysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading analysis: %w", err)
	}
	var sa SavedAnalysis
	if err := json.Unmarshal(data, &sa); err != nil {
		return nil, fmt.Errorf("decoding analysis %s: %w", filepath.Base(path), err)
	}
	return &sa, nil
}

// ListMedia returns downloaded audio and video files in dir.
func ListMedia(dir string) ([]MediaFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []MediaFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".mp3" && ext != ".mp4" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, MediaFile{
			Filename: entry.Name(),
			Size:     info.Size(),
			SizeMB:   float64(info.Size()) / (1024 * 1024),
		})
	}
	return files, nil
}

// ListNewsletters returns newsletter file names in the store directory,
// newest first by name.
func (s *Store) ListNewsletters() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "newsletter_") || !strings.HasSuffix(name, ".md") {
			continue
		}
		names = append(names, name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names, nil
}

// ReadNewsletter returns the markdown for one newsletter by file name. The
// name must be a bare file name, not a path.
func (s *Store) ReadNewsletter(name string) (string, error) {
	if name != filepath.Base(name) || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid newsletter name %q", name)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// writeAtomic writes via a temp file in the same directory so a crash never
// leaves a partial artifact.
func (s *Store) writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".artifact-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming %s: %w", filepath.Base(path), err)
	}
	return nil
}

func slugJurisdiction(jurisdiction string) string {
	if jurisdiction == "" {
		jurisdiction = "unknown"
	}
	return strings.ReplaceAll(strings.ToLower(jurisdiction), " ", "_")
}
