package models

// MediaFormat selects how a source is downloaded.
type MediaFormat string

const (
	FormatAudio MediaFormat = "audio"
	FormatVideo MediaFormat = "video"
)

// Extension returns the container extension downloads of this format use.
func (f MediaFormat) Extension() string {
	if f == FormatVideo {
		return "mp4"
	}
	return "mp3"
}

// MediaAsset is a downloaded media file on local disk.
type MediaAsset struct {
	SourceURL       string      `json:"source_url"`
	LocalPath       string      `json:"local_path"`
	Title           string      `json:"title"`
	DurationSeconds float64     `json:"duration_seconds"`
	Format          MediaFormat `json:"format"`
}

// MediaInfo is source metadata probed without downloading.
type MediaInfo struct {
	Title           string  `json:"title"`
	DurationSeconds float64 `json:"duration"`
	ThumbnailURL    string  `json:"thumbnail"`
	Uploader        string  `json:"uploader"`
}
