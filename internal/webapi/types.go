package webapi

import "github.com/permitrdu/digest/internal/artifacts"

// VideoInfoRequest asks for source metadata without downloading.
type VideoInfoRequest struct {
	URL string `json:"url"`
}

// DownloadRequest asks for a source to be fetched to local storage.
type DownloadRequest struct {
	URL      string `json:"url"`
	Format   string `json:"format"`
	Filename string `json:"filename,omitempty"`
}

// InfoResponse carries probed metadata.
type InfoResponse struct {
	Success bool      `json:"success"`
	Info    MediaInfo `json:"info"`
}

// MediaInfo is the wire shape of probed metadata.
type MediaInfo struct {
	Title     string  `json:"title"`
	Duration  float64 `json:"duration"`
	Thumbnail string  `json:"thumbnail"`
	Uploader  string  `json:"uploader"`
}

// DownloadResponse confirms a completed fetch.
type DownloadResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Result  DownloadResult `json:"result"`
}

// DownloadResult describes the fetched file.
type DownloadResult struct {
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
	Filename string  `json:"filename"`
}

// FilesResponse lists downloaded media.
type FilesResponse struct {
	Files []artifacts.MediaFile `json:"files"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
}

// ServiceInfoResponse describes the meetings service and its endpoints.
type ServiceInfoResponse struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// NewslettersResponse lists saved newsletters.
type NewslettersResponse struct {
	Newsletters []string `json:"newsletters"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
