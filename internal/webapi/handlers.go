package webapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"

	"github.com/permitrdu/digest/internal/artifacts"
	"github.com/permitrdu/digest/internal/models"
)

// Version is set at build time or defaults to dev.
var Version = "0.1.0"

// MediaFetcher probes and downloads remote meeting media.
type MediaFetcher interface {
	Probe(ctx context.Context, url string) (*models.MediaInfo, error)
	Fetch(ctx context.Context, url string, format models.MediaFormat, nameHint string) (*models.MediaAsset, error)
}

// NewsletterStore lists and reads saved newsletters.
type NewsletterStore interface {
	ListNewsletters() ([]string, error)
	ReadNewsletter(name string) (string, error)
}

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	fetcher     MediaFetcher
	newsletters NewsletterStore
	downloadDir string
	log         *slog.Logger
}

// NewHandlers creates a new Handlers.
func NewHandlers(fetcher MediaFetcher, newsletters NewsletterStore, downloadDir string, log *slog.Logger) *Handlers {
	if log == nil {
		log = slog.Default()
	}
	return &Handlers{
		fetcher:     fetcher,
		newsletters: newsletters,
		downloadDir: downloadDir,
		log:         log,
	}
}

// HandleInfo probes source metadata without downloading.
func (h *Handlers) HandleInfo(w http.ResponseWriter, r *http.Request) {
	var req VideoInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	info, err := h.fetcher.Probe(r.Context(), req.URL)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, InfoResponse{
		Success: true,
		Info: MediaInfo{
			Title:     info.Title,
			Duration:  info.DurationSeconds,
			Thumbnail: info.ThumbnailURL,
			Uploader:  info.Uploader,
		},
	})
}

// HandleDownload fetches a source as mp3 or mp4.
func (h *Handlers) HandleDownload(w http.ResponseWriter, r *http.Request) {
	var req DownloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	var format models.MediaFormat
	switch req.Format {
	case "mp3", "":
		format = models.FormatAudio
	case "mp4":
		format = models.FormatVideo
	default:
		writeError(w, http.StatusBadRequest, "format must be mp3 or mp4")
		return
	}

	asset, err := h.fetcher.Fetch(r.Context(), req.URL, format, req.Filename)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, DownloadResponse{
		Success: true,
		Message: "download complete",
		Result: DownloadResult{
			Title:    asset.Title,
			Duration: asset.DurationSeconds,
			Filename: filepath.Base(asset.LocalPath),
		},
	})
}

// HandleFiles lists downloaded media files.
func (h *Handlers) HandleFiles(w http.ResponseWriter, _ *http.Request) {
	files, err := artifacts.ListMedia(h.downloadDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if files == nil {
		files = []artifacts.MediaFile{}
	}
	writeJSON(w, http.StatusOK, FilesResponse{Files: files})
}

// HandleHealth returns a liveness response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   "meeting-processor",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Message:   "Meeting processing service is running",
	})
}

// HandleMeetingsInfo describes the meetings service.
func (h *Handlers) HandleMeetingsInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ServiceInfoResponse{
		Service: "meeting-processor",
		Version: Version,
		Endpoints: map[string]string{
			"health":      "/api/meetings/health",
			"info":        "/api/downloads/info",
			"download":    "/api/downloads/download",
			"files":       "/api/downloads/files",
			"newsletters": "/api/newsletters",
		},
	})
}

// HandleNewsletters lists saved newsletters.
func (h *Handlers) HandleNewsletters(w http.ResponseWriter, _ *http.Request) {
	names, err := h.newsletters.ListNewsletters()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, NewslettersResponse{Newsletters: names})
}

// HandleNewsletter renders one newsletter's markdown to HTML.
func (h *Handlers) HandleNewsletter(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	markdown, err := h.newsletters.ReadNewsletter(name)
	if err != nil {
		writeError(w, http.StatusNotFound, "newsletter not found")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := goldmark.Convert([]byte(markdown), w); err != nil {
		h.log.Error("rendering newsletter failed", "name", name, "error", err)
	}
}

// RegisterRoutes mounts all API routes on the router.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/downloads/info", h.HandleInfo)
		r.Post("/downloads/download", h.HandleDownload)
		r.Get("/downloads/files", h.HandleFiles)
		r.Get("/meetings/health", h.HandleHealth)
		r.Get("/meetings", h.HandleMeetingsInfo)
		r.Get("/newsletters", h.HandleNewsletters)
		r.Get("/newsletters/{name}", h.HandleNewsletter)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Success: false, Error: msg})
}
