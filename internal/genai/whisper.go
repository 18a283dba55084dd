package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// TranscribeRequest is one speech-to-text call over a local media file.
type TranscribeRequest struct {
	FilePath string
	Model    string
	// Prompt is the domain-priming text biasing recognition toward the
	// expected vocabulary.
	Prompt string
}

// WhisperSegment is a timestamped span from the verbose response format.
type WhisperSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// WhisperResponse is the verbose transcription response.
type WhisperResponse struct {
	Text     string           `json:"text"`
	Language string           `json:"language"`
	Duration float64          `json:"duration"`
	Segments []WhisperSegment `json:"segments"`
}

// Transcriber issues a single speech-to-text request.
type Transcriber interface {
	Transcribe(ctx context.Context, req TranscribeRequest) (*WhisperResponse, error)
}

// Transcribe implements Transcriber: the whole file is uploaded in one
// multipart request, with the verbose response format requested so
// per-segment timestamps come back when available.
func (c *Client) Transcribe(ctx context.Context, req TranscribeRequest) (*WhisperResponse, error) {
	file, err := os.Open(req.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open media file: %w", err)
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("model", req.Model); err != nil {
		return nil, err
	}
	if err := writer.WriteField("response_format", "verbose_json"); err != nil {
		return nil, err
	}
	if req.Prompt != "" {
		if err := writer.WriteField("prompt", req.Prompt); err != nil {
			return nil, err
		}
	}

	part, err := writer.CreateFormFile("file", filepath.Base(req.FilePath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read media file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/audio/transcriptions", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.log.Debug("sending transcription request",
		"file", req.FilePath, "model", req.Model)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &EndpointError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &EndpointError{Err: fmt.Errorf("failed to read response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &EndpointError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	var parsed WhisperResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &EndpointError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	c.log.Debug("transcription received",
		"text_length", len(parsed.Text),
		"duration", parsed.Duration,
		"segments", len(parsed.Segments))
	return &parsed, nil
}
