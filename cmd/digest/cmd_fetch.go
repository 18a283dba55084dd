package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/permitrdu/digest/internal/models"
)

var (
	fetchFormat      string
	fetchFilename    string
	fetchDownloadDir string
)

func newFetchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Download meeting media as audio or video",
		Long: `Download a meeting recording from a video source.

Audio downloads (mp3) are the usual input for processing; video (mp4) is
kept for archival viewing.`,
		Args: cobra.ExactArgs(1),
		RunE: fetchCommandE,
	}

	cmd.Flags().StringVarP(&fetchFormat, "format", "f", "mp3", "Download format: mp3 or mp4")
	cmd.Flags().StringVar(&fetchFilename, "filename", "", "Base filename (default: sanitized source title)")
	cmd.Flags().StringVar(&fetchDownloadDir, "download-dir", "", "Directory for downloaded media")

	return cmd
}

func fetchCommandE(cmd *cobra.Command, args []string) error {
	var format models.MediaFormat
	switch fetchFormat {
	case "mp3":
		format = models.FormatAudio
	case "mp4":
		format = models.FormatVideo
	default:
		return fmt.Errorf("unsupported format %q: must be mp3 or mp4", fetchFormat)
	}

	downloader, _, err := buildDownloader(fetchDownloadDir)
	if err != nil {
		return err
	}

	asset, err := downloader.Fetch(cmd.Context(), args[0], format, fetchFilename)
	if err != nil {
		return err
	}

	fmt.Printf("Downloaded: %s\n", asset.LocalPath)
	fmt.Printf("Title:      %s\n", asset.Title)
	fmt.Printf("Duration:   %s\n", formatDuration(asset.DurationSeconds))
	return nil
}
