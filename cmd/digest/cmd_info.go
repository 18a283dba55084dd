package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <url>",
		Short: "Show source metadata without downloading",
		Args:  cobra.ExactArgs(1),
		RunE:  infoCommandE,
	}
}

func infoCommandE(cmd *cobra.Command, args []string) error {
	downloader, _, err := buildDownloader("")
	if err != nil {
		return err
	}

	info, err := downloader.Probe(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Title:    %s\n", info.Title)
	fmt.Printf("Duration: %s\n", formatDuration(info.DurationSeconds))
	fmt.Printf("Uploader: %s\n", info.Uploader)
	if info.ThumbnailURL != "" {
		fmt.Printf("Thumbnail: %s\n", info.ThumbnailURL)
	}
	return nil
}
