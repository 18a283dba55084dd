package main

import (
	"log/slog"

	"github.com/permitrdu/digest/internal/acquire"
	"github.com/permitrdu/digest/internal/analysis"
	"github.com/permitrdu/digest/internal/artifacts"
	"github.com/permitrdu/digest/internal/config"
	"github.com/permitrdu/digest/internal/genai"
	"github.com/permitrdu/digest/internal/newsletter"
	"github.com/permitrdu/digest/internal/speech"
)

// services bundles the pipeline stages built from one Config.
type services struct {
	cfg       *config.Config
	speech    *speech.Service
	analyzer  *analysis.Analyzer
	generator *newsletter.Generator
	store     *artifacts.Store
}

// buildServices constructs the endpoint-backed stages. It fails when no API
// credential is configured.
func buildServices(outputDir string) (*services, error) {
	cfg, err := config.MustLoad(configPath)
	if err != nil {
		return nil, err
	}
	if outputDir == "" {
		outputDir = cfg.Paths.Output
	}

	log := slog.Default()
	client := genai.NewClient(cfg.APIKey, cfg.APIBaseURL, cfg.RequestTimeout(), log)

	return &services{
		cfg:       cfg,
		speech:    speech.NewService(client, nil, cfg.Models.Transcription, log),
		analyzer:  analysis.NewAnalyzer(client, cfg.Models.Extraction, cfg.Limits.TranscriptChars, log),
		generator: newsletter.NewGenerator(client, cfg.Models.Composition, cfg.Limits.SectionWorkers, log),
		store:     artifacts.NewStore(outputDir, log),
	}, nil
}

// buildDownloader constructs the media downloader. Downloading needs no API
// credential, so configuration errors here are limited to file parsing.
func buildDownloader(downloadDir string) (*acquire.Downloader, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if downloadDir == "" {
		downloadDir = cfg.Paths.Downloads
	}
	d := acquire.New(downloadDir,
		acquire.WithTimeout(cfg.DownloadTimeout()),
		acquire.WithLogger(slog.Default()))
	return d, cfg, nil
}
