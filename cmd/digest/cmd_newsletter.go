package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/permitrdu/digest/internal/newsletter"
)

var newsletterOutputDir string

func newNewsletterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "newsletter <analysis.json>",
		Short: "Compose the newsletter from a saved analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  newsletterCommandE,
	}

	cmd.Flags().StringVarP(&newsletterOutputDir, "output-dir", "o", "", "Directory for the newsletter artifact")

	return cmd
}

func newsletterCommandE(cmd *cobra.Command, args []string) error {
	svcs, err := buildServices(newsletterOutputDir)
	if err != nil {
		return err
	}

	saved, err := svcs.store.LoadAnalysis(args[0])
	if err != nil {
		return err
	}

	nl := svcs.generator.Generate(cmd.Context(), saved.Analysis, saved.MeetingInfo)
	markdown := newsletter.Assemble(nl, saved.MeetingInfo, time.Now())

	path, err := svcs.store.SaveNewsletter(markdown, saved.MeetingInfo)
	if err != nil {
		return err
	}

	fmt.Printf("Newsletter saved: %s\n", path)
	return nil
}
