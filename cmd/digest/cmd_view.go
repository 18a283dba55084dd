package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/permitrdu/digest/internal/artifacts"
)

func newViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view <analysis.json>",
		Short: "Display a saved analysis in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  viewCommandE,
	}
}

func viewCommandE(_ *cobra.Command, args []string) error {
	// Viewing is a local read; no credentials or endpoints involved.
	store := artifacts.NewStore(".", nil)
	saved, err := store.LoadAnalysis(args[0])
	if err != nil {
		return err
	}

	renderAnalysis(os.Stdout, saved)
	return nil
}
