package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/brandgraph/internal/application/handlers"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify configuration and external service connectivity",
		Long:  "Probes the content source and the LLM classifier with minimal requests to confirm credentials work before a full run.",
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	return withDeps(func(d *Deps) error {
		source, err := d.Source()
		if err != nil {
			return err
		}
		cl, err := d.Classifier()
		if err != nil {
			return err
		}

		fmt.Println("Checking external services...")

		h := handlers.NewCheckHandler(source, cl, d.Log)
		if err := h.Handle(cmd.Context(), d.Query()); err != nil {
			return fmt.Errorf("connectivity check failed: %w", err)
		}

		fmt.Println("All checks passed")
		fmt.Printf("Run directory: %s\n", d.Config.RunDir())
		return nil
	})
}
