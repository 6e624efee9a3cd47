package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/portfolio/internal/observability"
	"github.com/jonathan/portfolio/internal/types"
	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:       "list [case-studies|writing]",
	Short:     "List case studies and writing in display order",
	Long:      "Resolves every document of a collection, failing on the first invalid one, and prints them in display order. With no argument both collections are listed.",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{types.CategoryCaseStudies.String(), types.CategoryWriting.String()},
	RunE:      runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print records as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	store := newStore()
	printer := observability.NewPrinter(cmd.OutOrStdout())
	out := map[string]any{}

	if len(args) == 0 || args[0] == types.CategoryCaseStudies.String() {
		studies, err := store.CaseStudies()
		if err != nil {
			return fmt.Errorf("failed to load case studies: %w", err)
		}
		out[types.CategoryCaseStudies.String()] = studies
		if !listJSON {
			printer.PrintCaseStudies(studies)
		}
	}

	if len(args) == 0 || args[0] == types.CategoryWriting.String() {
		posts, err := store.Writing()
		if err != nil {
			return fmt.Errorf("failed to load writing: %w", err)
		}
		out[types.CategoryWriting.String()] = posts
		if !listJSON {
			printer.PrintWriting(posts)
		}
	}

	if listJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if len(args) == 1 {
			return enc.Encode(out[args[0]])
		}
		return enc.Encode(out)
	}
	return nil
}
