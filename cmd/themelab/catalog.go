package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themelab/internal/figures"
)

var catalogOpts struct {
	format string
	id     string
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the figure catalog",
	Long: `List the figure archetypes the engine styles: one line per figure
with its id, output file, and override count.

With --id, print the full override mapping for a single figure.`,
	RunE: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.Flags().StringVarP(&catalogOpts.format, "format", "f", "table",
		"Output format (table, json)")
	catalogCmd.Flags().StringVar(&catalogOpts.id, "id", "",
		"Show a single figure's overrides")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cat, err := figures.Load()
	if err != nil {
		return err
	}

	if catalogOpts.id != "" {
		spec, ok := cat.Get(catalogOpts.id)
		if !ok {
			return fmt.Errorf("unknown figure id %q", catalogOpts.id)
		}
		if strings.EqualFold(catalogOpts.format, "json") {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(spec)
		}
		fmt.Printf("%s  %s  (%s)\n", spec.ID, spec.Title, spec.File)
		keys := spec.Overrides.Keys()
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %-28s %v\n", k, spec.Overrides[k])
		}
		return nil
	}

	specs := cat.Specs()
	if strings.EqualFold(catalogOpts.format, "json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(specs)
	}

	for _, s := range specs {
		fmt.Printf("%-12s  %-24s  %s  (%d overrides)\n", s.ID, s.Title, s.File, len(s.Overrides))
	}
	return nil
}
