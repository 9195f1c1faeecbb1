package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"lifestat/adapters/methods"
)

func newMethodsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "methods",
		Short: "List the available methods and their input layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogue := methods.Catalogue()
			w := cmd.OutOrStdout()

			switch format {
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(catalogue)
			case "yaml":
				return yaml.NewEncoder(w).Encode(catalogue)
			}

			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tNAME\tGRAPH\tINPUT")
			for _, info := range catalogue {
				graph := "-"
				if info.HasGraph {
					graph = "yes"
					if info.LogScaleX {
						graph = "yes (log x)"
					}
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", info.Kind, info.Name, graph, info.Input)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text|json|yaml")
	return cmd
}
