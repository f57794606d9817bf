package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newModulesCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List the modules the application declares",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, reg, err := opts.registry()
			if err != nil {
				return err
			}
			mods, err := reg.Modules()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				type row struct {
					Name     string   `json:"name"`
					Root     string   `json:"root"`
					Assets   []string `json:"assets"`
					Features []string `json:"features"`
				}
				rows := make([]row, 0, len(mods))
				for _, m := range mods {
					r := row{Name: m.Name, Root: m.Root, Assets: []string{}, Features: []string{}}
					for _, a := range m.Assets {
						r.Assets = append(r.Assets, a.ModulePath)
					}
					for _, f := range m.Info.Features {
						r.Features = append(r.Features, f.ID)
					}
					rows = append(rows, r)
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "MODULE\tROOT\tASSETS\tFEATURES")
			for _, m := range mods {
				features := make([]string, 0, len(m.Info.Features))
				for _, f := range m.Info.Features {
					features = append(features, f.ID)
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", m.Name, m.Root, len(m.Assets), strings.Join(features, ","))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
