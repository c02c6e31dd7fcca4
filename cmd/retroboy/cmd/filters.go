package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/32bitkid/retroboy"
	"github.com/spf13/cobra"
)

// NewFiltersCmd lists the filter presets.
func NewFiltersCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filters",
		Short: "list filter presets",
		Long:  "list the filter presets accepted by process --filter",
		Run: func(cmd *cobra.Command, args []string) {
			printPresets(cmd.OutOrStdout())
		},
	}
	return cmd
}

func printPresets(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, key := range retroboy.Presets {
		f := retroboy.FilterFor(key)
		def := ""
		if key == retroboy.DefaultPreset {
			def = "(default)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%v\t%d colors\t%s\n", key, retroboy.PresetLabel(key), f.Kind(), len(f.Palette()), def)
	}
	tw.Flush()
}
