package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/setanarut/recolor"
	"github.com/setanarut/recolor/utils"
	"github.com/spf13/cobra"
)

var paletteCmd = &cobra.Command{
	Use:   "palette <image>",
	Short: "List the labeled colors of an image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := utils.ReadImage(args[0])
		if err != nil {
			return fmt.Errorf("failed to open image: %w", err)
		}
		rc := recolor.NewRecolorer(img)
		rc.Labels = config.Labels
		rc.Build()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "LABEL\tCOLOR\tLUMINANCE\tPIXELS")
		for _, lc := range rc.Palette {
			fmt.Fprintf(w, "%s\t%s\t%.1f\t%d\n", lc.Label, utils.FormatColor(lc.Color), recolor.Luminance(lc.Color), lc.Count)
		}
		return w.Flush()
	},
}
