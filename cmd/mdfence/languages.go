package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newLanguagesCmd(withEnv envWrapper) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List language bundles and their fence tags",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			fenced := make(map[string]bool)
			for _, b := range e.reg.Fenced() {
				fenced[b.Name()] = true
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tALIASES\tFENCE\tKEYWORDS")
			for _, b := range e.reg.Bundles() {
				aliases := strings.Join(b.Aliases(), ",")
				if aliases == "" {
					aliases = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%v\t%d\n", b.Name(), aliases, fenced[b.Name()], len(b.Complete("")))
			}
			return tw.Flush()
		}),
	}
}
