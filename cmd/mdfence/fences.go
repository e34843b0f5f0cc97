package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/mdfence/fence"
)

func newFencesCmd(withEnv envWrapper) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "fences FILE",
		Short: "List fenced code blocks with their rows and languages",
		Args:  cobra.ExactArgs(1),
		RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			fences := fence.NewIndex(doc).Fences()

			if asJSON {
				out := make([]fenceJSON, 0, len(fences))
				for _, f := range fences {
					out = append(out, newFenceJSON(f))
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "START\tEND\tLANG\tBUNDLE")
			for _, f := range fences {
				end := "open"
				if f.Closed {
					end = fmt.Sprint(f.EndRow + 1)
				}
				bundle := "-"
				if b := e.reg.Resolve(f.Lang); b != nil {
					bundle = b.Name()
				}
				lang := f.Lang
				if lang == "" {
					lang = "-"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", f.StartRow+1, end, lang, bundle)
			}
			return tw.Flush()
		}),
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
