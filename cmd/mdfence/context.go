package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/mdfence/detector"
	"github.com/iw2rmb/mdfence/fence"
)

// Rows and columns in CLI output are 1-based, like the fences table.
type fenceJSON struct {
	StartRow int    `json:"start_row"`
	EndRow   *int   `json:"end_row,omitempty"`
	Closed   bool   `json:"closed"`
	Lang     string `json:"lang"`
}

func newFenceJSON(f fence.Fence) fenceJSON {
	out := fenceJSON{StartRow: f.StartRow + 1, Closed: f.Closed, Lang: f.Lang}
	if f.Closed {
		end := f.EndRow + 1
		out.EndRow = &end
	}
	return out
}

type contextJSON struct {
	Offset     int        `json:"offset"`
	Row        int        `json:"row"`
	Col        int        `json:"col"`
	Context    string     `json:"context"`
	Bundle     string     `json:"bundle,omitempty"`
	Structural bool       `json:"structural"`
	Fence      *fenceJSON `json:"fence,omitempty"`
}

func newContextCmd(withEnv envWrapper) *cobra.Command {
	var (
		offset int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "context FILE",
		Short: "Print the editing context at a rune offset",
		Args:  cobra.ExactArgs(1),
		RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}

			det := detector.New(detector.Options{Registry: e.reg, Logger: e.log})
			if _, _, err := det.OnPositionChanged(doc, offset); err != nil {
				return err
			}
			sw := detector.Command(e.reg, det.Last())

			pos, err := doc.PosFromOffset(offset)
			if err != nil {
				return err
			}
			out := contextJSON{
				Offset:     offset,
				Row:        pos.Row + 1,
				Col:        pos.Col + 1,
				Context:    sw.Context.String(),
				Structural: sw.Structural,
			}
			if sw.Bundle != nil {
				out.Bundle = sw.Bundle.Name()
			}
			if f, inside, err := fence.Locate(doc, offset); err == nil && inside {
				fj := newFenceJSON(f)
				out.Fence = &fj
			}

			w := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(w, out)
			}
			line := out.Context
			if out.Bundle != "" {
				line += " bundle=" + out.Bundle
			}
			if out.Structural {
				line += " structural"
			}
			_, err = fmt.Fprintln(w, line)
			return err
		}),
	}
	cmd.Flags().IntVar(&offset, "offset", 0, "rune offset into the document")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
