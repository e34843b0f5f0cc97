package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/mdfence/completion"
	"github.com/iw2rmb/mdfence/fence"
)

type candidateJSON struct {
	Label    string `json:"label"`
	Kind     string `json:"kind"`
	Insert   string `json:"insert"`
	From     int    `json:"from"`
	To       int    `json:"to"`
	Priority int    `json:"priority"`
	Cursor   int    `json:"cursor"`
}

type completeJSON struct {
	Source     string          `json:"source"`
	Candidates []candidateJSON `json:"candidates"`
}

func newCompleteCmd(withEnv envWrapper) *cobra.Command {
	var (
		line   string
		lang   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Print completions for the text before the cursor",
		Long: `complete evaluates the completion rules against --line, the current line up to
the cursor. With --lang the cursor is treated as inside a fence with that tag;
recognized languages complete their keywords instead of markdown structure.`,
		Args: cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			ctx := fence.Context{Kind: fence.Prose}
			if cmd.Flags().Changed("lang") {
				ctx = fence.Context{Kind: fence.InFence, Lang: lang}
			}
			cursor := utf8.RuneCountInString(line)

			res, src := completion.New(e.reg).CompleteIn(ctx, line, 0, cursor)
			if src == completion.SourceBundle {
				res = completion.Keywords(e.reg.Resolve(lang), line, cursor)
			}

			out := completeJSON{Source: src.String(), Candidates: []candidateJSON{}}
			if res != nil {
				for _, c := range res.Candidates {
					out.Candidates = append(out.Candidates, candidateJSON{
						Label:    c.Label,
						Kind:     c.Kind.String(),
						Insert:   c.InsertText,
						From:     c.ReplaceFrom,
						To:       c.ReplaceTo,
						Priority: c.Priority,
						Cursor:   c.Cursor,
					})
				}
			}

			w := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(w, out)
			}
			for _, c := range out.Candidates {
				if _, err := fmt.Fprintf(w, "%s\t%s\t%q\n", c.Kind, c.Label, c.Insert); err != nil {
					return err
				}
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&line, "line", "", "line text before the cursor")
	cmd.Flags().StringVar(&lang, "lang", "", "fence tag enclosing the cursor")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
