package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/csheth/caseassist/internal/markup"
	"github.com/csheth/caseassist/internal/workflow"
)

func newAskCmd(a *app) *cobra.Command {
	var asHTML bool
	cmd := &cobra.Command{
		Use:   "ask TEXT...",
		Short: "Ask for advice once and print the suggestion",
		Example: `  caseassist ask "my landlord kept the whole deposit"
  caseassist ask --html "tenant rights after a flood"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			advice := workflow.NewAdvice(a.logger)
			advice.SetText(strings.Join(args, " "))
			ticket, ok := advice.Submit()
			if !ok {
				return errors.New(advice.Validation().Message())
			}
			advice.Resolve(workflow.RunAdvice(cmd.Context(), a.client, ticket))
			payload, ok := advice.Payload()
			if !ok {
				return errors.New(advice.Failure())
			}
			return printAdvice(cmd.OutOrStdout(), payload, asHTML)
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "print the formatted HTML instead of terminal text")
	return cmd
}

func printAdvice(w io.Writer, payload workflow.AdvicePayload, asHTML bool) error {
	body := payload.FormattedHTML
	if !asHTML {
		body = documentRenderer(w)(payload.Document)
	}
	if _, err := fmt.Fprintln(w, body); err != nil {
		return err
	}
	if len(payload.Sources) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "\nSources:"); err != nil {
		return err
	}
	for _, src := range payload.Sources {
		if _, err := fmt.Fprintf(w, "  - %s\n", src); err != nil {
			return err
		}
	}
	return nil
}

func newSearchCmd(a *app) *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "search TEXT...",
		Short: "Search similar examples once and print the hits",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			search := workflow.NewSearch(a.logger)
			search.SetText(strings.Join(args, " "))
			ticket, ok := search.Submit()
			if !ok {
				return errors.New(search.Validation().Message())
			}
			search.Resolve(workflow.RunSearch(cmd.Context(), a.client, ticket))
			if search.Status() != workflow.Succeeded {
				return errors.New(search.Failure())
			}
			if full {
				for _, view := range search.HitViews() {
					if view.Truncated {
						search.Toggle(view.Index)
					}
				}
			}
			return printHits(cmd.OutOrStdout(), search.HitViews())
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "print every hit in full")
	return cmd
}

func printHits(w io.Writer, views []workflow.HitView) error {
	render := documentRenderer(w)
	for i, view := range views {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "[%d] %s\n", view.Index+1, render(view.Document)); err != nil {
			return err
		}
		if view.Hit.Source != "" {
			if _, err := fmt.Fprintf(w, "    Source: %s\n", view.Hit.Source); err != nil {
				return err
			}
		}
	}
	return nil
}

// documentRenderer styles output for terminals and keeps it plain when piped.
func documentRenderer(w io.Writer) func(markup.Document) string {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return markup.NewRenderer(0).Render
	}
	return markup.Document.PlainText
}
