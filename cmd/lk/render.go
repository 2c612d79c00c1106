package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sonnes/lekhak/compact"
	"github.com/sonnes/lekhak/core"
	"github.com/sonnes/lekhak/reader"
	"github.com/urfave/cli/v3"
)

func renderCmd() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Convert a single session file to a transcript on stdout",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Path to a session file (Cortex JSON or legacy JSONL)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "o",
				Usage: "Output format: terminal, html, json",
				Value: "terminal",
			},
			&cli.StringFlag{
				Name:  "compact",
				Usage: "Enable compact mode. Use --compact=no-thinking to also strip thinking blocks",
			},
		}, redactFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a := newApp()

			t, err := reader.ParseFile(cmd.String("file"))
			if err != nil {
				return err
			}

			redactor, err := newRedactor(cmd)
			if err != nil {
				return err
			}
			if redactor != nil {
				if err := core.Chain(t, redactor); err != nil {
					return fmt.Errorf("redact: %w", err)
				}
			}

			if v := cmd.String("compact"); v != "" {
				compactor := compact.New(compact.Config{StripThinking: v == "no-thinking"})
				if err := core.Chain(t, compactor); err != nil {
					return fmt.Errorf("compact: %w", err)
				}
			}

			rnd, err := a.renderer(cmd.String("o"))
			if err != nil {
				return err
			}

			if err := rnd.Render(os.Stdout, t); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			return nil
		},
	}
}
