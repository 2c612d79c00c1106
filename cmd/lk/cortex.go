package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/sonnes/lekhak/compact"
	"github.com/sonnes/lekhak/core"
	"github.com/sonnes/lekhak/manifest"
	"github.com/sonnes/lekhak/reader"
	"github.com/sonnes/lekhak/reader/cortex"
	htmlrender "github.com/sonnes/lekhak/render/html"
	"github.com/urfave/cli/v3"
)

func cortexCmd() *cli.Command {
	return &cli.Command{
		Name:  "cortex",
		Usage: "Convert a directory of Cortex session files into a static HTML site",
		Description: `Scans --source for Cortex session files, converts each to a standalone
HTML page, and writes an index.html plus manifest.json into --output.
Files that are not Cortex sessions are skipped silently.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "source",
				Aliases:  []string{"s"},
				Usage:    "Directory containing Cortex session files",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory for the generated site",
				Value:   "site",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of sessions to convert (0 = all)",
			},
			&cli.StringFlag{
				Name:  "compact",
				Usage: "Enable compact mode. Use --compact=no-thinking to also strip thinking blocks",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			source := cmd.String("source")
			if _, err := os.Stat(source); err != nil {
				return fmt.Errorf("source directory %s: %w", source, err)
			}

			sessions := cortex.FindSessions(source, int(cmd.Int("limit")))
			log.Info("found sessions", "source", source, "count", len(sessions))

			var compactor *compact.Compactor
			if v := cmd.String("compact"); v != "" {
				compactor = compact.New(compact.Config{StripThinking: v == "no-thinking"})
			}

			pages := make([]htmlrender.Page, 0, len(sessions))
			for _, s := range sessions {
				t, err := reader.ParseFile(s.Path)
				if err != nil {
					return fmt.Errorf("parse %s: %w", s.Path, err)
				}
				if compactor != nil {
					if err := core.Chain(t, compactor); err != nil {
						return fmt.Errorf("compact %s: %w", s.Path, err)
					}
				}
				pages = append(pages, htmlrender.Page{
					Path:       s.Path,
					Summary:    s.Summary,
					Transcript: t,
				})
			}

			output := cmd.String("output")
			renderer := htmlrender.New()
			entries, err := renderer.WriteSite(output, pages)
			if err != nil {
				return err
			}

			m := &manifest.Manifest{}
			for _, e := range entries {
				m.Upsert(e)
			}
			manifestPath := filepath.Join(output, "manifest.json")
			if err := m.WriteFile(manifestPath); err != nil {
				return fmt.Errorf("write manifest: %w", err)
			}

			log.Info("site generated", "output", output, "pages", len(pages))
			fmt.Printf("Wrote %d page(s) to %s\n", len(pages), output)
			return nil
		},
	}
}
