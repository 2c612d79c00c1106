package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/sonnes/lekhak/core"
	"github.com/sonnes/lekhak/reader"
	"github.com/sonnes/lekhak/reader/cortex"
	htmlrender "github.com/sonnes/lekhak/render/html"
	"github.com/urfave/cli/v3"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve sessions for browsing in a local web UI",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "source",
				Aliases:  []string{"s"},
				Usage:    "Directory containing Cortex session files",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on",
				Value: 8080,
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of sessions to serve (0 = all)",
			},
		}, redactFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			source := cmd.String("source")
			if _, err := os.Stat(source); err != nil {
				return fmt.Errorf("source directory %s: %w", source, err)
			}

			redactor, err := newRedactor(cmd)
			if err != nil {
				return err
			}

			sessions := cortex.FindSessions(source, int(cmd.Int("limit")))

			byID := make(map[string]*core.Transcript)
			entries := make([]core.ManifestEntry, 0, len(sessions))
			for _, s := range sessions {
				t, err := reader.ParseFile(s.Path)
				if err != nil {
					return fmt.Errorf("parse %s: %w", s.Path, err)
				}
				if redactor != nil {
					if err := core.Chain(t, redactor); err != nil {
						return fmt.Errorf("redact %s: %w", s.Path, err)
					}
				}
				byID[t.SessionID] = t
				entries = append(entries, core.NewManifestEntry(t, s.Path, "/session/"+t.SessionID, s.Summary))
			}

			renderer := htmlrender.New()
			mux := http.NewServeMux()

			mux.HandleFunc("GET /", func(w http.ResponseWriter, req *http.Request) {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				if err := renderer.RenderIndex(w, entries); err != nil {
					log.Error("render index", "error", err)
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			})

			mux.HandleFunc("GET /session/{id}", func(w http.ResponseWriter, req *http.Request) {
				id := req.PathValue("id")
				t, ok := byID[id]
				if !ok {
					http.NotFound(w, req)
					return
				}
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				if err := renderer.Render(w, t); err != nil {
					log.Error("render session", "session_id", id, "error", err)
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			})

			addr := fmt.Sprintf(":%d", cmd.Int("port"))
			log.Info("serving", "addr", "http://localhost"+addr, "sessions", len(sessions))
			fmt.Printf("Serving %d session(s) at http://localhost%s\n", len(sessions), addr)
			return http.ListenAndServe(addr, mux)
		},
	}
}
