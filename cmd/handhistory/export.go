package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lox/handhistory/internal/fileutil"
	"github.com/lox/handhistory/internal/phh"
	"github.com/lox/handhistory/internal/service"
)

// ExportCmd parses hand history files and writes each accepted hand as a
// PHH TOML file
type ExportCmd struct {
	Paths    []string `arg:"" type:"existingfile" help:"Hand history files to export"`
	Output   string   `short:"o" default:"." help:"Directory to write .phh files into"`
	Username string   `short:"u" help:"Focal player username (overrides config)"`
}

func (c *ExportCmd) Run(appCtx *Context) error {
	if err := os.MkdirAll(c.Output, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	svc := appCtx.Service
	if c.Username != "" {
		config := *appCtx.Config
		config.Parser.PlayerUsername = c.Username
		svc = service.New(&config, appCtx.Logger)
	}

	exported := 0
	for _, path := range c.Paths {
		hands, details, err := svc.ParseFile(path)
		if err != nil {
			appCtx.Logger.Error("file failed", "path", path, "error", err)
			continue
		}
		if len(details) > 0 {
			appCtx.Logger.Warn("skipped hands", "path", path, "count", len(details))
		}

		for _, h := range hands {
			data, err := phh.EncodeToBytes(phh.FromHand(h))
			if err != nil {
				appCtx.Logger.Error("encoding failed", "hand_id", h.HandID, "error", err)
				continue
			}

			out := filepath.Join(c.Output, fmt.Sprintf("%s-%s.phh", h.Platform, h.HandID))
			if err := fileutil.WriteFileAtomic(out, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			exported++
		}
	}

	appCtx.Logger.Info("export complete", "hands", exported, "dir", c.Output)
	return nil
}
