package main

import (
	"fmt"

	"github.com/lox/handhistory/internal/platform"
)

// ScanCmd lists hand history files under a directory, or under the
// conventional install locations for each platform when no path is given
type ScanCmd struct {
	Path    string `arg:"" optional:"" help:"Directory to scan (defaults to per-platform locations)"`
	Recurse bool   `short:"r" help:"Recurse into subdirectories"`
}

func (c *ScanCmd) Run(appCtx *Context) error {
	if c.Path != "" {
		files, err := appCtx.Service.ScanDirectory(c.Path, c.Recurse)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Println(f)
		}
		appCtx.Logger.Info("scan complete", "path", c.Path, "files", len(files))
		return nil
	}

	for _, p := range platform.Supported {
		for _, dir := range appCtx.Service.DefaultPaths(p) {
			files, err := appCtx.Service.ScanDirectory(dir, true)
			if err != nil {
				appCtx.Logger.Debug("skipping location", "platform", p, "path", dir, "error", err)
				continue
			}
			for _, f := range files {
				fmt.Printf("%s\t%s\n", p, f)
			}
		}
	}
	return nil
}
