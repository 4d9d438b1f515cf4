package main

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/lox/handhistory/internal/platform"
	"github.com/lox/handhistory/internal/report"
	"github.com/lox/handhistory/internal/service"
)

// ParseCmd parses one or more hand history files and prints a batch summary
type ParseCmd struct {
	Paths       []string `arg:"" type:"existingfile" help:"Hand history files to parse"`
	Username    string   `short:"u" help:"Focal player username (overrides config)"`
	Strict      bool     `help:"Enable strict validation (overrides config)"`
	Concurrency int      `default:"4" help:"Number of files parsed in parallel"`
}

func (c *ParseCmd) Run(appCtx *Context) error {
	svc := appCtx.Service
	if c.Username != "" || c.Strict {
		config := *appCtx.Config
		if c.Username != "" {
			config.Parser.PlayerUsername = c.Username
		}
		if c.Strict {
			config.Parser.StrictValidation = true
		}
		svc = service.New(&config, appCtx.Logger)
	}

	var (
		mu      sync.Mutex
		summary report.BatchSummary
	)

	var g errgroup.Group
	g.SetLimit(c.Concurrency)
	for _, path := range c.Paths {
		g.Go(func() error {
			hands, details, err := svc.ParseFile(path)
			if err != nil {
				appCtx.Logger.Error("file failed", "path", path, "error", err)
			}

			mu.Lock()
			defer mu.Unlock()
			summary.Files++
			summary.Accepted += len(hands)
			for _, d := range details {
				switch d.ErrorType {
				case report.TypeDuplicateHand:
					summary.Duplicates++
				default:
					summary.Invalid++
					summary.Failures = append(summary.Failures, report.FailureLine{
						HandID:  d.HandID,
						Type:    d.ErrorType,
						Reasons: d.ValidationErrors,
					})
				}
			}
			if err != nil {
				failType := report.TypeHandParsing
				if errors.Is(err, platform.ErrUnsupportedPlatform) {
					failType = report.TypeUnsupportedPlatform
				}
				summary.Failures = append(summary.Failures, report.FailureLine{
					Type:    failType,
					Reasons: []string{err.Error()},
				})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Println(summary.Render())

	stats := svc.ParsingStatistics()
	if stats.ErrorsTotal > 0 {
		fmt.Println(report.RenderErrorSummary(stats.ErrorSummary))
	}
	return nil
}
