package main

import (
	"fmt"
)

// StatsCmd prints parser registry and session statistics
type StatsCmd struct{}

func (c *StatsCmd) Run(appCtx *Context) error {
	stats := appCtx.Service.ParsingStatistics()

	fmt.Printf("parsers registered: %d\n", stats.ParsersRegistered)
	fmt.Println("supported platforms:")
	for _, p := range stats.SupportedPlatforms {
		fmt.Printf("  %s\n", p)
	}
	fmt.Printf("duplicate checks: %d (unique %d, duplicates %d)\n",
		stats.Duplicates.Checked, stats.Duplicates.UniqueHands, stats.Duplicates.Duplicates)
	return nil
}
