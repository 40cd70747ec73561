package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/wellkeep/internal/metrics"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show server runtime statistics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	stats, err := api.Stats(ctx)
	if err != nil {
		return fmt.Errorf("fetch stats: %w", err)
	}

	uptime := time.Duration(stats.UptimeSeconds * float64(time.Second)).Round(time.Second)
	fmt.Println(headingStyle.Render("Server stats"))
	fmt.Printf("Uptime: %s\n\n", uptime)

	printOp := func(name string, op *metrics.OperationSnapshot) {
		if op == nil {
			return
		}
		fmt.Printf("%-14s count=%-6d avg=%.1fms min=%dms max=%dms\n",
			name, op.Count, op.AvgTimeMs, op.MinTimeMs, op.MaxTimeMs)
	}

	printOp("http", stats.HTTPRequest)
	printOp("kv get", stats.KVGet)
	printOp("kv set", stats.KVSet)
	printOp("kv delete", stats.KVDelete)
	printOp("kv scan", stats.KVScan)
	printOp("blob upload", stats.BlobUpload)
	printOp("blob sign", stats.BlobSign)
	printOp("blob remove", stats.BlobRemove)
	return nil
}
