// FILE: arsenic/src/cmd/arsenic-collector/status.go
package main

import (
	"context"
	"time"

	"arsenic/src/internal/collector"
)

// statusReporter periodically logs collector statistics
func statusReporter(ctx context.Context, c *collector.Collector, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						logger.Error("msg", "Panic in status reporter",
							"component", "status_reporter",
							"panic", r)
					}
				}()

				stats := c.GetStats()
				fields := []any{
					"msg", "Collector status",
					"component", "status_reporter",
				}
				for _, key := range []string{"active_connections", "total_connections", "total_lines", "dropped_lines", "invalid_lines", "last_line_time"} {
					if v, ok := stats[key]; ok {
						fields = append(fields, key, v)
					}
				}
				logger.Info(fields...)
			}()
		}
	}
}
