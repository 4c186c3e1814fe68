package chartview

import (
	"fmt"
	"io"
	"os"
	"time"
)

// debugOutput is where debug traces go. Tests swap it for a buffer.
var debugOutput io.Writer = os.Stderr

// debugf prints one "[chartview]" trace line.
func debugf(format string, args ...any) {
	_, _ = fmt.Fprintf(debugOutput, "[chartview] "+format+"\n", args...)
}

// debugStats holds per-update timing and counters.
// Only populated when the chart's Config.Debug is true.
type debugStats struct {
	updateTime    time.Duration
	pointerEvents int
	ticks         int
	highlights    int
}

// debugLog prints the stats of one Update call.
func (c *Chart) debugLog(stats debugStats) {
	if !c.cfg.Debug {
		return
	}
	debugf("update: %v | pointer events: %d | ticks: %d | hit tests: %d",
		stats.updateTime, stats.pointerEvents, stats.ticks, stats.highlights)
	debugf("scale: %.3f x %.3f | trans: %.1f, %.1f | state: %s",
		c.vp.ScaleX(), c.vp.ScaleY(), c.vp.TransX(), c.vp.TransY(), c.gesture.State())
}

// debugCheckLayout warns when an operation needs a laid-out chart.
func (c *Chart) debugCheckLayout(op string) bool {
	if c.vp.HasChartDimens() {
		return true
	}
	if c.cfg.Debug {
		debugf("warning: %s before the chart has a size", op)
	}
	return false
}

// debugCheckData warns when an operation needs chart data.
func (c *Chart) debugCheckData(op string) bool {
	if c.data.EntryCount() > 0 {
		return true
	}
	if c.cfg.Debug {
		debugf("warning: %s without data", op)
	}
	return false
}
