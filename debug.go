package lumen

import (
	"time"

	"github.com/sirupsen/logrus"
)

// frameStats holds per-frame timing and draw-call metrics.
type frameStats struct {
	start     time.Time
	drawTime  time.Duration
	drawCalls int
	vertices  int
	indices   int
}

// debugLogInterval is how many frames pass between debug stat lines.
const debugLogInterval = 60

// debugLogger aggregates frame statistics and logs them at debug level.
type debugLogger struct {
	log    logrus.FieldLogger
	frames int
	total  time.Duration
	calls  int
	verts  int
}

func newDebugLogger(log logrus.FieldLogger) *debugLogger {
	return &debugLogger{log: log}
}

// record adds one frame and logs averages every debugLogInterval frames.
func (d *debugLogger) record(s frameStats) {
	d.frames++
	d.total += s.drawTime
	d.calls += s.drawCalls
	d.verts += s.vertices
	if d.frames < debugLogInterval {
		return
	}
	n := d.frames
	d.log.WithFields(logrus.Fields{
		"frames":     n,
		"avg_draw":   d.total / time.Duration(n),
		"draw_calls": d.calls / n,
		"vertices":   d.verts / n,
	}).Debug("frame stats")
	*d = debugLogger{log: d.log}
}
