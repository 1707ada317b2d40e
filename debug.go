package henhouse

import (
	"fmt"
	"log/slog"
	"time"
)

// logger is the package-wide structured logger. Replace it with SetLogger.
var logger = slog.Default().With("lib", "henhouse")

// SetLogger replaces the logger used by the engine. A nil l restores the
// default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default().With("lib", "henhouse")
	}
	logger = l
}

// debugStats holds per-tick timing and population metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	tickTime  time.Duration
	sweepTime time.Duration
	ticks     int
	entities  int
	swept     int
}

// debugLog writes tick stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	logger.Debug("frame",
		"ticks", stats.ticks,
		"tick", stats.tickTime,
		"sweep", stats.sweepTime,
		"total", stats.tickTime+stats.sweepTime,
		"entities", stats.entities,
		"swept", stats.swept,
	)
}

// debugCheckDisposed panics with a descriptive message when a disposed entity
// is used in a tree operation.
func debugCheckDisposed(e *Entity, op string) {
	if e.disposed {
		panic(fmt.Sprintf("henhouse debug: %s on disposed entity %q (ID was %d)", op, e.Name, e.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(e *Entity) {
	depth := 0
	for p := e; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logger.Warn("tree depth exceeds threshold",
			"depth", depth, "threshold", debugMaxTreeDepth, "entity", e.Name)
	}
}

// debugCheckChildCount warns if an entity has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(e *Entity) {
	if len(e.children) > debugMaxChildCount {
		logger.Warn("child count exceeds threshold",
			"entity", e.Name, "children", len(e.children), "threshold", debugMaxChildCount)
	}
}
