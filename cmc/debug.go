package cmc

// DebugEvent is published to a Driver's optional debug callback once per
// sweep. The core package never imports a logging library itself;
// callers (e.g. a CLI) are free to bridge this into structured logging.
type DebugEvent struct {
	Sweep         int
	Stats         Stats
	Magnetization [3]float64
}

// DebugFunc is the optional per-sweep debug callback.
type DebugFunc func(DebugEvent)
