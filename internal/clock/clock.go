package clock

import "time"

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc, truncated to millisecond precision
// so that timestamps survive a JSON round trip through the entry store.
func Now() time.Time { return NowFunc().UTC().Truncate(time.Millisecond) }
