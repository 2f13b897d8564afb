package utils

import "time"

// IsStale reports whether an export taken at epochTime is old enough to
// refresh. Zero means never exported.
func IsStale(epochTime int64, maxAge time.Duration) bool {
	if epochTime == 0 {
		return true
	}

	return time.Since(time.Unix(epochTime, 0)) > maxAge
}
