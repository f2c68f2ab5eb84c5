package report

import (
	"fmt"
	"math"
	"time"
)

var sizeUnits = [...]string{"bytes", "KB", "MB", "GB", "TB"}

// FormatSize renders n with a 1024-based unit. Values below 1 KB are
// printed as "<n> bytes"; larger values are scaled up to TB at most,
// printed without decimals when whole and with two otherwise, and
// followed by the exact byte count.
//
//	FormatSize(1536) == "1.50 KB (1536 bytes)"
func FormatSize(n uint64) string {
	size := float64(n)
	unit := 0

	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}

	if unit == 0 {
		return fmt.Sprintf("%d %s", n, sizeUnits[0])
	}

	var scaled string

	if size == math.Trunc(size) {
		scaled = fmt.Sprintf("%.0f %s", size, sizeUnits[unit])
	} else {
		scaled = fmt.Sprintf("%.2f %s", size, sizeUnits[unit])
	}

	return fmt.Sprintf("%s (%d bytes)", scaled, n)
}

// FormatElapsed renders d with two decimals in the largest unit
// among s, ms, µs and ns that keeps the value at or above one.
func FormatElapsed(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	case d >= time.Microsecond:
		return fmt.Sprintf("%.2fµs", float64(d)/float64(time.Microsecond))
	default:
		return fmt.Sprintf("%.2fns", float64(d))
	}
}
