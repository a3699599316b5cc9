package format

import (
	"fmt"
	"time"
)

var multipliers = []string{"", "Ki", "Mi", "Gi", "Ti"}

func formatDuration(duration time.Duration) string {
	if ns := duration.Nanoseconds(); ns < 1000 {
		return fmt.Sprintf("%dns", ns)
	} else if us := float64(duration) / float64(time.Microsecond); us < 1000 {
		return fmt.Sprintf("%.3gµs", us)
	} else if ms := float64(duration) / float64(time.Millisecond); ms < 1000 {
		return fmt.Sprintf("%.3gms", ms)
	} else if s := float64(duration) / float64(time.Second); s < 60 {
		return fmt.Sprintf("%.3gs", s)
	}
	return (duration - duration%time.Second).String()
}

// Use the largest multiplier which leaves at least 1 whole unit, switching up
// only once the value exceeds 100 units or divides exactly.
func formatBytes(bytes uint64) string {
	shift := uint(0)
	index := 0
	for index+1 < len(multipliers) {
		next := shift + 10
		if bytes>>next > 100 || (bytes>>next >= 1 && bytes&(1<<next-1) == 0) {
			shift = next
			index++
			continue
		}
		break
	}
	return fmt.Sprintf("%d %sB", bytes>>shift, multipliers[index])
}
