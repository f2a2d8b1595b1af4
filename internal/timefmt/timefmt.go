package timefmt

import (
	"fmt"
	"strconv"
	"time"
)

// Stamp renders t as the decimal microsecond timestamp used in capture
// file names. Monotonic within a run and collision-free across scripts
// executed more than a microsecond apart.
func Stamp(t time.Time) string {
	return strconv.FormatInt(t.UnixMicro(), 10)
}

// Elapsed renders a wall-clock duration the way the summary banner wants
// it: seconds with two decimals.
func Elapsed(d time.Duration) string {
	return fmt.Sprintf("%.2f s", d.Seconds())
}
