package weather

import (
	"math"
	"slices"
	"strings"
)

// matchHumidity picks the hourly humidity value that lines up with observedAt.
// An exact timestamp wins; otherwise the first entry sharing the hour prefix
// (everything before the first ':') is used. Returns nil when nothing matches
// or the matched slot holds no value.
func matchHumidity(observedAt string, times []string, values []*float64) *int {
	idx := slices.Index(times, observedAt)
	if idx == -1 {
		hour, _, _ := strings.Cut(observedAt, ":")
		idx = slices.IndexFunc(times, func(t string) bool {
			return strings.HasPrefix(t, hour)
		})
	}
	if idx == -1 || idx >= len(values) || values[idx] == nil {
		return nil
	}

	h := int(math.Round(*values[idx]))
	return &h
}
