package metadata

import (
	"sort"
	"strconv"
	"strings"
)

// Magnitude extracts the numeric value of a label by dropping every non-digit
// character: "1080p" -> 1080, "128kbps" -> 128. Labels without digits are 0.
func Magnitude(label string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, label)

	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// SortByMagnitude sorts labels ascending by Magnitude. Equal magnitudes keep
// their original order.
func SortByMagnitude(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool {
		return Magnitude(labels[i]) < Magnitude(labels[j])
	})
}
