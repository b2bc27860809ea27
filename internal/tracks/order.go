// package tracks derives a deterministic copy order for audio files.
//
// Player firmware tends to play files in the order they were written to the
// device, so the ordering here decides actual playback order. Filenames are
// keyed by an extracted track number when one can be found, falling back to
// the filename itself.
package tracks

import (
	"regexp"
	"sort"
	"strconv"
)

var (
	// Matches "track_3_of_12" style names, capturing the track index.
	trackOfPattern = regexp.MustCompile(`(?i)track[_\-. ](\d+)[_\-. ]of[_\-. ]`)
	// Matches the first numeral bounded by delimiters or string edges.
	numeralPattern = regexp.MustCompile(`(?:^|[_\-. ])(\d+)(?:[_\-. ]|$)`)
)

// SortKey orders one filename within a copy task.
//
// Numeric keys compare numerically and sort ahead of textual keys; textual
// keys compare lexically among themselves. Equal keys preserve discovery
// order (the sort is stable).
type SortKey struct {
	numeric bool
	number  int
	text    string
}

// KeyFor extracts the sort key for a filename, testing the track pattern
// first, then any delimiter-bounded numeral, then falling back to the
// filename itself.
func KeyFor(name string) SortKey {
	if m := trackOfPattern.FindStringSubmatch(name); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return SortKey{numeric: true, number: n}
		}
	}
	if m := numeralPattern.FindStringSubmatch(name); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return SortKey{numeric: true, number: n}
		}
	}
	return SortKey{text: name}
}

// Less reports whether k sorts before other.
func (k SortKey) Less(other SortKey) bool {
	if k.numeric != other.numeric {
		return k.numeric
	}
	if k.numeric {
		return k.number < other.number
	}
	return k.text < other.text
}

// ComputeOrder returns the filenames sorted into copy order. The input slice
// is left untouched; ties keep their original position.
func ComputeOrder(names []string) []string {
	ordered := make([]string, len(names))
	copy(ordered, names)

	keys := make(map[string]SortKey, len(names))
	for _, name := range names {
		keys[name] = KeyFor(name)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return keys[ordered[i]].Less(keys[ordered[j]])
	})

	return ordered
}
