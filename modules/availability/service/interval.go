package service

import (
	"sort"

	"go-booking-api/modules/availability/entity"
)

// Interval primitives over half-open [start, end) windows. All functions
// here are pure and total; malformed windows (end <= start) are the
// caller's responsibility and simply behave as empty.

// Overlaps reports whether a and b share any instant. Touching endpoints
// do not overlap.
func Overlaps(a, b entity.TimeWindow) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Intersect returns the common part of a and b, or a zero window when they
// do not overlap.
func Intersect(a, b entity.TimeWindow) entity.TimeWindow {
	start := a.Start
	if b.Start.After(start) {
		start = b.Start
	}
	end := a.End
	if b.End.Before(end) {
		end = b.End
	}
	if !end.After(start) {
		return entity.TimeWindow{}
	}
	return entity.TimeWindow{Start: start, End: end}
}

// Subtract removes cut from window and returns the at most two remaining
// pieces. A fully-contained cut splits the window; a cut covering the whole
// window empties it.
func Subtract(window, cut entity.TimeWindow) []entity.TimeWindow {
	if !Overlaps(window, cut) {
		return []entity.TimeWindow{window}
	}

	var out []entity.TimeWindow
	if cut.Start.After(window.Start) {
		out = append(out, entity.TimeWindow{Start: window.Start, End: cut.Start})
	}
	if cut.End.Before(window.End) {
		out = append(out, entity.TimeWindow{Start: cut.End, End: window.End})
	}
	return out
}

// MergeWindows sorts windows by start and coalesces overlapping or adjacent
// ones, dropping empties. The result is a minimal set of disjoint windows.
func MergeWindows(windows []entity.TimeWindow) []entity.TimeWindow {
	clean := make([]entity.TimeWindow, 0, len(windows))
	for _, w := range windows {
		if !w.IsZero() {
			clean = append(clean, w)
		}
	}
	if len(clean) == 0 {
		return nil
	}

	sort.Slice(clean, func(i, j int) bool {
		return clean[i].Start.Before(clean[j].Start)
	})

	merged := []entity.TimeWindow{clean[0]}
	for _, current := range clean[1:] {
		last := &merged[len(merged)-1]
		if !current.Start.After(last.End) {
			if current.End.After(last.End) {
				last.End = current.End
			}
		} else {
			merged = append(merged, current)
		}
	}

	return merged
}
