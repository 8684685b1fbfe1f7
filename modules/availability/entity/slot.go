package entity

import "time"

// TimeWindow is a half-open interval [Start, End). Touching endpoints do
// not overlap.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IsZero reports whether the window is empty or inverted.
func (w TimeWindow) IsZero() bool {
	return !w.End.After(w.Start)
}

// Duration returns the window length.
func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Pad extends the window by before/after. Negative paddings shrink it;
// callers validate buffers at the boundary.
func (w TimeWindow) Pad(before, after time.Duration) TimeWindow {
	return TimeWindow{
		Start: w.Start.Add(-before),
		End:   w.End.Add(after),
	}
}

// ComputedSlot is the engine's output: one bookable unit with availability
// and remaining-seat metadata. It is derived fresh on every query and is
// never persisted.
type ComputedSlot struct {
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	Available      bool      `json:"available"`
	RemainingSeats int       `json:"remaining_seats"`
}

// Window returns the slot's raw interval.
func (s ComputedSlot) Window() TimeWindow {
	return TimeWindow{Start: s.Start, End: s.End}
}
