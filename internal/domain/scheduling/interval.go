package scheduling

// Interval is a half-open time-of-day range [Start, End).
type Interval struct {
	Start Minute
	End   Minute
}

func (iv Interval) Empty() bool {
	return iv.End <= iv.Start
}

func (iv Interval) Minutes() int {
	return int(iv.End - iv.Start)
}

// Contains reports whether other lies entirely inside iv.
func (iv Interval) Contains(other Interval) bool {
	return other.Start >= iv.Start && other.End <= iv.End
}

// Intersect returns the overlap of iv and other; ok is false when it is empty.
func (iv Interval) Intersect(other Interval) (Interval, bool) {
	out := Interval{Start: max(iv.Start, other.Start), End: min(iv.End, other.End)}
	if out.Empty() {
		return Interval{}, false
	}
	return out, true
}

func (iv Interval) String() string {
	return iv.Start.String() + "-" + iv.End.String()
}

// Overlaps is the single overlap test used by slot generation, conflict
// checking and the in-memory commit guard. Adjacent intervals do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && a.End > b.Start
}

// OverlapsAny reports whether candidate overlaps any of existing.
func OverlapsAny(candidate Interval, existing []Interval) bool {
	for _, iv := range existing {
		if Overlaps(candidate, iv) {
			return true
		}
	}
	return false
}
