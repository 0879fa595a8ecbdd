package scheduling

// SlotRequest describes one slot generation run.
type SlotRequest struct {
	Window   Interval
	Duration int // minutes
	Step     int // minutes between candidate starts

	Booked []Interval

	// NotBefore, when set, drops every start earlier than it. Callers set
	// it to now+lead time when the date is today.
	NotBefore *Minute
}

// GenerateSlots walks the window in Step increments and returns, ascending
// and without duplicates, every start whose [t, t+Duration) fits the window
// and does not overlap a booked interval.
func GenerateSlots(req SlotRequest) []Minute {
	if req.Duration <= 0 || req.Step <= 0 {
		return nil
	}

	lastValidStart := req.Window.End - Minute(req.Duration)
	if lastValidStart < req.Window.Start {
		return nil
	}

	var out []Minute
	for t := req.Window.Start; t <= lastValidStart; t += Minute(req.Step) {
		if req.NotBefore != nil && t < *req.NotBefore {
			continue
		}
		if OverlapsAny(Interval{Start: t, End: t + Minute(req.Duration)}, req.Booked) {
			continue
		}
		out = append(out, t)
	}
	return out
}
