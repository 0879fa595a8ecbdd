package scheduling

// BusinessDay is the salon's configured opening for one weekday.
type BusinessDay struct {
	OpenTime  string
	CloseTime string
	IsClosed  bool
}

// ResolveBusinessWindow returns the open window for a day, or ok=false when
// the salon is closed. A missing row (nil) means closed. Unparseable or
// inverted hours are treated as closed as well: there is no defaulting here.
func ResolveBusinessWindow(day *BusinessDay) (Interval, bool) {
	if day == nil || day.IsClosed {
		return Interval{}, false
	}

	open, err := ParseClock(day.OpenTime)
	if err != nil {
		return Interval{}, false
	}
	closeAt, err := ParseClock(day.CloseTime)
	if err != nil {
		return Interval{}, false
	}

	w := Interval{Start: open, End: closeAt}
	if w.Empty() {
		return Interval{}, false
	}
	return w, true
}
