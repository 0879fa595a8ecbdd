package scheduling

// Shift is a raw working window as stored, either a date override or a
// weekly pattern.
type Shift struct {
	StartTime string
	EndTime   string
	Active    bool
}

// ShiftSource tells which record produced a staff window.
type ShiftSource string

const (
	SourceNone     ShiftSource = "none"
	SourceOverride ShiftSource = "override"
	SourcePattern  ShiftSource = "pattern"
)

// StaffWindow is a resolved, business-hours-clipped working window.
type StaffWindow struct {
	Window Interval
	Source ShiftSource
}

// ResolveStaffWindow applies the precedence rule: an active override wins,
// else an active pattern, else no shift. The chosen shift is clipped to the
// business window; a closed business or an empty intersection yields ok=false.
func ResolveStaffWindow(override, pattern *Shift, business Interval, open bool) (StaffWindow, bool) {
	if !open {
		return StaffWindow{Source: SourceNone}, false
	}

	var (
		chosen *Shift
		source = SourceNone
	)
	switch {
	case override != nil && override.Active:
		chosen, source = override, SourceOverride
	case pattern != nil && pattern.Active:
		chosen, source = pattern, SourcePattern
	default:
		return StaffWindow{Source: SourceNone}, false
	}

	start, err := ParseClock(chosen.StartTime)
	if err != nil {
		return StaffWindow{Source: source}, false
	}
	end, err := ParseClock(chosen.EndTime)
	if err != nil {
		return StaffWindow{Source: source}, false
	}

	clipped, ok := Interval{Start: start, End: end}.Intersect(business)
	if !ok {
		return StaffWindow{Source: source}, false
	}
	return StaffWindow{Window: clipped, Source: source}, true
}
