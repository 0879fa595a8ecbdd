package scheduling

import "testing"

func TestResolveStaffWindowOverridePrecedence(t *testing.T) {
	business := iv(t, "08:00", "20:00")
	override := &Shift{StartTime: "12:00", EndTime: "16:00", Active: true}
	pattern := &Shift{StartTime: "09:00", EndTime: "18:00", Active: true}

	sw, ok := ResolveStaffWindow(override, pattern, business, true)
	if !ok {
		t.Fatal("expected a window")
	}
	if sw.Source != SourceOverride || sw.Window != iv(t, "12:00", "16:00") {
		t.Fatalf("override must be used verbatim, got %v from %s", sw.Window, sw.Source)
	}
}

func TestResolveStaffWindowFallsBackToPattern(t *testing.T) {
	business := iv(t, "08:00", "20:00")
	pattern := &Shift{StartTime: "09:00", EndTime: "18:00", Active: true}

	sw, ok := ResolveStaffWindow(nil, pattern, business, true)
	if !ok || sw.Source != SourcePattern || sw.Window != iv(t, "09:00", "18:00") {
		t.Fatalf("expected pattern window, got %v %s %v", sw.Window, sw.Source, ok)
	}

	inactive := &Shift{StartTime: "12:00", EndTime: "13:00", Active: false}
	sw, ok = ResolveStaffWindow(inactive, pattern, business, true)
	if !ok || sw.Source != SourcePattern {
		t.Fatalf("inactive override must be ignored, got %s", sw.Source)
	}
}

func TestResolveStaffWindowNoShift(t *testing.T) {
	business := iv(t, "08:00", "20:00")
	if _, ok := ResolveStaffWindow(nil, nil, business, true); ok {
		t.Fatal("no records means no shift")
	}
	if _, ok := ResolveStaffWindow(nil, &Shift{StartTime: "09:00", EndTime: "18:00"}, business, true); ok {
		t.Fatal("inactive pattern means no shift")
	}
}

func TestResolveStaffWindowClipsToBusinessHours(t *testing.T) {
	business := iv(t, "10:00", "19:00")
	pattern := &Shift{StartTime: "08:00", EndTime: "21:00", Active: true}

	sw, ok := ResolveStaffWindow(nil, pattern, business, true)
	if !ok || sw.Window != business {
		t.Fatalf("expected clip to business hours, got %v", sw.Window)
	}

	early := &Shift{StartTime: "06:00", EndTime: "10:00", Active: true}
	if _, ok := ResolveStaffWindow(early, pattern, business, true); ok {
		t.Fatal("shift ending at opening time leaves nothing")
	}

	if _, ok := ResolveStaffWindow(nil, pattern, business, false); ok {
		t.Fatal("closed business means no shift")
	}
}
