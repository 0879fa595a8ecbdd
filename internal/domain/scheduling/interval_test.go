package scheduling

import "testing"

func mustClock(t *testing.T, s string) Minute {
	t.Helper()
	m, err := ParseClock(s)
	if err != nil {
		t.Fatalf("ParseClock(%q): %v", s, err)
	}
	return m
}

func iv(t *testing.T, start, end string) Interval {
	t.Helper()
	return Interval{Start: mustClock(t, start), End: mustClock(t, end)}
}

func TestOverlapsBoundary(t *testing.T) {
	a := iv(t, "10:00", "10:30")
	b := iv(t, "10:30", "11:00")
	if Overlaps(a, b) || Overlaps(b, a) {
		t.Fatal("adjacent intervals must not conflict")
	}

	a = iv(t, "10:00", "10:31")
	if !Overlaps(a, b) || !Overlaps(b, a) {
		t.Fatal("one shared minute must conflict in both directions")
	}
}

func TestOverlapsContainment(t *testing.T) {
	outer := iv(t, "09:00", "12:00")
	inner := iv(t, "10:00", "10:15")
	if !Overlaps(outer, inner) || !Overlaps(inner, outer) {
		t.Fatal("nested intervals overlap")
	}
}

func TestIntersect(t *testing.T) {
	got, ok := iv(t, "08:00", "20:00").Intersect(iv(t, "10:00", "19:00"))
	if !ok || got != iv(t, "10:00", "19:00") {
		t.Fatalf("unexpected intersection %v %v", got, ok)
	}

	if _, ok := iv(t, "08:00", "10:00").Intersect(iv(t, "10:00", "19:00")); ok {
		t.Fatal("touching intervals have an empty intersection")
	}
}

func TestParseClock(t *testing.T) {
	if m := mustClock(t, "24:00"); m != MinutesPerDay {
		t.Fatalf("expected end of day, got %d", m)
	}
	if m := mustClock(t, "09:05"); m.String() != "09:05" {
		t.Fatalf("round trip failed: %s", m)
	}
	for _, bad := range []string{"", "9", "25:00", "10:60", "ab:cd"} {
		if _, err := ParseClock(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
