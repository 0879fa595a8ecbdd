package scheduling

import (
	"reflect"
	"testing"
)

func clocks(ms []Minute) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.String())
	}
	return out
}

func TestGenerateSlotsFullDay(t *testing.T) {
	slots := GenerateSlots(SlotRequest{
		Window:   iv(t, "10:00", "19:00"),
		Duration: 60,
		Step:     30,
	})

	if len(slots) != 17 {
		t.Fatalf("expected 17 slots, got %d: %v", len(slots), clocks(slots))
	}
	if slots[0].String() != "10:00" || slots[len(slots)-1].String() != "18:00" {
		t.Fatalf("unexpected bounds %s..%s", slots[0], slots[len(slots)-1])
	}
}

func TestGenerateSlotsSkipsBooked(t *testing.T) {
	slots := GenerateSlots(SlotRequest{
		Window:   iv(t, "10:00", "19:00"),
		Duration: 60,
		Step:     30,
		Booked:   []Interval{iv(t, "13:00", "14:00")},
	})

	got := map[string]bool{}
	for _, s := range clocks(slots) {
		got[s] = true
	}
	for _, excluded := range []string{"12:30", "13:00", "13:30"} {
		if got[excluded] {
			t.Fatalf("%s overlaps the 13:00-14:00 booking", excluded)
		}
	}
	for _, kept := range []string{"12:00", "14:00", "18:00"} {
		if !got[kept] {
			t.Fatalf("%s should remain available", kept)
		}
	}
}

func TestGenerateSlotsNeverOverrunsWindow(t *testing.T) {
	w := iv(t, "10:00", "11:40")
	for _, duration := range []int{15, 25, 45, 60, 100} {
		for _, step := range []int{5, 15, 30} {
			for _, s := range GenerateSlots(SlotRequest{Window: w, Duration: duration, Step: step}) {
				if s+Minute(duration) > w.End {
					t.Fatalf("start %s with %d min overruns %s", s, duration, w.End)
				}
			}
		}
	}
}

func TestGenerateSlotsServiceLongerThanWindow(t *testing.T) {
	if slots := GenerateSlots(SlotRequest{Window: iv(t, "10:00", "10:30"), Duration: 45, Step: 15}); len(slots) != 0 {
		t.Fatalf("expected no slots, got %v", clocks(slots))
	}
}

func TestGenerateSlotsNotBefore(t *testing.T) {
	notBefore := mustClock(t, "11:10")
	slots := GenerateSlots(SlotRequest{
		Window:    iv(t, "10:00", "13:00"),
		Duration:  60,
		Step:      30,
		NotBefore: &notBefore,
	})

	want := []string{"11:30", "12:00"}
	if !reflect.DeepEqual(clocks(slots), want) {
		t.Fatalf("expected %v, got %v", want, clocks(slots))
	}
}

func TestGenerateSlotsInvalidInput(t *testing.T) {
	w := iv(t, "10:00", "19:00")
	if GenerateSlots(SlotRequest{Window: w, Duration: 0, Step: 30}) != nil {
		t.Fatal("zero duration yields nothing")
	}
	if GenerateSlots(SlotRequest{Window: w, Duration: 30, Step: 0}) != nil {
		t.Fatal("zero step yields nothing")
	}
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	req := SlotRequest{
		Window:   iv(t, "09:00", "17:00"),
		Duration: 45,
		Step:     15,
		Booked:   []Interval{iv(t, "11:00", "11:45"), iv(t, "15:00", "16:00")},
	}
	if !reflect.DeepEqual(GenerateSlots(req), GenerateSlots(req)) {
		t.Fatal("identical input must give identical output")
	}
}
