package handlers

import (
	"reflect"
	"testing"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

func TestParseServiceIDs(t *testing.T) {
	cases := []struct {
		raw  string
		want []uint
		ok   bool
	}{
		{"", nil, true},
		{"3", []uint{3}, true},
		{"1, 2,3", []uint{1, 2, 3}, true},
		{"2,2", []uint{2, 2}, true},
		{"1,,2", nil, false},
		{"0", nil, false},
		{"a", nil, false},
	}

	for _, tc := range cases {
		got, err := parseServiceIDs(tc.raw)
		if tc.ok != (err == nil) {
			t.Fatalf("%q: unexpected error state %v", tc.raw, err)
		}
		if !tc.ok {
			if !httperr.IsBusiness(err, "invalid_service_id") {
				t.Fatalf("%q: expected invalid_service_id, got %v", tc.raw, err)
			}
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%q: expected %v, got %v", tc.raw, tc.want, got)
		}
	}
}

func TestParseStaffQuery(t *testing.T) {
	for _, raw := range []string{"", "any", "ANY"} {
		id, err := parseStaffQuery(raw)
		if err != nil || id != domain.AnyStaff {
			t.Fatalf("%q should mean any staff, got %d (%v)", raw, id, err)
		}
	}

	if id, err := parseStaffQuery("12"); err != nil || id != 12 {
		t.Fatalf("expected 12, got %d (%v)", id, err)
	}

	for _, raw := range []string{"0", "-1", "ana"} {
		if _, err := parseStaffQuery(raw); !httperr.IsKind(err, httperr.KindValidation) {
			t.Fatalf("%q: expected a validation error, got %v", raw, err)
		}
	}
}

func TestValidRange(t *testing.T) {
	if !validRange("09:00", "18:00") {
		t.Fatal("09:00-18:00 is valid")
	}
	for _, r := range [][2]string{{"18:00", "09:00"}, {"10:00", "10:00"}, {"", "10:00"}, {"9am", "5pm"}} {
		if validRange(r[0], r[1]) {
			t.Fatalf("%v should be rejected", r)
		}
	}
}
