package appointment

import (
	"sort"

	"github.com/shopspring/decimal"
)

// AnyStaff asks availability for every qualified staff member.
const AnyStaff uint = 0

type AvailabilityInput struct {
	SalonID    uint
	Date       string // YYYY-MM-DD
	ServiceIDs []uint
	StaffID    uint // AnyStaff for "no preference"
}

// TimeSlot is an ephemeral candidate slot. StaffID is always concrete, even
// when availability was asked for any staff member.
type TimeSlot struct {
	Start   string `json:"start_time"`
	End     string `json:"end_time"`
	StaffID uint   `json:"staff_id"`
}

type AvailabilityResult struct {
	Date            string          `json:"date"`
	DurationMinutes int             `json:"duration_minutes"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Slots           []TimeSlot      `json:"slots"`
}

// ByStaff groups slots per staff member, keeping start order.
func (r AvailabilityResult) ByStaff() map[uint][]TimeSlot {
	out := make(map[uint][]TimeSlot)
	for _, s := range r.Slots {
		out[s.StaffID] = append(out[s.StaffID], s)
	}
	return out
}

// SortSlots orders slots by start, then staff ID.
func SortSlots(slots []TimeSlot) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Start != slots[j].Start {
			return slots[i].Start < slots[j].Start
		}
		return slots[i].StaffID < slots[j].StaffID
	})
}
