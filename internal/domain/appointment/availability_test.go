package appointment

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

func day(h, m int) time.Time {
	return time.Date(2024, 12, 2, h, m, 0, 0, time.UTC)
}

func TestResolveWindowUsesShopHours(t *testing.T) {
	shop := &models.Barbershop{OpenTime: "09:00", CloseTime: "12:00"}

	w := ResolveWindow(shop, nil, day(0, 0))
	if w.Closed {
		t.Fatal("expected open window")
	}
	if !w.Start.Equal(day(9, 0)) || !w.End.Equal(day(12, 0)) {
		t.Fatalf("unexpected window %s - %s", w.Start, w.End)
	}
	if w.HasLunch {
		t.Fatal("shop hours carry no lunch break")
	}
}

func TestResolveWindowDefaults(t *testing.T) {
	w := ResolveWindow(&models.Barbershop{}, nil, day(0, 0))
	if !w.Start.Equal(day(8, 0)) || !w.End.Equal(day(18, 0)) {
		t.Fatalf("expected 08:00-18:00, got %s - %s", w.Start, w.End)
	}
}

func TestResolveWindowEmployeeHours(t *testing.T) {
	wh := &models.WorkingHours{
		Active:     true,
		StartTime:  "10:00",
		EndTime:    "16:00",
		LunchStart: "12:00",
		LunchEnd:   "13:00",
	}
	w := ResolveWindow(&models.Barbershop{}, wh, day(0, 0))
	if !w.HasLunch || !w.LunchStart.Equal(day(12, 0)) {
		t.Fatalf("expected lunch at 12:00, got %+v", w)
	}

	if w.Contains(day(11, 30), day(12, 15)) {
		t.Fatal("slot crossing lunch must not fit")
	}
	if !w.Contains(day(13, 0), day(13, 45)) {
		t.Fatal("slot right after lunch should fit")
	}
	if w.Contains(day(15, 30), day(16, 15)) {
		t.Fatal("slot past closing must not fit")
	}
}

func TestResolveWindowInactiveDay(t *testing.T) {
	wh := &models.WorkingHours{Active: false, StartTime: "08:00", EndTime: "18:00"}
	if w := ResolveWindow(&models.Barbershop{}, wh, day(0, 0)); !w.Closed {
		t.Fatal("inactive weekday should be closed")
	}
}

func TestAvailableSlots(t *testing.T) {
	w := Window{Start: day(9, 0), End: day(11, 0)}
	busy := []Interval{{Start: day(9, 30), End: day(10, 15)}}

	slots := AvailableSlots(w, 30*time.Minute, SlotStep, busy, day(0, 0))

	want := []string{"09:00", "10:30"}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %+v", len(want), slots)
	}
	for i, s := range slots {
		if s.Start != want[i] {
			t.Fatalf("slot %d: expected %s, got %s", i, want[i], s.Start)
		}
	}
	if slots[1].End != "11:00" {
		t.Fatalf("expected last slot to end at 11:00, got %s", slots[1].End)
	}
}

func TestAvailableSlotsSkipsBeforeEarliest(t *testing.T) {
	w := Window{Start: day(9, 0), End: day(11, 0)}

	slots := AvailableSlots(w, 45*time.Minute, SlotStep, nil, day(9, 45))
	// 09:00 e 09:30 ficam antes do limite; 10:30 não cabe (terminaria 11:15).
	if len(slots) != 1 || slots[0].Start != "10:00" {
		t.Fatalf("expected only 10:00, got %+v", slots)
	}
}

func TestAvailableSlotsLunch(t *testing.T) {
	w := Window{
		Start: day(11, 0), End: day(14, 0),
		LunchStart: day(12, 0), LunchEnd: day(13, 0), HasLunch: true,
	}
	slots := AvailableSlots(w, time.Hour, SlotStep, nil, day(0, 0))

	for _, s := range slots {
		if s.Start == "11:30" || s.Start == "12:00" || s.Start == "12:30" {
			t.Fatalf("slot %s overlaps lunch", s.Start)
		}
	}
	if len(slots) != 2 {
		t.Fatalf("expected 11:00 and 13:00, got %+v", slots)
	}
}

func TestAvailableSlotsClosed(t *testing.T) {
	slots := AvailableSlots(Window{Closed: true}, time.Hour, SlotStep, nil, day(0, 0))
	if slots == nil || len(slots) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", slots)
	}
}
