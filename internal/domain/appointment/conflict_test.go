package appointment

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

func TestIntervalOverlaps(t *testing.T) {
	base := Interval{Start: day(14, 0), End: day(14, 45)}

	cases := []struct {
		name string
		iv   Interval
		want bool
	}{
		{"inside", Interval{day(14, 15), day(14, 30)}, true},
		{"crossing start", Interval{day(13, 30), day(14, 15)}, true},
		{"crossing end", Interval{day(14, 30), day(15, 0)}, true},
		{"touching end", Interval{day(14, 45), day(15, 30)}, false},
		{"touching start", Interval{day(13, 0), day(14, 0)}, false},
		{"covering", Interval{day(13, 0), day(16, 0)}, true},
	}
	for _, tc := range cases {
		if got := base.Overlaps(tc.iv); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestIntervalOfUsesServiceDuration(t *testing.T) {
	ap := models.Appointment{
		StartTime: day(14, 0),
		EndTime:   day(14, 30),
		Service:   models.Service{ID: 1, DurationMin: 45},
	}
	iv, ok := IntervalOf(ap)
	if !ok {
		t.Fatal("expected interval")
	}
	if !iv.End.Equal(day(14, 45)) {
		t.Fatalf("expected end 14:45 from service duration, got %s", iv.End)
	}

	ap.Service = models.Service{}
	iv, _ = IntervalOf(ap)
	if !iv.End.Equal(day(14, 30)) {
		t.Fatalf("expected stored end 14:30, got %s", iv.End)
	}
}

func TestIntervalOfWithoutServiceNorEnd(t *testing.T) {
	ap := models.Appointment{StartTime: day(14, 0)}
	if _, ok := IntervalOf(ap); ok {
		t.Fatal("appointment without service or end must not occupy time")
	}

	ap.EndTime = day(14, 0)
	if _, ok := IntervalOf(ap); ok {
		t.Fatal("empty stored interval must not occupy time")
	}

	busy := BusyIntervals([]models.Appointment{
		{ID: 1, StartTime: day(9, 0), EndTime: day(9, 40), Status: string(StatusScheduled)},
		{ID: 2, StartTime: day(10, 0), Status: string(StatusScheduled)},
	}, 0)
	if len(busy) != 1 || !busy[0].End.Equal(day(9, 40)) {
		t.Fatalf("expected only the stored interval, got %v", busy)
	}
}

func TestBusyIntervalsSkipsCancelledAndSelf(t *testing.T) {
	svc := models.Service{ID: 1, DurationMin: 30}
	aps := []models.Appointment{
		{ID: 1, StartTime: day(9, 0), Status: string(StatusScheduled), Service: svc},
		{ID: 2, StartTime: day(10, 0), Status: string(StatusCancelled), Service: svc},
		{ID: 3, StartTime: day(11, 0), Status: string(StatusCompleted), Service: svc},
	}

	busy := BusyIntervals(aps, 1)
	if len(busy) != 1 {
		t.Fatalf("expected only the completed appointment, got %d", len(busy))
	}
	if !busy[0].Start.Equal(day(11, 0)) {
		t.Fatalf("unexpected interval %+v", busy[0])
	}
}

func TestCancelAndComplete(t *testing.T) {
	now := time.Date(2024, 12, 2, 10, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusScheduled)}
	if err := Complete(ap, now); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if ap.CompletedAt == nil || ap.Status != string(StatusCompleted) {
		t.Fatalf("unexpected appointment %+v", ap)
	}
	if err := Complete(ap, now); err == nil {
		t.Fatal("completing twice must fail")
	}
	if err := Cancel(ap, now); err == nil {
		t.Fatal("cancelling a completed appointment must fail")
	}

	ap = &models.Appointment{Status: string(StatusScheduled)}
	if err := Cancel(ap, now); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if ap.CancelledAt == nil {
		t.Fatal("expected cancelled_at")
	}
}

func TestCheckAdvance(t *testing.T) {
	now := day(10, 0)
	minAdvance := MinAdvance(&models.Barbershop{MinAdvanceMinutes: DefaultMinAdvanceMinutes})

	if minAdvance != 2*time.Hour {
		t.Fatalf("expected 2h, got %s", minAdvance)
	}
	if err := CheckAdvance(day(11, 59), now, minAdvance); err == nil {
		t.Fatal("expected too_soon")
	}
	if err := CheckAdvance(day(12, 0), now, minAdvance); err != nil {
		t.Fatalf("exactly two hours ahead should pass: %v", err)
	}
}

func TestMinAdvanceZeroDisablesRule(t *testing.T) {
	now := day(10, 0)

	if got := MinAdvance(&models.Barbershop{MinAdvanceMinutes: 0}); got != 0 {
		t.Fatalf("zero must disable the advance, got %s", got)
	}
	if got := MinAdvance(&models.Barbershop{MinAdvanceMinutes: -15}); got != 0 {
		t.Fatalf("negative is treated as zero, got %s", got)
	}
	if got := MinAdvance(&models.Barbershop{MinAdvanceMinutes: 30}); got != 30*time.Minute {
		t.Fatalf("expected 30m, got %s", got)
	}

	minAdvance := MinAdvance(&models.Barbershop{MinAdvanceMinutes: 0})
	if err := CheckAdvance(day(10, 0), now, minAdvance); err != nil {
		t.Fatalf("booking right now must pass without advance: %v", err)
	}
	if err := CheckAdvance(day(9, 59), now, minAdvance); err == nil {
		t.Fatal("past start must still be rejected")
	}
}
