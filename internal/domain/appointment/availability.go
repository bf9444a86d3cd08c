package appointment

import (
	"time"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

const (
	DefaultOpenTime  = "08:00"
	DefaultCloseTime = "18:00"

	SlotStep        = 30 * time.Minute
	DefaultDuration = 30 * time.Minute
)

type AvailabilityInput struct {
	EmployeeID uint
	ServiceID  uint
	Date       time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Window é o expediente de um funcionário em um dia específico.
type Window struct {
	Start      time.Time
	End        time.Time
	LunchStart time.Time
	LunchEnd   time.Time
	HasLunch   bool
	Closed     bool
}

// ResolveWindow usa o horário do funcionário para o dia da semana quando
// configurado; caso contrário, o horário de funcionamento da barbearia.
func ResolveWindow(
	shop *models.Barbershop,
	wh *models.WorkingHours,
	date time.Time,
) Window {

	parseHM := func(hm string) (time.Time, bool) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			date.Location(),
		), true
	}

	openHM, closeHM := DefaultOpenTime, DefaultCloseTime
	if shop != nil && shop.OpenTime != "" {
		openHM = shop.OpenTime
	}
	if shop != nil && shop.CloseTime != "" {
		closeHM = shop.CloseTime
	}

	var lunchStartHM, lunchEndHM string
	if wh != nil {
		if !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
			return Window{Closed: true}
		}
		openHM, closeHM = wh.StartTime, wh.EndTime
		lunchStartHM, lunchEndHM = wh.LunchStart, wh.LunchEnd
	}

	start, ok1 := parseHM(openHM)
	end, ok2 := parseHM(closeHM)
	if !ok1 || !ok2 || !end.After(start) {
		return Window{Closed: true}
	}

	w := Window{Start: start, End: end}

	if lunchStartHM != "" && lunchEndHM != "" {
		ls, ok1 := parseHM(lunchStartHM)
		le, ok2 := parseHM(lunchEndHM)
		if ok1 && ok2 && le.After(ls) {
			w.LunchStart, w.LunchEnd, w.HasLunch = ls, le, true
		}
	}

	return w
}

// Contains valida se [start, end) cabe no expediente, fora do almoço.
func (w Window) Contains(start, end time.Time) bool {
	if w.Closed {
		return false
	}
	if start.Before(w.Start) || end.After(w.End) {
		return false
	}
	if w.HasLunch && start.Before(w.LunchEnd) && end.After(w.LunchStart) {
		return false
	}
	return true
}

// AvailableSlots gera horários a cada step dentro da janela onde um
// atendimento de duration não colide com almoço nem com busy, e que não
// começam antes de earliest.
func AvailableSlots(
	w Window,
	duration time.Duration,
	step time.Duration,
	busy []Interval,
	earliest time.Time,
) []TimeSlot {

	slots := []TimeSlot{}
	if w.Closed || duration <= 0 || step <= 0 {
		return slots
	}

	for cur := w.Start; !cur.Add(duration).After(w.End); cur = cur.Add(step) {
		slotEnd := cur.Add(duration)

		if cur.Before(earliest) {
			continue
		}

		// almoço
		if w.HasLunch && cur.Before(w.LunchEnd) && slotEnd.After(w.LunchStart) {
			continue
		}

		if OverlapsAny(Interval{Start: cur, End: slotEnd}, busy) {
			continue
		}

		slots = append(slots, TimeSlot{
			Start: cur.Format("15:04"),
			End:   slotEnd.Format("15:04"),
		})
	}

	return slots
}
