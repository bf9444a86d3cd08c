package appointment

import (
	"time"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

// Interval é semiaberto: [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func (a Interval) Overlaps(b Interval) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

func OverlapsAny(iv Interval, busy []Interval) bool {
	for _, b := range busy {
		if iv.Overlaps(b) {
			return true
		}
	}
	return false
}

// IntervalOf calcula o intervalo ocupado a partir da duração do serviço.
// Sem serviço carregado, usa o EndTime gravado no agendamento.
func IntervalOf(ap models.Appointment) (Interval, bool) {
	if ap.Service.ID != 0 && ap.Service.DurationMin > 0 {
		return Interval{
			Start: ap.StartTime,
			End:   ap.StartTime.Add(time.Duration(ap.Service.DurationMin) * time.Minute),
		}, true
	}
	if ap.EndTime.After(ap.StartTime) {
		return Interval{Start: ap.StartTime, End: ap.EndTime}, true
	}
	return Interval{}, false
}

// BusyIntervals ignora agendamentos cancelados e, se skipID != 0, o próprio
// agendamento sendo remarcado.
func BusyIntervals(aps []models.Appointment, skipID uint) []Interval {
	out := make([]Interval, 0, len(aps))
	for _, ap := range aps {
		if Status(ap.Status) == StatusCancelled {
			continue
		}
		if skipID != 0 && ap.ID == skipID {
			continue
		}
		if iv, ok := IntervalOf(ap); ok {
			out = append(out, iv)
		}
	}
	return out
}
