package appointment

import (
	"time"

	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

const DefaultMinAdvanceMinutes = 120

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// MinAdvance devolve a antecedência mínima configurada na barbearia.
// Zero desliga a exigência; o padrão de 120 vem da coluna e do seed.
func MinAdvance(shop *models.Barbershop) time.Duration {
	minutes := shop.MinAdvanceMinutes
	if minutes < 0 {
		minutes = 0
	}
	return time.Duration(minutes) * time.Minute
}

// CheckAdvance rejeita horários antes de now + minAdvance. Exatamente
// now + minAdvance é aceito, igual ao primeiro slot de AvailableSlots.
func CheckAdvance(start, now time.Time, minAdvance time.Duration) error {
	if start.Before(now.Add(minAdvance)) {
		return httperr.ErrBusiness("too_soon")
	}
	return nil
}
