package appointment

import "github.com/BruksfildServices01/barbershop-manager/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// ===============================
// Validations
// ===============================

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete define se um agendamento pode ser concluído
func CanComplete(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanReschedule: só agendamentos em aberto podem mudar de horário
func CanReschedule(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
