package commission

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

var hundred = decimal.NewFromInt(100)

type Split struct {
	Employee   decimal.Decimal `json:"employee"`
	Barbershop decimal.Decimal `json:"barbershop"`
}

// Compute divide o preço entre funcionário e barbearia. Tipos diferentes de
// "percentage" são tratados como valor fixo.
func Compute(price decimal.Decimal, kind string, value decimal.Decimal) Split {
	var employee decimal.Decimal
	if kind == models.CommissionPercentage {
		employee = price.Mul(value).Div(hundred)
	} else {
		employee = value
	}
	employee = employee.Round(2)

	return Split{
		Employee:   employee,
		Barbershop: price.Sub(employee).Round(2),
	}
}

// ForAppointment só gera comissão para atendimentos concluídos com serviço e
// funcionário carregados.
func ForAppointment(ap models.Appointment) Split {
	if appointment.Status(ap.Status) != appointment.StatusCompleted || ap.Service.ID == 0 || ap.Employee.ID == 0 {
		return Split{Employee: decimal.Zero, Barbershop: decimal.Zero}
	}
	return Compute(ap.Service.Price, ap.Employee.CommissionType, ap.Employee.CommissionValue)
}

// MonthlyEarnings soma a parte do funcionário nos atendimentos concluídos do
// mês corrente (ano e mês de now).
func MonthlyEarnings(employeeID uint, aps []models.Appointment, now time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, ap := range aps {
		if ap.EmployeeID != employeeID {
			continue
		}
		start := ap.StartTime.In(now.Location())
		if start.Year() != now.Year() || start.Month() != now.Month() {
			continue
		}
		total = total.Add(ForAppointment(ap).Employee)
	}
	return total
}
