package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/commission"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

const RecentLimit = 5

type EmployeeStat struct {
	EmployeeID      uint            `json:"employee_id"`
	Name            string          `json:"name"`
	CommissionType  string          `json:"commission_type"`
	CommissionValue decimal.Decimal `json:"commission_value"`
	Appointments    int             `json:"appointments"`
	Earnings        decimal.Decimal `json:"earnings"`
}

type ServiceStat struct {
	ServiceID    uint            `json:"service_id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Appointments int             `json:"appointments"`
	Revenue      decimal.Decimal `json:"revenue"`
}

type Summary struct {
	From        *time.Time      `json:"from,omitempty"`
	To          *time.Time      `json:"to,omitempty"`
	Total       int             `json:"total"`
	Completed   int             `json:"completed"`
	Cancelled   int             `json:"cancelled"`
	Revenue     decimal.Decimal `json:"revenue"`
	Commissions decimal.Decimal `json:"commissions"`
	NetRevenue  decimal.Decimal `json:"net_revenue"`
	Employees   []EmployeeStat  `json:"employees"`
	Services    []ServiceStat   `json:"services"`
}

// Summarize agrega os agendamentos cuja data cai em [from, to] (dias
// inclusivos; nil = sem limite). Os agendamentos precisam vir com Employee e
// Service carregados.
func Summarize(aps []models.Appointment, from, to *time.Time) Summary {
	s := Summary{
		From:        from,
		To:          to,
		Revenue:     decimal.Zero,
		Commissions: decimal.Zero,
		Employees:   []EmployeeStat{},
		Services:    []ServiceStat{},
	}

	empIdx := map[uint]int{}
	svcIdx := map[uint]int{}

	for _, ap := range aps {
		if !inRange(ap.StartTime, from, to) {
			continue
		}
		s.Total++

		switch appointment.Status(ap.Status) {
		case appointment.StatusCancelled:
			s.Cancelled++
			continue
		case appointment.StatusCompleted:
			s.Completed++
		default:
			continue
		}

		split := commission.ForAppointment(ap)
		s.Revenue = s.Revenue.Add(ap.Service.Price)
		s.Commissions = s.Commissions.Add(split.Employee)

		i, ok := empIdx[ap.EmployeeID]
		if !ok {
			i = len(s.Employees)
			empIdx[ap.EmployeeID] = i
			s.Employees = append(s.Employees, EmployeeStat{
				EmployeeID:      ap.EmployeeID,
				Name:            ap.Employee.Name,
				CommissionType:  ap.Employee.CommissionType,
				CommissionValue: ap.Employee.CommissionValue,
				Earnings:        decimal.Zero,
			})
		}
		s.Employees[i].Appointments++
		s.Employees[i].Earnings = s.Employees[i].Earnings.Add(split.Employee)

		j, ok := svcIdx[ap.ServiceID]
		if !ok {
			j = len(s.Services)
			svcIdx[ap.ServiceID] = j
			s.Services = append(s.Services, ServiceStat{
				ServiceID: ap.ServiceID,
				Name:      ap.Service.Name,
				Price:     ap.Service.Price,
				Revenue:   decimal.Zero,
			})
		}
		s.Services[j].Appointments++
		s.Services[j].Revenue = s.Services[j].Revenue.Add(ap.Service.Price)
	}

	s.NetRevenue = s.Revenue.Sub(s.Commissions)

	sort.Slice(s.Employees, func(a, b int) bool { return s.Employees[a].EmployeeID < s.Employees[b].EmployeeID })
	sort.Slice(s.Services, func(a, b int) bool { return s.Services[a].ServiceID < s.Services[b].ServiceID })

	return s
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	// to é inclusivo no dia inteiro
	if to != nil && !t.Before(to.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

type Dashboard struct {
	TotalClients      int64                `json:"total_clients"`
	TodayAppointments int                  `json:"today_appointments"`
	CompletedServices int                  `json:"completed_services"`
	MonthRevenue      decimal.Decimal      `json:"month_revenue"`
	Recent            []models.Appointment `json:"recent"`
}

// BuildDashboard calcula os indicadores do painel relativos a now.
func BuildDashboard(totalClients int64, aps []models.Appointment, now time.Time) Dashboard {
	d := Dashboard{
		TotalClients: totalClients,
		MonthRevenue: decimal.Zero,
		Recent:       []models.Appointment{},
	}

	loc := now.Location()
	for _, ap := range aps {
		start := ap.StartTime.In(loc)
		status := appointment.Status(ap.Status)

		if start.Year() == now.Year() && start.YearDay() == now.YearDay() {
			d.TodayAppointments++
		}
		if status == appointment.StatusCompleted {
			d.CompletedServices++
			if start.Year() == now.Year() && start.Month() == now.Month() {
				d.MonthRevenue = d.MonthRevenue.Add(ap.Service.Price)
			}
		}
		if status != appointment.StatusCancelled {
			d.Recent = append(d.Recent, ap)
		}
	}

	sort.SliceStable(d.Recent, func(i, j int) bool {
		return d.Recent[i].StartTime.After(d.Recent[j].StartTime)
	})
	if len(d.Recent) > RecentLimit {
		d.Recent = d.Recent[:RecentLimit]
	}

	return d
}
