package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/barbershop-manager/internal/domain/report"
	"github.com/BruksfildServices01/barbershop-manager/internal/dto"
)

const (
	SheetSummary      = "Resumo"
	SheetEmployees    = "Funcionarios"
	SheetServices     = "Servicos"
	SheetAppointments = "Agendamentos"

	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportXLSX monta a planilha do relatório: resumo, comissões por
// funcionário, faturamento por serviço e a lista de agendamentos do período.
func ReportXLSX(
	s report.Summary,
	appointments []dto.AppointmentListDTO,
	loc *time.Location,
) ([]byte, error) {

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return nil, err
	}

	period := "todo o período"
	if s.From != nil || s.To != nil {
		period = fmt.Sprintf("%s a %s", dateOrDash(s.From), dateOrDash(s.To))
	}

	summary := [][]any{
		{"Período", period},
		{"Total de agendamentos", s.Total},
		{"Concluídos", s.Completed},
		{"Cancelados", s.Cancelled},
		{"Faturamento", s.Revenue.StringFixed(2)},
		{"Comissões", s.Commissions.StringFixed(2)},
		{"Receita líquida", s.NetRevenue.StringFixed(2)},
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		return nil, err
	}

	employees := [][]any{{"Funcionário", "Tipo de comissão", "Valor", "Atendimentos", "Comissão"}}
	for _, e := range s.Employees {
		employees = append(employees, []any{
			e.Name, e.CommissionType, e.CommissionValue.StringFixed(2), e.Appointments, e.Earnings.StringFixed(2),
		})
	}
	if err := writeSheet(f, SheetEmployees, employees); err != nil {
		return nil, err
	}

	services := [][]any{{"Serviço", "Preço", "Atendimentos", "Faturamento"}}
	for _, sv := range s.Services {
		services = append(services, []any{
			sv.Name, sv.Price.StringFixed(2), sv.Appointments, sv.Revenue.StringFixed(2),
		})
	}
	if err := writeSheet(f, SheetServices, services); err != nil {
		return nil, err
	}

	rows := [][]any{{"Data", "Horário", "Cliente", "Funcionário", "Serviço", "Status", "Preço", "Comissão"}}
	for _, ap := range appointments {
		start := ap.StartTime.In(loc)
		rows = append(rows, []any{
			start.Format("02/01/2006"),
			start.Format("15:04"),
			ap.ClientName,
			ap.EmployeeName,
			ap.ServiceName,
			ap.Status,
			ap.Price.StringFixed(2),
			ap.Commission.StringFixed(2),
		})
	}
	if err := writeSheet(f, SheetAppointments, rows); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]any) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return err
		}
	}
	return nil
}

func dateOrDash(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("02/01/2006")
}
