package report

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/report"
	"github.com/BruksfildServices01/barbershop-manager/internal/dto"
	"github.com/BruksfildServices01/barbershop-manager/internal/export"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

// Period são datas YYYY-MM-DD inclusivas; vazias não limitam.
type Period struct {
	From string
	To   string
}

type GetReport struct {
	repo Repository
}

func NewGetReport(repo Repository) *GetReport {
	return &GetReport{repo: repo}
}

func (uc *GetReport) Execute(ctx context.Context, p Period) (*report.Summary, error) {
	s, _, _, err := uc.load(ctx, p)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *GetReport) load(
	ctx context.Context,
	p Period,
) (*report.Summary, []dto.AppointmentListDTO, *time.Location, error) {

	shop, err := uc.repo.GetBarbershop(ctx)
	if err != nil {
		return nil, nil, nil, notFoundAs(err, "barbershop_not_found")
	}
	loc := timezone.Location(shop.Timezone)

	from, err := parseBound(p.From, loc)
	if err != nil {
		return nil, nil, nil, err
	}
	to, err := parseBound(p.To, loc)
	if err != nil {
		return nil, nil, nil, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, nil, httperr.ErrBusiness("invalid_period")
	}

	filter := domain.ListFilter{}
	if from != nil {
		filter.From = *from
	}
	if to != nil {
		filter.To = to.AddDate(0, 0, 1)
	}

	aps, err := uc.repo.ListAppointments(ctx, filter)
	if err != nil {
		return nil, nil, nil, err
	}

	s := report.Summarize(aps, from, to)
	return &s, dto.AppointmentList(aps), loc, nil
}

func parseBound(v string, loc *time.Location) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := timezone.ParseDate(v, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	return &t, nil
}

// ======================================================
// EXPORT
// ======================================================

type ExportReport struct {
	report *GetReport
}

func NewExportReport(repo Repository) *ExportReport {
	return &ExportReport{report: NewGetReport(repo)}
}

// Execute devolve a planilha XLSX do período.
func (uc *ExportReport) Execute(ctx context.Context, p Period) ([]byte, error) {
	s, aps, loc, err := uc.report.load(ctx, p)
	if err != nil {
		return nil, err
	}
	return export.ReportXLSX(*s, aps, loc)
}
