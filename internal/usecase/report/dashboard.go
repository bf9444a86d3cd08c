package report

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-manager/internal/domain/report"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/timezone"
)

type GetDashboard struct {
	repo Repository
	now  Clock
}

func NewGetDashboard(repo Repository) *GetDashboard {
	return &GetDashboard{repo: repo, now: timezone.NowIn}
}

func (uc *GetDashboard) Execute(ctx context.Context) (*report.Dashboard, error) {
	shop, err := uc.repo.GetBarbershop(ctx)
	if err != nil {
		return nil, notFoundAs(err, "barbershop_not_found")
	}

	total, err := uc.repo.CountClients(ctx)
	if err != nil {
		return nil, err
	}

	aps, err := uc.repo.ListAppointments(ctx, domain.ListFilter{})
	if err != nil {
		return nil, err
	}

	d := report.BuildDashboard(total, aps, uc.now(shop.Timezone))
	return &d, nil
}

func notFoundAs(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}
