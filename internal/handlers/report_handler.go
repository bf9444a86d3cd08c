package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-manager/internal/export"
	"github.com/BruksfildServices01/barbershop-manager/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	ucReport "github.com/BruksfildServices01/barbershop-manager/internal/usecase/report"
)

type ReportHandler struct {
	dashboard *ucReport.GetDashboard
	report    *ucReport.GetReport
	export    *ucReport.ExportReport
	portal    *ucReport.GetEmployeePortal
}

func NewReportHandler(
	dashboard *ucReport.GetDashboard,
	report *ucReport.GetReport,
	export *ucReport.ExportReport,
	portal *ucReport.GetEmployeePortal,
) *ReportHandler {
	return &ReportHandler{
		dashboard: dashboard,
		report:    report,
		export:    export,
		portal:    portal,
	}
}

func (h *ReportHandler) Dashboard(c *gin.Context) {
	d, err := h.dashboard.Execute(c.Request.Context())
	if err != nil {
		writeError(c, err, "failed_to_load_dashboard", "Erro ao carregar o painel.")
		return
	}
	httpresp.OK(c, d)
}

// Report aceita ?from=YYYY-MM-DD&to=YYYY-MM-DD, ambos inclusivos.
func (h *ReportHandler) Report(c *gin.Context) {
	s, err := h.report.Execute(c.Request.Context(), periodFrom(c))
	if err != nil {
		writeError(c, err, "failed_to_build_report", "Erro ao gerar relatório.")
		return
	}
	httpresp.OK(c, s)
}

func (h *ReportHandler) Export(c *gin.Context) {
	data, err := h.export.Execute(c.Request.Context(), periodFrom(c))
	if err != nil {
		writeError(c, err, "failed_to_export_report", "Erro ao exportar relatório.")
		return
	}

	name := fmt.Sprintf("relatorio-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, export.ContentTypeXLSX, data)
}

// EmployeePortal é o painel do próprio funcionário.
func (h *ReportHandler) EmployeePortal(c *gin.Context) {
	p, err := h.portal.Execute(c.Request.Context(), middleware.SubjectID(c))
	if err != nil {
		writeError(c, err, "failed_to_load_portal", "Erro ao carregar o portal.")
		return
	}
	httpresp.OK(c, p)
}

func periodFrom(c *gin.Context) ucReport.Period {
	return ucReport.Period{From: c.Query("from"), To: c.Query("to")}
}
