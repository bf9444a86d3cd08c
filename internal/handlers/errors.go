package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barbershop-manager/internal/usecase/appointment"
)

type businessMapping struct {
	status  int
	message string
}

var businessErrors = map[string]businessMapping{
	"barbershop_not_found":  {http.StatusNotFound, "Barbearia não encontrada."},
	"appointment_not_found": {http.StatusNotFound, "Agendamento não encontrado."},
	"service_not_found":     {http.StatusNotFound, "Serviço não encontrado."},
	"employee_not_found":    {http.StatusNotFound, "Funcionário não encontrado."},
	"client_not_found":      {http.StatusNotFound, "Cliente não encontrado."},
	"time_conflict":         {http.StatusConflict, "Conflito de horário."},
	"too_soon":              {http.StatusBadRequest, "Horário inválido: respeite a antecedência mínima."},
	"outside_working_hours": {http.StatusBadRequest, "Fora do horário de atendimento."},
	"invalid_state":         {http.StatusBadRequest, "Operação não permitida no status atual."},
	"invalid_date_or_time":  {http.StatusBadRequest, "Data ou hora inválida."},
	"invalid_date":          {http.StatusBadRequest, "Data inválida."},
	"invalid_period":        {http.StatusBadRequest, "Período inválido."},
	"client_required":       {http.StatusBadRequest, "Nome e telefone do cliente são obrigatórios."},
}

// writeError traduz BusinessError em status HTTP; o resto vira 500 com o
// código informado.
func writeError(c *gin.Context, err error, code, message string) {
	if bc, ok := httperr.BusinessCode(err); ok {
		if m, known := businessErrors[bc]; known {
			httperr.Write(c, m.status, bc, m.message)
			return
		}
		httperr.BadRequest(c, bc, message)
		return
	}
	_ = c.Error(err)
	httperr.Internal(c, code, message)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

func queryID(c *gin.Context, name string) (uint, bool) {
	v := c.Query(name)
	if v == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+name, "Parâmetro inválido: "+name+".")
		return 0, false
	}
	return uint(id), true
}

// actorFrom monta o ator do caso de uso a partir do token.
func actorFrom(c *gin.Context) ucAppointment.Actor {
	kind := audit.ActorEmployee
	if c.GetString(middleware.ContextSubjectKind) == middleware.KindClient {
		kind = audit.ActorClient
	}
	return ucAppointment.Actor{
		ID:    middleware.SubjectID(c),
		Kind:  kind,
		Admin: middleware.IsAdmin(c),
	}
}

func validHM(hm string) bool {
	_, err := time.Parse("15:04", hm)
	return err == nil && len(hm) == 5
}
