package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/alexisallendez04/appBarberos-sub001/internal/domain/appointment"
	"github.com/alexisallendez04/appBarberos-sub001/internal/httperr"
)

// mapBookingError traduce los errores del core a HTTP. Lo que no es de
// negocio es el storage caído: 503, nunca disfrazado de "sin
// disponibilidad".
func mapBookingError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Unavailable(c, domain.StorageUnavailable, "No pudimos procesar la reserva, probá de nuevo en unos minutos.")
		return
	}

	switch code {
	case domain.RejectSlotTaken:
		httperr.Conflict(c, code, "Ese horario acaba de ocuparse, elegí otro.")
	case domain.RejectDayFull:
		httperr.Conflict(c, code, "La agenda de ese día está completa.")
	case domain.RejectOutsideHours:
		httperr.BadRequest(c, code, "El horario pedido está fuera del horario de atención.")
	case domain.RejectSpecialDay:
		httperr.BadRequest(c, code, "Ese día el barbero no atiende.")
	case domain.RejectTooSoon:
		httperr.BadRequest(c, code, "No se puede reservar con tan poca antelación.")
	case domain.RejectSameDayDisabled:
		httperr.BadRequest(c, code, "No se aceptan reservas para el mismo día.")
	case domain.RejectInvalidService:
		httperr.BadRequest(c, code, "Servicio inválido o inactivo.")
	case domain.RejectNotFound:
		httperr.NotFound(c, code, "No encontramos una reserva con ese código.")
	case domain.RejectEmailMismatch:
		httperr.BadRequest(c, code, "El email no coincide con el de la reserva.")
	case domain.RejectAlreadyCancelled:
		httperr.BadRequest(c, code, "Esa reserva ya estaba cancelada.")
	case "invalid_date", "invalid_time", "invalid_month", "invalid_schedule_data":
		httperr.BadRequest(c, code, "Datos inválidos.")
	case "appointment_not_found":
		httperr.NotFound(c, code, "Turno inexistente.")
	case "invalid_state":
		httperr.BadRequest(c, code, "El turno no admite esa transición.")
	default:
		httperr.BadRequest(c, code, "Solicitud inválida.")
	}
}
