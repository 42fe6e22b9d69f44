package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alexisallendez04/appBarberos-sub001/internal/httperr"
	"github.com/alexisallendez04/appBarberos-sub001/internal/httpresp"
	"github.com/alexisallendez04/appBarberos-sub001/internal/middleware"
	"github.com/alexisallendez04/appBarberos-sub001/internal/models"
	ucAppointment "github.com/alexisallendez04/appBarberos-sub001/internal/usecase/appointment"
)

type AppointmentHandler struct {
	list        *ucAppointment.ListAppointments
	transitions *ucAppointment.Transitions
}

func NewAppointmentHandler(
	list *ucAppointment.ListAppointments,
	transitions *ucAppointment.Transitions,
) *AppointmentHandler {
	return &AppointmentHandler{
		list:        list,
		transitions: transitions,
	}
}

func barberFromContext(c *gin.Context) uint {
	v, _ := c.Get(middleware.ContextBarberID)
	return v.(uint)
}

// --------- Listados ---------

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID := barberFromContext(c)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Falta la fecha.")
		return
	}

	out, err := h.list.ByDate(c.Request.Context(), barberID, dateStr)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	barberID := barberFromContext(c)

	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_month", "Año y mes numéricos obligatorios.")
		return
	}

	out, err := h.list.ByMonth(c.Request.Context(), barberID, year, month)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.List(c, out)
}

// --------- Transiciones ---------

type transitionFn func(ctx context.Context, barberID, appointmentID uint) (*models.Appointment, error)

func (h *AppointmentHandler) Confirm(c *gin.Context)  { h.transition(c, h.transitions.Confirm) }
func (h *AppointmentHandler) Start(c *gin.Context)    { h.transition(c, h.transitions.Start) }
func (h *AppointmentHandler) Cancel(c *gin.Context)   { h.transition(c, h.transitions.Cancel) }
func (h *AppointmentHandler) Complete(c *gin.Context) { h.transition(c, h.transitions.Complete) }
func (h *AppointmentHandler) NoShow(c *gin.Context)   { h.transition(c, h.transitions.MarkNoShow) }

func (h *AppointmentHandler) transition(c *gin.Context, fn transitionFn) {
	barberID := barberFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := fn(c.Request.Context(), barberID, uint(id))
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}
