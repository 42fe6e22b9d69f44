package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alexisallendez04/appBarberos-sub001/internal/httperr"
	"github.com/alexisallendez04/appBarberos-sub001/internal/httpresp"
	"github.com/alexisallendez04/appBarberos-sub001/internal/models"
	"github.com/alexisallendez04/appBarberos-sub001/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler atiende el formulario de reservas: servicios, grilla de
// horarios, reserva y auto-cancelación con código.
type PublicHandler struct {
	db           *gorm.DB
	availability *booking.GetAvailability
	reserve      *booking.Reserve
	cancelByCode *booking.CancelByCode
}

func NewPublicHandler(
	db *gorm.DB,
	availability *booking.GetAvailability,
	reserve *booking.Reserve,
	cancelByCode *booking.CancelByCode,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		availability: availability,
		reserve:      reserve,
		cancelByCode: cancelByCode,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicBookRequest struct {
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime string `json:"start_time" binding:"required"` // HH:MM

	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email" binding:"required,email"`
	Notes       string `json:"notes"`
}

type PublicCancelRequest struct {
	Code  string `json:"code" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	barberID, ok := paramUint(c, "barberId")
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("barber_id = ? AND active = true", barberID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Error al listar servicios.")
		return
	}

	httpresp.List(c, services)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	barberID, ok := paramUint(c, "barberId")
	if !ok {
		return
	}

	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")
	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Fecha y servicio son obligatorios.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Servicio inválido.")
		return
	}

	out, err := h.availability.Execute(
		c.Request.Context(),
		booking.AvailabilityInput{
			BarberID:  barberID,
			ServiceID: uint(serviceID),
			Date:      dateStr,
		},
	)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

////////////////////////////////////////////////////////
// BOOK
////////////////////////////////////////////////////////

func (h *PublicHandler) Book(c *gin.Context) {
	barberID, ok := paramUint(c, "barberId")
	if !ok {
		return
	}

	var req PublicBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	out, err := h.reserve.Execute(
		c.Request.Context(),
		booking.ReserveInput{
			BarberID:    barberID,
			ServiceID:   req.ServiceID,
			Date:        req.Date,
			StartTime:   req.StartTime,
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			ClientEmail: req.ClientEmail,
			Notes:       req.Notes,
		},
	)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, out)
}

////////////////////////////////////////////////////////
// CANCEL BY CODE
////////////////////////////////////////////////////////

func (h *PublicHandler) Cancel(c *gin.Context) {
	var req PublicCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.cancelByCode.Execute(c.Request.Context(), req.Code, req.Email)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "cancelled",
		"date":       ap.Date,
		"start_time": ap.StartTime,
	})
}

// paramUint lee un id numérico de la ruta o corta con 400.
func paramUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Identificador inválido.")
		return 0, false
	}
	return uint(v), true
}
