package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alexisallendez04/appBarberos-sub001/internal/audit"
	"github.com/alexisallendez04/appBarberos-sub001/internal/httperr"
	"github.com/alexisallendez04/appBarberos-sub001/internal/models"
)

type BarberConfigHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewBarberConfigHandler(db *gorm.DB, auditDisp *audit.Dispatcher) *BarberConfigHandler {
	return &BarberConfigHandler{db: db, audit: auditDisp}
}

type BarberConfigRequest struct {
	SlotIntervalMinutes   int  `json:"slot_interval_minutes" binding:"required,min=5,max=240"`
	BufferMinutes         int  `json:"buffer_minutes" binding:"min=0,max=120"`
	AdvanceBookingMinutes int  `json:"advance_booking_minutes" binding:"min=0,max=43200"`
	MaxBookingsPerDay     int  `json:"max_bookings_per_day" binding:"required,min=1,max=200"`
	AllowSameDayBooking   bool `json:"allow_same_day_booking"`
}

func (h *BarberConfigHandler) Get(c *gin.Context) {
	barberID := barberFromContext(c)

	var cfg models.BarberConfig
	err := h.db.Where("barber_id = ?", barberID).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cfg = models.DefaultBarberConfig(barberID)
	} else if err != nil {
		httperr.Internal(c, "failed_to_get_config", "Error al leer la configuración.")
		return
	}

	c.JSON(http.StatusOK, cfg)
}

func (h *BarberConfigHandler) Update(c *gin.Context) {
	barberID := barberFromContext(c)

	var req BarberConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	var cfg models.BarberConfig
	err := h.db.Where("barber_id = ?", barberID).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cfg = models.DefaultBarberConfig(barberID)
	} else if err != nil {
		httperr.Internal(c, "failed_to_get_config", "Error al leer la configuración.")
		return
	}

	cfg.SlotIntervalMinutes = req.SlotIntervalMinutes
	cfg.BufferMinutes = req.BufferMinutes
	cfg.AdvanceBookingMinutes = req.AdvanceBookingMinutes
	cfg.MaxBookingsPerDay = req.MaxBookingsPerDay
	cfg.AllowSameDayBooking = req.AllowSameDayBooking

	if err := h.db.Save(&cfg).Error; err != nil {
		httperr.Internal(c, "failed_to_save_config", "Error al guardar la configuración.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarberID: &barberID,
		Action:   "barber_config_updated",
		Entity:   "barber_config",
		EntityID: &cfg.ID,
	})

	c.JSON(http.StatusOK, cfg)
}
