package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alexisallendez04/appBarberos-sub001/internal/audit"
	"github.com/alexisallendez04/appBarberos-sub001/internal/domain/schedule"
	"github.com/alexisallendez04/appBarberos-sub001/internal/httperr"
	"github.com/alexisallendez04/appBarberos-sub001/internal/httpresp"
	"github.com/alexisallendez04/appBarberos-sub001/internal/infra/cache"
	"github.com/alexisallendez04/appBarberos-sub001/internal/models"
)

type SpecialDayHandler struct {
	db    *gorm.DB
	cache *cache.AvailabilityCache
	audit *audit.Dispatcher
}

func NewSpecialDayHandler(db *gorm.DB, availCache *cache.AvailabilityCache, auditDisp *audit.Dispatcher) *SpecialDayHandler {
	return &SpecialDayHandler{db: db, cache: availCache, audit: auditDisp}
}

type SpecialDayRequest struct {
	Date      string `json:"date" binding:"required"`
	Kind      string `json:"kind"`
	AllDay    bool   `json:"all_day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (h *SpecialDayHandler) List(c *gin.Context) {
	barberID := barberFromContext(c)

	var days []models.SpecialDay
	if err := h.db.
		Where("barber_id = ?", barberID).
		Order("date ASC").
		Find(&days).Error; err != nil {
		httperr.Internal(c, "failed_to_list_special_days", "Error al listar días especiales.")
		return
	}

	httpresp.List(c, days)
}

func (h *SpecialDayHandler) Create(c *gin.Context) {
	barberID := barberFromContext(c)

	var req SpecialDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if _, err := schedule.ParseDate(req.Date); err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	if !req.AllDay {
		start, err1 := schedule.ParseClock(req.StartTime)
		end, err2 := schedule.ParseClock(req.EndTime)
		if err1 != nil || err2 != nil || start >= end {
			httperr.BadRequest(c, "invalid_window", "La ventana horaria del día especial es inválida.")
			return
		}
	}

	kind := req.Kind
	switch kind {
	case models.SpecialDayVacation, models.SpecialDayHoliday, models.SpecialDaySick, models.SpecialDayOther:
	case "":
		kind = models.SpecialDayOther
	default:
		httperr.BadRequest(c, "invalid_kind", "Tipo de día especial inválido.")
		return
	}

	sd := models.SpecialDay{
		BarberID:  barberID,
		Date:      req.Date,
		Kind:      kind,
		AllDay:    req.AllDay,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	if err := h.db.Create(&sd).Error; err != nil {
		httperr.Internal(c, "failed_to_create_special_day", "Error al crear el día especial.")
		return
	}

	// la grilla cacheada de esa fecha ya no vale
	h.cache.Invalidate(c.Request.Context(), barberID, sd.Date)

	h.audit.Dispatch(audit.Event{
		BarberID: &barberID,
		Action:   "special_day_created",
		Entity:   "special_day",
		EntityID: &sd.ID,
	})

	c.JSON(http.StatusCreated, sd)
}

func (h *SpecialDayHandler) Delete(c *gin.Context) {
	barberID := barberFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var sd models.SpecialDay
	if err := h.db.
		Where("id = ? AND barber_id = ?", id, barberID).
		First(&sd).Error; err != nil {
		httperr.NotFound(c, "special_day_not_found", "Día especial inexistente.")
		return
	}

	if err := h.db.Delete(&sd).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_special_day", "Error al borrar el día especial.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), barberID, sd.Date)

	h.audit.Dispatch(audit.Event{
		BarberID: &barberID,
		Action:   "special_day_deleted",
		Entity:   "special_day",
		EntityID: &sd.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
