package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alexisallendez04/appBarberos-sub001/internal/audit"
	"github.com/alexisallendez04/appBarberos-sub001/internal/domain/schedule"
	"github.com/alexisallendez04/appBarberos-sub001/internal/models"
)

type WorkingHoursHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewWorkingHoursHandler(db *gorm.DB, auditDisp *audit.Dispatcher) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db, audit: auditDisp}
}

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	barberID := barberFromContext(c)

	var hours []models.WorkingHours
	if err := h.db.
		Where("barber_id = ?", barberID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_working_hours"})
		return
	}

	c.JSON(http.StatusOK, hours)
}

// Update reemplaza la semana completa. Valida cada día activo antes de
// tocar nada: inicio < fin y pausa bien contenida en la ventana.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	barberID := barberFromContext(c)

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	for _, d := range req.Days {
		if !d.Active {
			continue
		}
		if msg := validateDay(d); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_working_hours",
				"details": msg,
			})
			return
		}
	}

	if err := h.db.Where("barber_id = ?", barberID).Delete(&models.WorkingHours{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_clear_existing_hours"})
		return
	}

	var toCreate []models.WorkingHours
	for _, d := range req.Days {
		toCreate = append(toCreate, models.WorkingHours{
			BarberID:   barberID,
			Weekday:    d.Weekday,
			Active:     d.Active,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			BreakStart: d.BreakStart,
			BreakEnd:   d.BreakEnd,
		})
	}

	if len(toCreate) > 0 {
		if err := h.db.Create(&toCreate).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_working_hours"})
			return
		}
	}

	h.audit.Dispatch(audit.Event{
		BarberID: &barberID,
		Action:   "working_hours_replaced",
		Entity:   "working_hours",
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func validateDay(d WorkingDayConfig) string {
	start, err := schedule.ParseClock(d.StartTime)
	if err != nil {
		return "hora de inicio inválida"
	}
	end, err := schedule.ParseClock(d.EndTime)
	if err != nil {
		return "hora de fin inválida"
	}
	if start >= end {
		return "el inicio tiene que ser anterior al fin"
	}

	if d.BreakStart == "" && d.BreakEnd == "" {
		return ""
	}

	bs, err := schedule.ParseClock(d.BreakStart)
	if err != nil {
		return "inicio de pausa inválido"
	}
	be, err := schedule.ParseClock(d.BreakEnd)
	if err != nil {
		return "fin de pausa inválido"
	}
	if bs >= be || bs < start || be > end {
		return "la pausa tiene que quedar dentro de la ventana"
	}
	return ""
}
