package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alexisallendez04/appBarberos-sub001/internal/httperr"
	"github.com/alexisallendez04/appBarberos-sub001/internal/httpresp"
	"github.com/alexisallendez04/appBarberos-sub001/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	barberID := barberFromContext(c)

	limit := 50
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 500 {
		limit = v
	}

	var logs []models.AuditLog
	if err := h.db.
		Where("barber_id = ?", barberID).
		Order("id DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "Error al listar la auditoría.")
		return
	}

	httpresp.List(c, logs)
}
