package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alexisallendez04/appBarberos-sub001/internal/httperr"
	"github.com/alexisallendez04/appBarberos-sub001/internal/httpresp"
	"github.com/alexisallendez04/appBarberos-sub001/internal/models"
	"github.com/alexisallendez04/appBarberos-sub001/internal/timezone"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	barberID := barberFromContext(c)

	var user models.User
	if err := h.db.First(&user, barberID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuario inexistente.")
		return
	}

	c.JSON(http.StatusOK, user)
}

type MeUpdateRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Timezone string `json:"timezone"`
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	barberID := barberFromContext(c)

	var req MeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Timezone != "" && !timezone.IsValid(req.Timezone) {
		httperr.BadRequest(c, "invalid_timezone", "Zona horaria inválida.")
		return
	}

	var user models.User
	if err := h.db.First(&user, barberID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuario inexistente.")
		return
	}

	user.Name = req.Name
	user.Phone = req.Phone
	if req.Timezone != "" {
		user.Timezone = req.Timezone
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Error al actualizar el perfil.")
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListClients lista los clientes que alguna vez reservaron con el barbero.
func (h *MeHandler) ListClients(c *gin.Context) {
	barberID := barberFromContext(c)

	var clients []models.Client
	err := h.db.
		Distinct("clients.*").
		Joins("JOIN appointments ON appointments.client_id = clients.id").
		Where("appointments.barber_id = ?", barberID).
		Order("clients.id ASC").
		Find(&clients).Error
	if err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Error al listar clientes.")
		return
	}

	httpresp.List(c, clients)
}
