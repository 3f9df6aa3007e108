package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tablebook/internal/domain/settings"
	reqdto "tablebook/internal/handler/dto/request"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/handler/middleware"
	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/queries"
)

type SettingsHandler struct {
	commands commands.SettingsCommands
	queries  queries.SettingsQueries
}

func NewSettingsHandler(cmds commands.SettingsCommands, qrys queries.SettingsQueries) *SettingsHandler {
	return &SettingsHandler{commands: cmds, queries: qrys}
}

// @Summary Get operating settings
// @Description Current settings for the tenant, created with defaults on first access
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SettingsResponse
// @Failure 401 {object} map[string]string
// @Router /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	view, err := h.queries.Get(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromSettingsView(view))
}

// @Summary Update operating settings
// @Description Patch settings; the merged result is validated as a whole
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.UpdateSettingsRequest true "Fields to update"
// @Success 200 {object} resdto.SettingsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /settings [patch]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.UpdateSettingsRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	updated, err := h.commands.Update(c.Request.Context(), tenantID, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrClosingBeforeOpening),
			errors.Is(err, settings.ErrInvalidSlotInterval),
			errors.Is(err, settings.ErrInvalidDuration),
			errors.Is(err, settings.ErrInvalidPartySize),
			errors.Is(err, settings.ErrInvalidAdvanceWindow):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromSettingsView(queries.ToSettingsView(updated)))
}
