package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kieranegan23/GPA-CALC/internal/dto"
	"github.com/kieranegan23/GPA-CALC/internal/service"
	appErrors "github.com/kieranegan23/GPA-CALC/pkg/errors"
	"github.com/kieranegan23/GPA-CALC/pkg/response"
)

// RosterHandler exposes the roster read, save and delete endpoints.
type RosterHandler struct {
	roster *service.RosterService
}

// NewRosterHandler constructs the handler.
func NewRosterHandler(roster *service.RosterService) *RosterHandler {
	return &RosterHandler{roster: roster}
}

// Get godoc
// @Summary Current roster with derived GPA and credit totals
// @Tags Roster
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /roster [get]
func (h *RosterHandler) Get(c *gin.Context) {
	view := dto.RosterView{
		Entries:      h.roster.Roster(),
		GPA:          h.roster.GPA(),
		TotalCredits: h.roster.TotalCredits(),
	}
	response.JSON(c, http.StatusOK, view)
}

// Save godoc
// @Summary Explicitly save the roster
// @Tags Roster
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /roster/save [post]
func (h *RosterHandler) Save(c *gin.Context) {
	result := h.roster.Save(c.Request.Context())
	response.JSON(c, http.StatusOK, result)
}

// Delete godoc
// @Summary Delete a class entry
// @Tags Roster
// @Param id path int true "Entry id"
// @Success 204
// @Router /roster/entries/{id} [delete]
func (h *RosterHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid entry id"))
		return
	}
	h.roster.DeleteEntry(c.Request.Context(), id)
	response.NoContent(c)
}
