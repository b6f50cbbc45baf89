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

// DraftHandler drives the add/edit form state machine over HTTP.
type DraftHandler struct {
	roster *service.RosterService
}

// NewDraftHandler constructs the handler.
func NewDraftHandler(roster *service.RosterService) *DraftHandler {
	return &DraftHandler{roster: roster}
}

// Get godoc
// @Summary Current draft state
// @Tags Draft
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /draft [get]
func (h *DraftHandler) Get(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.roster.Draft())
}

// OpenAdd godoc
// @Summary Open an empty draft for a new class
// @Tags Draft
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /draft/add [post]
func (h *DraftHandler) OpenAdd(c *gin.Context) {
	view, err := h.roster.OpenAdd()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// OpenEdit godoc
// @Summary Open a draft prefilled from an existing entry
// @Tags Draft
// @Produce json
// @Param id path int true "Entry id"
// @Success 200 {object} response.Envelope
// @Router /draft/edit/{id} [post]
func (h *DraftHandler) OpenEdit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid entry id"))
		return
	}
	view, err := h.roster.OpenEdit(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Update godoc
// @Summary Patch fields of the open draft
// @Tags Draft
// @Accept json
// @Produce json
// @Param payload body service.UpdateDraftRequest true "Draft fields"
// @Success 200 {object} response.Envelope
// @Router /draft [patch]
func (h *DraftHandler) Update(c *gin.Context) {
	var req service.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	view, err := h.roster.UpdateDraft(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Submit godoc
// @Summary Commit the open draft
// @Description Incomplete drafts are a silent no-op returning 204.
// @Tags Draft
// @Produce json
// @Success 200 {object} response.Envelope
// @Success 204
// @Router /draft/submit [post]
func (h *DraftHandler) Submit(c *gin.Context) {
	mutated, err := h.roster.Submit(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if !mutated {
		response.NoContent(c)
		return
	}
	view := dto.RosterView{
		Entries:      h.roster.Roster(),
		GPA:          h.roster.GPA(),
		TotalCredits: h.roster.TotalCredits(),
	}
	response.JSON(c, http.StatusOK, view)
}

// Cancel godoc
// @Summary Discard the open draft
// @Tags Draft
// @Success 204
// @Router /draft/cancel [post]
func (h *DraftHandler) Cancel(c *gin.Context) {
	h.roster.Cancel()
	response.NoContent(c)
}
