package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/kieranegan23/GPA-CALC/internal/service"
	"github.com/kieranegan23/GPA-CALC/pkg/response"
)

// ExportHandler streams transcript downloads.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Transcript godoc
// @Summary Download the roster as a transcript
// @Tags Roster
// @Param format query string false "csv or pdf" default(csv)
// @Produce text/csv
// @Produce application/pdf
// @Success 200
// @Router /roster/export [get]
func (h *ExportHandler) Transcript(c *gin.Context) {
	format := service.ReportFormat(c.DefaultQuery("format", string(service.FormatCSV)))
	result, err := h.exports.Transcript(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(200, result.ContentType, result.Payload)
}
