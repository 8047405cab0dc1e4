// internal/handlers/report.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noodl/inventory/internal/i18n"
	"github.com/noodl/inventory/internal/services"
	"github.com/noodl/inventory/internal/utils"
)

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// GET /reports/inventory
func (h *ReportHandler) DownloadInventory(c *gin.Context) {
	body, generatedAt, err := h.reports.Build()
	if err != nil {
		respondError(c, "", err)
		return
	}

	filename := fmt.Sprintf("inventory_%s.csv", generatedAt.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", body)
}

// POST /reports/inventory/archive
func (h *ReportHandler) ArchiveInventory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	result, err := h.reports.Archive(c.Request.Context())
	if err != nil {
		respondError(c, "", err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyReportArchived),
		"report":  result,
	})
}
