// internal/handlers/waste.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/noodl/inventory/internal/i18n"
	"github.com/noodl/inventory/internal/services"
	"github.com/noodl/inventory/internal/utils"
)

type WasteHandler struct {
	waste *services.WasteService
}

func NewWasteHandler(waste *services.WasteService) *WasteHandler {
	return &WasteHandler{waste: waste}
}

// GET /waste
func (h *WasteHandler) GetWasteEntries(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	entries, total, err := h.waste.List(params)
	if err != nil {
		respondError(c, "", err)
		return
	}

	result := utils.CreatePaginationResult(entries, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /waste
func (h *WasteHandler) RecordWaste(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.DiscardRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.waste.Discard(&req)
	if err != nil {
		respondError(c, "", err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyWasteRecorded),
		"waste_entry": entry,
	})
}
