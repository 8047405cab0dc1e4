// internal/handlers/thaw.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/noodl/inventory/internal/i18n"
	"github.com/noodl/inventory/internal/services"
	"github.com/noodl/inventory/internal/utils"
)

type ThawHandler struct {
	thaws *services.ThawService
}

func NewThawHandler(thaws *services.ThawService) *ThawHandler {
	return &ThawHandler{thaws: thaws}
}

// GET /thawed
func (h *ThawHandler) GetThawedBatches(c *gin.Context) {
	batches, err := h.thaws.List()
	if err != nil {
		respondError(c, "thaw", err)
		return
	}

	utils.SuccessResponse(c, batches)
}

// POST /thawed
func (h *ThawHandler) ThawPortions(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.ThawRequest
	if !bindJSON(c, &req) {
		return
	}

	batch, err := h.thaws.Thaw(&req)
	if err != nil {
		respondError(c, "", err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":      i18n.T(lang, i18n.KeyThawCreated),
		"thawed_batch": batch,
	})
}

// GET /thawed/:id
func (h *ThawHandler) GetThawedBatch(c *gin.Context) {
	id, ok := parseID(c, "thaw")
	if !ok {
		return
	}

	batch, err := h.thaws.Get(id)
	if err != nil {
		respondError(c, "thaw", err)
		return
	}

	utils.SuccessResponse(c, batch)
}
