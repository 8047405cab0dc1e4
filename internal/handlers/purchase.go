// internal/handlers/purchase.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/noodl/inventory/internal/i18n"
	"github.com/noodl/inventory/internal/services"
	"github.com/noodl/inventory/internal/utils"
)

type PurchaseHandler struct {
	purchases *services.PurchaseService
}

func NewPurchaseHandler(purchases *services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases}
}

// GET /purchases
func (h *PurchaseHandler) GetPurchases(c *gin.Context) {
	batches, err := h.purchases.List()
	if err != nil {
		respondError(c, "purchase", err)
		return
	}

	utils.SuccessResponse(c, batches)
}

// POST /purchases
func (h *PurchaseHandler) CreatePurchase(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreatePurchaseRequest
	if !bindJSON(c, &req) {
		return
	}

	// A missing product here is a bad reference, not a missing batch
	batch, err := h.purchases.Create(&req)
	if err != nil {
		respondError(c, "", err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":        i18n.T(lang, i18n.KeyPurchaseCreated),
		"purchase_batch": batch,
	})
}

// GET /purchases/:id
func (h *PurchaseHandler) GetPurchase(c *gin.Context) {
	id, ok := parseID(c, "purchase")
	if !ok {
		return
	}

	batch, err := h.purchases.Get(id)
	if err != nil {
		respondError(c, "purchase", err)
		return
	}

	utils.SuccessResponse(c, batch)
}

// PUT /purchases/:id
func (h *PurchaseHandler) UpdatePurchase(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseID(c, "purchase")
	if !ok {
		return
	}

	var req services.UpdatePurchaseRequest
	if !bindJSON(c, &req) {
		return
	}

	batch, err := h.purchases.Update(id, &req)
	if err != nil {
		respondError(c, "purchase", err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":        i18n.T(lang, i18n.KeyPurchaseUpdated),
		"purchase_batch": batch,
	})
}
