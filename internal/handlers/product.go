// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/noodl/inventory/internal/i18n"
	"github.com/noodl/inventory/internal/services"
	"github.com/noodl/inventory/internal/utils"
)

type ProductHandler struct {
	catalog *services.CatalogService
}

func NewProductHandler(catalog *services.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.catalog.List()
	if err != nil {
		respondError(c, "product", err)
		return
	}

	utils.SuccessResponse(c, products)
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.catalog.Create(&req)
	if err != nil {
		respondError(c, "product", err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductCreated),
		"product": product,
	})
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "product")
	if !ok {
		return
	}

	product, err := h.catalog.Get(id)
	if err != nil {
		respondError(c, "product", err)
		return
	}

	utils.SuccessResponse(c, product)
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseID(c, "product")
	if !ok {
		return
	}

	var req services.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.catalog.Update(id, &req)
	if err != nil {
		respondError(c, "product", err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": product,
	})
}
