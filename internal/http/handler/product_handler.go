package handler

import (
	"net/http"

	"github.com/bizzul/santini-manager-sub003/internal/service"
	"go.uber.org/zap"
)

type ProductHandler struct {
	productService *service.ProductService
	logger         *zap.Logger
}

func NewProductHandler(productService *service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// @Summary List products
// @Description Get the product catalog visible to the caller's site scope
// @Tags Products
// @Produce json
// @Param site_id query string false "Restrict to a single site (superadmin only)"
// @Success 200 {array} domain.ProductDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /products [get]
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list products")
		return
	}

	respondJSON(w, http.StatusOK, products)
}
