package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/pos-terminal/internal/api/middleware"
	service "github.com/aaravmahajanofficial/pos-terminal/internal/services"
	"github.com/aaravmahajanofficial/pos-terminal/internal/utils/response"
)

type ProductHandler struct {
	catalogService service.CatalogService
}

func NewProductHandler(catalogService service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// GetProduct godoc
//	@Summary		Look up a product by sku
//	@Description	Returns the name, unit price and available stock that a cart line would copy.
//	@Tags			Products
//	@Produce		json
//	@Param			sku	path		string	true	"Product sku"
//	@Success		200	{object}	models.CatalogItem
//	@Failure		404	{object}	response.ErrorResponse	"Item not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/products/{sku} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		sku := r.PathValue("sku")

		item, err := h.catalogService.GetItem(r.Context(), sku)
		if err != nil {
			logger.Warn("Product lookup failed", slog.String("sku", sku), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, item)
	}
}
