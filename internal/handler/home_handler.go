package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/service"
	"storefront/internal/view"
)

// HomeHandler serves the landing page.
type HomeHandler struct {
	catalogService service.CatalogService
}

// NewHomeHandler creates a new home handler.
func NewHomeHandler(catalogService service.CatalogService) *HomeHandler {
	return &HomeHandler{catalogService: catalogService}
}

// Home renders every product with the pending banners.
func (h *HomeHandler) Home(c echo.Context) error {
	products, err := h.catalogService.ListProducts(c.Request().Context())
	if err != nil {
		return internalError(c, err, "load home products")
	}
	return c.Render(http.StatusOK, view.PageIndex, view.IndexData{
		Layout:   layout(c, "Inicio"),
		Products: products,
	})
}
