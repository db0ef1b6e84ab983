package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/service"
)

// APIHandler serves the read-only JSON API.
type APIHandler struct {
	catalogService service.CatalogService
	cartService    service.CartService
}

// NewAPIHandler creates a new JSON API handler.
func NewAPIHandler(catalogService service.CatalogService, cartService service.CartService) *APIHandler {
	return &APIHandler{catalogService: catalogService, cartService: cartService}
}

// ListProducts godoc
// @Summary List products
// @Description Products with their category name, optionally filtered by category.
// @Tags catalog
// @Produce json
// @Param category query int false "Category ID"
// @Success 200 {array} model.CatalogEntry
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products [get]
func (h *APIHandler) ListProducts(c echo.Context) error {
	var filter *uint
	if raw := c.QueryParam("category"); raw != "" {
		id, ok := parseID(raw)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid category ID",
				Code:  "INVALID_ID",
			})
		}
		filter = &id
	}

	products, _, err := h.catalogService.Catalog(c.Request().Context(), filter)
	if err != nil {
		return apiError(c, err, "api list products")
	}
	if products == nil {
		products = []model.CatalogEntry{}
	}
	return c.JSON(http.StatusOK, products)
}

// GetProduct godoc
// @Summary Get a product
// @Tags catalog
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products/{id} [get]
func (h *APIHandler) GetProduct(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid product ID",
			Code:  "INVALID_ID",
		})
	}

	product, err := h.catalogService.GetProduct(c.Request().Context(), id)
	if err != nil {
		return apiError(c, err, "api get product")
	}
	return c.JSON(http.StatusOK, product)
}

// ListCategories godoc
// @Summary List categories
// @Tags catalog
// @Produce json
// @Success 200 {array} model.Category
// @Failure 500 {object} errors.ErrorResponse
// @Router /categories [get]
func (h *APIHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalogService.ListCategories(c.Request().Context())
	if err != nil {
		return apiError(c, err, "api list categories")
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return c.JSON(http.StatusOK, categories)
}

// GetCart godoc
// @Summary Get the session cart
// @Description Cart of the signed-in user; empty for anonymous visitors.
// @Tags cart
// @Produce json
// @Success 200 {object} model.Cart
// @Failure 500 {object} errors.ErrorResponse
// @Router /cart [get]
func (h *APIHandler) GetCart(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusOK, model.NewCart(nil))
	}

	cart, err := h.cartService.Get(c.Request().Context(), user.ID)
	if err != nil {
		return apiError(c, err, "api get cart")
	}
	return c.JSON(http.StatusOK, cart)
}

func apiError(c echo.Context, err error, msg string) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		logError(c, err, msg)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
