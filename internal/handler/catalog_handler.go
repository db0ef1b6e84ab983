package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "storefront/internal/errors"
	"storefront/internal/service"
	"storefront/internal/session"
	"storefront/internal/view"
)

// Admins is the set of user ids allowed to change the catalog. A nil set
// leaves the catalog open to everyone; an empty one closes it.
type Admins map[uint]struct{}

// NewAdmins builds a closed gate that lets ids through.
func NewAdmins(ids []uint) Admins {
	set := make(Admins, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// CatalogHandler serves the catalog, product pages and catalog maintenance.
type CatalogHandler struct {
	catalogService service.CatalogService
	admins         Admins
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogService service.CatalogService, admins Admins) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, admins: admins}
}

// ProductForm is the posted add-product form.
type ProductForm struct {
	Name        string `form:"name" validate:"required,max=255"`
	Description string `form:"description" validate:"max=2000"`
	Price       string `form:"price" validate:"required"`
	Image       string `form:"image" validate:"max=2048"`
	CategoryID  string `form:"category_id" validate:"required"`
}

// CategoryForm is the posted add-category form.
type CategoryForm struct {
	Name string `form:"name" validate:"required,max=255"`
}

// RequireAdmin guards the catalog maintenance routes.
func (h *CatalogHandler) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.admins == nil {
			return next(c)
		}
		if u := session.FromContext(c).User(); u != nil {
			if _, ok := h.admins[u.ID]; ok {
				return next(c)
			}
		}
		return redirectWithError(c, "/catalog", msgCatalogForbidden)
	}
}

// Catalog renders the product list, filtered by ?category= when present.
func (h *CatalogHandler) Catalog(c echo.Context) error {
	var filter *uint
	var selected uint
	if raw := c.QueryParam("category"); raw != "" {
		// Unparseable ids filter on 0, which matches no product.
		id, _ := parseID(raw)
		filter, selected = &id, id
	}

	products, categories, err := h.catalogService.Catalog(c.Request().Context(), filter)
	if err != nil {
		return internalError(c, err, "load catalog")
	}
	return c.Render(http.StatusOK, view.PageCatalog, view.CatalogData{
		Layout:           layout(c, "Catálogo"),
		Products:         products,
		Categories:       categories,
		SelectedCategory: selected,
	})
}

// Product renders one product with the rest of the catalog.
func (h *CatalogHandler) Product(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return notFound(c)
	}

	product, others, err := h.catalogService.ProductPage(c.Request().Context(), id)
	if errors.Is(err, apperrors.ErrProductNotFound) {
		return notFound(c)
	}
	if err != nil {
		return internalError(c, err, "load product")
	}
	return c.Render(http.StatusOK, view.PageProduct, view.ProductData{
		Layout:        layout(c, product.Name),
		Product:       *product,
		OtherProducts: others,
	})
}

// AddProduct inserts a product.
func (h *CatalogHandler) AddProduct(c echo.Context) error {
	var form ProductForm
	if err := bindForm(c, &form); err != nil {
		return redirectWithError(c, "/catalog", msgProductInvalid)
	}
	categoryID, ok := parseID(strings.TrimSpace(form.CategoryID))
	if !ok {
		return redirectWithError(c, "/catalog", msgProductBadCategory)
	}

	_, err := h.catalogService.AddProduct(c.Request().Context(), service.ProductInput{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		Image:       form.Image,
		CategoryID:  categoryID,
	})
	switch {
	case errors.Is(err, apperrors.ErrInvalidPrice):
		return redirectWithError(c, "/catalog", msgProductBadPrice)
	case errors.Is(err, apperrors.ErrCategoryNotFound):
		return redirectWithError(c, "/catalog", msgProductBadCategory)
	case err != nil:
		logError(c, err, "add product")
		return redirectWithError(c, "/catalog", msgProductAddFailed)
	}
	return redirectWithSuccess(c, "/catalog", msgProductAdded)
}

// RemoveProduct deletes a product and its cart rows.
func (h *CatalogHandler) RemoveProduct(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return redirectWithError(c, "/catalog", msgProductRemoveFailed)
	}
	if err := h.catalogService.RemoveProduct(c.Request().Context(), id); err != nil {
		logError(c, err, "remove product")
		return redirectWithError(c, "/catalog", msgProductRemoveFailed)
	}
	return redirectWithSuccess(c, "/catalog", msgProductRemoved)
}

// AddCategory inserts a category.
func (h *CatalogHandler) AddCategory(c echo.Context) error {
	var form CategoryForm
	if err := bindForm(c, &form); err != nil {
		return redirectWithError(c, "/catalog", msgCategoryInvalid)
	}
	if _, err := h.catalogService.AddCategory(c.Request().Context(), form.Name); err != nil {
		logError(c, err, "add category")
		return redirectWithError(c, "/catalog", msgCategoryAddFailed)
	}
	return redirectWithSuccess(c, "/catalog", msgCategoryAdded)
}

// RemoveCategory deletes a category that no product uses.
func (h *CatalogHandler) RemoveCategory(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return redirectWithError(c, "/catalog", msgCategoryRemoveFailed)
	}

	err := h.catalogService.RemoveCategory(c.Request().Context(), id)
	switch {
	case errors.Is(err, apperrors.ErrCategoryInUse):
		return redirectWithError(c, "/catalog", msgCategoryInUse)
	case err != nil:
		logError(c, err, "remove category")
		return redirectWithError(c, "/catalog", msgCategoryRemoveFailed)
	}
	return redirectWithSuccess(c, "/catalog", msgCategoryRemoved)
}
