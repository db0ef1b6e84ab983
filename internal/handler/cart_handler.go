package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/service"
	"storefront/internal/view"
)

// CartHandler handles the shopping cart pages.
type CartHandler struct {
	cartService service.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// QuantityForm is the posted quantity of a cart line.
type QuantityForm struct {
	Quantity string `form:"quantity"`
}

// Show renders the cart. Anonymous visitors get an empty cart.
func (h *CartHandler) Show(c echo.Context) error {
	cart := model.NewCart(nil)
	if user, ok := currentUser(c); ok {
		var err error
		if cart, err = h.cartService.Get(c.Request().Context(), user.ID); err != nil {
			return internalError(c, err, "load cart")
		}
	}
	return c.Render(http.StatusOK, view.PageCart, view.CartData{
		Layout: layout(c, "Carrito"),
		Cart:   cart,
	})
}

// Add puts a product in the cart or increments its quantity.
func (h *CartHandler) Add(c echo.Context) error {
	return h.mutate(c, "add to cart", func(userID, productID uint, quantity int) error {
		return h.cartService.Add(c.Request().Context(), userID, productID, quantity)
	})
}

// Update overwrites the quantity of a cart line.
func (h *CartHandler) Update(c echo.Context) error {
	return h.mutate(c, "update cart", func(userID, productID uint, quantity int) error {
		return h.cartService.Update(c.Request().Context(), userID, productID, quantity)
	})
}

// Remove deletes a cart line.
func (h *CartHandler) Remove(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return redirectToLogin(c)
	}
	productID, ok := paramID(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/cart")
	}
	if err := h.cartService.Remove(c.Request().Context(), user.ID, productID); err != nil {
		logError(c, err, "remove from cart")
		return redirectWithError(c, "/cart", msgCartFailed)
	}
	return c.Redirect(http.StatusFound, "/cart")
}

// mutate runs the shared add/update flow: authentication gate, id and quantity
// parsing, banner on failure and redirect to the cart.
func (h *CartHandler) mutate(c echo.Context, op string, apply func(userID, productID uint, quantity int) error) error {
	user, ok := currentUser(c)
	if !ok {
		return redirectToLogin(c)
	}
	productID, ok := paramID(c)
	if !ok {
		return redirectWithError(c, "/cart", msgCartMissingProduct)
	}

	var form QuantityForm
	if err := c.Bind(&form); err != nil {
		return redirectWithError(c, "/cart", msgCartInvalidQuantity)
	}
	quantity, err := service.ParseQuantity(form.Quantity)
	if err != nil {
		return redirectWithError(c, "/cart", msgCartInvalidQuantity)
	}

	err = apply(user.ID, productID, quantity)
	switch {
	case errors.Is(err, apperrors.ErrInvalidQuantity):
		return redirectWithError(c, "/cart", msgCartInvalidQuantity)
	case errors.Is(err, apperrors.ErrProductNotFound):
		return redirectWithError(c, "/cart", msgCartMissingProduct)
	case err != nil:
		logError(c, err, op)
		return redirectWithError(c, "/cart", msgCartFailed)
	}
	return c.Redirect(http.StatusFound, "/cart")
}
