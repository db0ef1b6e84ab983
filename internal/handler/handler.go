// Package handler holds the HTTP handlers of the storefront.
package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"storefront/internal/session"
	"storefront/internal/view"
)

// layout builds the shared page data and consumes the pending banners.
func layout(c echo.Context, title string) view.Layout {
	sess := session.FromContext(c)
	f := sess.Flashes()
	return view.Layout{
		Title:    title,
		UserName: sess.UserName(),
		Banner:   view.Banner{Success: f.Success, Error: f.Error},
	}
}

func redirectWithSuccess(c echo.Context, to, msg string) error {
	session.FromContext(c).SetSuccess(msg)
	return c.Redirect(http.StatusFound, to)
}

func redirectWithError(c echo.Context, to, msg string) error {
	session.FromContext(c).SetError(msg)
	return c.Redirect(http.StatusFound, to)
}

// currentUser returns the user signed in when the request arrived.
func currentUser(c echo.Context) (*session.User, bool) {
	u := session.FromContext(c).User()
	return u, u != nil
}

func redirectToLogin(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/login")
}

func notFound(c echo.Context) error {
	return c.String(http.StatusNotFound, "not found")
}

func internalError(c echo.Context, err error, msg string) error {
	logError(c, err, msg)
	return c.String(http.StatusInternalServerError, "internal error")
}

func logError(c echo.Context, err error, msg string) {
	log.Error().
		Err(err).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Str("path", c.Path()).
		Msg(msg)
}

// paramID parses the :id path parameter.
func paramID(c echo.Context) (uint, bool) {
	return parseID(c.Param("id"))
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// bindForm binds and validates a posted form into dst.
func bindForm(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return err
	}
	return c.Validate(dst)
}
