package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	apperrors "storefront/internal/errors"
	"storefront/internal/service"
	"storefront/internal/session"
	"storefront/internal/view"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterForm is the posted registration form.
type RegisterForm struct {
	FirstName string `form:"firstName" validate:"required,max=100"`
	LastName  string `form:"lastName" validate:"required,max=100"`
	Email     string `form:"correo" validate:"required,email,max=255"`
	Handle    string `form:"username" validate:"required,max=50"`
	Password  string `form:"password" validate:"required,maxbytes=72"`
}

// LoginForm is the posted login form.
type LoginForm struct {
	Handle   string `form:"usuario" validate:"required"`
	Password string `form:"contrasena" validate:"required"`
}

// ShowRegister renders the registration form.
func (h *AuthHandler) ShowRegister(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageRegister, view.FormData{Layout: layout(c, "Registro")})
}

// Register creates the account and sends the visitor to the login page.
func (h *AuthHandler) Register(c echo.Context) error {
	var form RegisterForm
	if err := bindForm(c, &form); err != nil {
		return redirectWithError(c, "/register", msgRegisterInvalid)
	}

	user, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Handle:    form.Handle,
		Password:  form.Password,
	})
	switch {
	case errors.Is(err, apperrors.ErrHandleTaken):
		return redirectWithError(c, "/register", msgHandleTaken)
	case errors.Is(err, apperrors.ErrEmailTaken):
		return redirectWithError(c, "/register", msgEmailTaken)
	case errors.Is(err, apperrors.ErrPasswordTooLong):
		return redirectWithError(c, "/register", msgPasswordTooLong)
	case err != nil:
		logError(c, err, "register user")
		return redirectWithError(c, "/register", msgRegisterFailed)
	}

	log.Info().Uint("user_id", user.ID).Str("usuario", user.Handle).Msg("user registered")
	return redirectWithSuccess(c, "/login", msgRegisterOK)
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageLogin, view.FormData{Layout: layout(c, "Iniciar sesión")})
}

// Login signs the visitor in.
func (h *AuthHandler) Login(c echo.Context) error {
	var form LoginForm
	if err := bindForm(c, &form); err != nil {
		return redirectWithError(c, "/login", msgLoginBad)
	}

	user, err := h.authService.Login(c.Request().Context(), form.Handle, form.Password)
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return redirectWithError(c, "/login", msgLoginBad)
	case err != nil:
		logError(c, err, "login")
		return redirectWithError(c, "/login", msgLoginFailed)
	}

	sess := session.FromContext(c)
	sess.SetUser(session.User{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Handle:    user.Handle,
	})
	return redirectWithSuccess(c, "/", msgLoginOK)
}

// Logout ends the session.
func (h *AuthHandler) Logout(c echo.Context) error {
	session.FromContext(c).Destroy()
	return c.Redirect(http.StatusFound, "/")
}
