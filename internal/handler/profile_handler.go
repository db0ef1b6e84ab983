package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "storefront/internal/errors"
	"storefront/internal/service"
	"storefront/internal/session"
	"storefront/internal/view"
)

// ProfileHandler handles the signed-in user's profile.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// ProfileForm is the posted profile form. A blank password keeps the current one.
type ProfileForm struct {
	Handle   string `form:"username" validate:"required,max=50"`
	Email    string `form:"email" validate:"required,email,max=255"`
	Password string `form:"password" validate:"maxbytes=72"`
}

// Show renders the profile of the signed-in user.
func (h *ProfileHandler) Show(c echo.Context) error {
	current, ok := currentUser(c)
	if !ok {
		return redirectToLogin(c)
	}

	user, err := h.profileService.Get(c.Request().Context(), current.ID)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return notFound(c)
	}
	if err != nil {
		return internalError(c, err, "load profile")
	}
	return c.Render(http.StatusOK, view.PageProfile, view.ProfileData{
		Layout: layout(c, "Perfil"),
		User:   *user,
	})
}

// Update changes handle, email and optionally the password.
func (h *ProfileHandler) Update(c echo.Context) error {
	current, ok := currentUser(c)
	if !ok {
		return redirectToLogin(c)
	}

	var form ProfileForm
	if err := bindForm(c, &form); err != nil {
		return redirectWithError(c, "/profile", msgProfileInvalid)
	}

	user, err := h.profileService.Update(c.Request().Context(), current.ID, service.ProfileInput{
		Handle:   form.Handle,
		Email:    form.Email,
		Password: form.Password,
	})
	switch {
	case errors.Is(err, apperrors.ErrHandleTaken):
		return redirectWithError(c, "/profile", msgHandleTaken)
	case errors.Is(err, apperrors.ErrEmailTaken):
		return redirectWithError(c, "/profile", msgEmailTaken)
	case errors.Is(err, apperrors.ErrPasswordTooLong):
		return redirectWithError(c, "/profile", msgPasswordTooLong)
	case err != nil:
		logError(c, err, "update profile")
		return redirectWithError(c, "/profile", msgProfileFailed)
	}

	session.FromContext(c).RefreshUser(session.User{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Handle:    user.Handle,
	})
	return redirectWithSuccess(c, "/profile", msgProfileOK)
}
