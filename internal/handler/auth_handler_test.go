package handler_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterLoginLogout(t *testing.T) {
	app := newTestApp(t)
	b := app.browser()

	rec := b.register("alice", "alice@example.com", "secret")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	user := app.userByHandle(t, "alice")
	require.NotNil(t, user)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")))

	rec = b.get("/login")
	assert.Contains(t, rec.Body.String(), "Registro exitoso. Puedes iniciar sesión ahora.")

	rec = b.login("alice", "secret")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = b.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hola, Alice")
	assert.Contains(t, rec.Body.String(), "Inicio de sesión exitoso")

	rec = b.get("/")
	assert.NotContains(t, rec.Body.String(), "Inicio de sesión exitoso", "banner is shown once")

	rec = b.get("/logout")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = b.get("/")
	assert.NotContains(t, rec.Body.String(), "Hola, Alice")
}

func TestLogin_WrongPassword(t *testing.T) {
	app := newTestApp(t)
	b := app.browser()
	b.register("alice", "alice@example.com", "secret")

	rec := b.login("alice", "wrong")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = b.get("/login")
	assert.Contains(t, rec.Body.String(), "Nombre de usuario o contraseña incorrectos")

	rec = b.get("/profile")
	assert.Equal(t, http.StatusFound, rec.Code, "session stays unauthenticated")
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRegister_DuplicateHandleAndEmail(t *testing.T) {
	app := newTestApp(t)
	app.browser().register("alice", "alice@example.com", "secret")

	tests := []struct {
		name   string
		handle string
		email  string
		banner string
	}{
		{"duplicate handle", "alice", "other@example.com", "El nombre de usuario ya está en uso."},
		{"duplicate email", "alicia", "alice@example.com", "El correo electrónico ya está en uso."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := app.browser()

			rec := b.register(tt.handle, tt.email, "secret")
			require.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, "/register", rec.Header().Get("Location"))

			rec = b.get("/register")
			assert.Contains(t, rec.Body.String(), tt.banner)

			var count int64
			require.NoError(t, app.db.Table("usuarios").Count(&count).Error)
			assert.Equal(t, int64(1), count)
		})
	}
}

func TestRegister_InvalidForm(t *testing.T) {
	app := newTestApp(t)
	b := app.browser()

	rec := b.register("bob", "not-an-email", "secret")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/register", rec.Header().Get("Location"))
	assert.Nil(t, app.userByHandle(t, "bob"))
}

func TestProfile_Update(t *testing.T) {
	app := newTestApp(t)
	b := app.browser()
	b.register("alice", "alice@example.com", "secret")
	b.register("bob", "bob@example.com", "secret")
	b.login("alice", "secret")

	rec := b.get("/profile")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice@example.com")

	rec = b.post("/profile", map[string][]string{"username": {"bob"}, "email": {"alice@example.com"}})
	assert.Equal(t, "/profile", rec.Header().Get("Location"))
	assert.Contains(t, b.get("/profile").Body.String(), "El nombre de usuario ya está en uso.")

	rec = b.post("/update-profile", map[string][]string{
		"username": {"alice2"}, "email": {"alice2@example.com"}, "password": {""},
	})
	assert.Equal(t, "/profile", rec.Header().Get("Location"))
	assert.Contains(t, b.get("/profile").Body.String(), "Perfil actualizado exitosamente.")

	user := app.userByHandle(t, "alice2")
	require.NotNil(t, user)
	assert.Equal(t, "alice2@example.com", user.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")))

	b.get("/logout")
	rec = b.login("alice2", "secret")
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestProfile_RequiresLogin(t *testing.T) {
	app := newTestApp(t)

	rec := app.browser().get("/profile")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRegister_PasswordLimitCountsBytes(t *testing.T) {
	app := newTestApp(t)

	b := app.browser()
	rec := b.register("alice", "alice@example.com", strings.Repeat("ñ", 40))
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/register", rec.Header().Get("Location"))
	assert.Contains(t, b.get("/register").Body.String(), "Completa todos los campos con datos válidos.")
	assert.Nil(t, app.userByHandle(t, "alice"))

	password := strings.Repeat("ñ", 36)
	rec = b.register("alice", "alice@example.com", password)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = b.login("alice", password)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}
