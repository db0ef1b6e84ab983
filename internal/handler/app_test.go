package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storefront/internal/auth"
	"storefront/internal/db"
	"storefront/internal/db/dbtest"
	"storefront/internal/handler"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"
	"storefront/internal/session"
	"storefront/internal/view"
)

type testApp struct {
	e  *echo.Echo
	db *gorm.DB
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newGatedTestApp(t, nil, nil)
}

// newGatedTestApp registers each handle in registered with password "secret"
// and then closes the catalog to the handles in listed.
func newGatedTestApp(t *testing.T, registered, listed []string) *testApp {
	t.Helper()

	gdb := dbtest.New(t)
	ctx := context.Background()

	userRepo := repository.NewUserRepository(gdb)
	authService := service.NewAuthService(userRepo)
	for _, handle := range registered {
		_, err := authService.Register(ctx, service.RegisterInput{
			FirstName: handle,
			LastName:  "Liddell",
			Email:     handle + "@example.com",
			Handle:    handle,
			Password:  "secret",
		})
		require.NoError(t, err)
	}

	var admins handler.Admins
	if listed != nil {
		ids, _, err := service.ResolveAdmins(ctx, userRepo, listed)
		require.NoError(t, err)
		admins = handler.NewAdmins(ids)
	}

	productRepo := repository.NewProductRepository(gdb)
	categoryRepo := repository.NewCategoryRepository(gdb)
	cartRepo := repository.NewCartRepository(gdb)

	catalogService := service.NewCatalogService(productRepo, categoryRepo)
	cartService := service.NewCartService(cartRepo, productRepo)

	renderer, err := view.New()
	require.NoError(t, err)

	sessions := session.NewManager(session.NewMemoryStore(), auth.NewJWTService("test-secret", time.Hour),
		session.ManagerConfig{TTL: time.Hour})

	e := echo.New()
	e.Renderer = renderer
	router.Register(e, router.Handlers{
		Home:    handler.NewHomeHandler(catalogService),
		Auth:    handler.NewAuthHandler(authService),
		Catalog: handler.NewCatalogHandler(catalogService, admins),
		Cart:    handler.NewCartHandler(cartService),
		Profile: handler.NewProfileHandler(service.NewProfileService(userRepo)),
		Health:  handler.NewHealthHandler(map[string]handler.Pinger{"database": db.NewExecutor(gdb)}),
		API:     handler.NewAPIHandler(catalogService, cartService),
	}, sessions.Middleware()...)

	return &testApp{e: e, db: gdb}
}

// seedCatalog inserts two categories and three products, the second category empty.
func (a *testApp) seedCatalog(t *testing.T) {
	t.Helper()
	require.NoError(t, a.db.Create(&[]model.Category{{ID: 1, Name: "camisa"}, {ID: 2, Name: "zapatos"}}).Error)
	require.NoError(t, a.db.Create(&[]model.Product{
		{ID: 1, Name: "Camisa de Algodón", Description: "ligera", Price: decimal.RequireFromString("20.00"), Image: "c.jpg", CategoryID: 1},
		{ID: 2, Name: "Camisa Azul", Description: "azul", Price: decimal.RequireFromString("25.00"), Image: "a.jpg", CategoryID: 1},
		{ID: 3, Name: "Camisa Roja", Description: "roja", Price: decimal.RequireFromString("30.00"), Image: "r.jpg", CategoryID: 1},
	}).Error)
}

func (a *testApp) cartItems(t *testing.T, userID uint) []model.CartItem {
	t.Helper()
	var items []model.CartItem
	require.NoError(t, a.db.Where("usuario_id = ?", userID).Order("product_id").Find(&items).Error)
	return items
}

func (a *testApp) userByHandle(t *testing.T, handle string) *model.User {
	t.Helper()
	user, found, err := repository.NewUserRepository(a.db).FindByHandle(context.Background(), handle)
	require.NoError(t, err)
	if !found {
		return nil
	}
	return user
}

// browser keeps the session cookie between requests.
type browser struct {
	app    *testApp
	cookie *http.Cookie
}

func (a *testApp) browser() *browser {
	return &browser{app: a}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	rec := httptest.NewRecorder()
	b.app.e.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name != session.CookieName {
			continue
		}
		if c.MaxAge < 0 {
			b.cookie = nil
		} else {
			b.cookie = &http.Cookie{Name: c.Name, Value: c.Value}
		}
	}
	return rec
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return b.do(req)
}

func (b *browser) register(handle, email, password string) *httptest.ResponseRecorder {
	return b.post("/register", url.Values{
		"firstName": {strings.ToUpper(handle[:1]) + handle[1:]},
		"lastName":  {"Liddell"},
		"correo":    {email},
		"username":  {handle},
		"password":  {password},
	})
}

func (b *browser) login(handle, password string) *httptest.ResponseRecorder {
	return b.post("/login", url.Values{"usuario": {handle}, "contrasena": {password}})
}
