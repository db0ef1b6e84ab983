package router

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"

	"storefront/internal/handler"
)

// Handlers groups every route handler.
type Handlers struct {
	Home    *handler.HomeHandler
	Auth    *handler.AuthHandler
	Catalog *handler.CatalogHandler
	Cart    *handler.CartHandler
	Profile *handler.ProfileHandler
	Health  *handler.HealthHandler
	API     *handler.APIHandler
}

// Register wires routes and middleware. sessionMiddleware loads the visitor's
// session before any page handler runs.
func Register(e *echo.Echo, h Handlers, sessionMiddleware ...echo.MiddlewareFunc) {
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil || v.Status >= 500 {
				event = log.WithLevel(zerolog.ErrorLevel).Err(v.Error)
			}
			event.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = NewValidator()

	e.GET("/healthz", h.Health.Healthz)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	pages := e.Group("", sessionMiddleware...)

	pages.GET("/", h.Home.Home)

	pages.GET("/register", h.Auth.ShowRegister)
	pages.POST("/register", h.Auth.Register)
	pages.GET("/login", h.Auth.ShowLogin)
	pages.POST("/login", h.Auth.Login)
	pages.GET("/logout", h.Auth.Logout)

	pages.GET("/catalog", h.Catalog.Catalog)
	pages.GET("/product/:id", h.Catalog.Product)

	admin := pages.Group("/catalog", h.Catalog.RequireAdmin)
	admin.POST("/add-product", h.Catalog.AddProduct)
	admin.POST("/remove-product/:id", h.Catalog.RemoveProduct)
	admin.POST("/add-category", h.Catalog.AddCategory)
	admin.POST("/remove-category/:id", h.Catalog.RemoveCategory)

	pages.GET("/cart", h.Cart.Show)
	pages.POST("/cart/add/:id", h.Cart.Add)
	pages.POST("/cart/update/:id", h.Cart.Update)
	pages.POST("/cart/remove/:id", h.Cart.Remove)

	pages.GET("/profile", h.Profile.Show)
	pages.POST("/profile", h.Profile.Update)
	pages.POST("/update-profile", h.Profile.Update)

	api := pages.Group("/api")
	api.GET("/products", h.API.ListProducts)
	api.GET("/products/:id", h.API.GetProduct)
	api.GET("/categories", h.API.ListCategories)
	api.GET("/cart", h.API.GetCart)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns the validator used for posted forms. Besides the
// built-in rules it knows maxbytes, which bounds the UTF-8 length of a string.
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("maxbytes", maxBytes)
	return &CustomValidator{validator: v}
}

func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
