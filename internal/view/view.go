// Package view renders the storefront HTML pages.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"storefront/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Page names accepted by Renderer.
const (
	PageIndex    = "index"
	PageRegister = "register"
	PageLogin    = "login"
	PageCatalog  = "catalog"
	PageProduct  = "product"
	PageCart     = "cart"
	PageProfile  = "profile"
)

// Banner carries the flash messages shown at the top of a page.
type Banner struct {
	Success string
	Error   string
}

// Layout is the data every page shares.
type Layout struct {
	Title    string
	UserName string
	Banner   Banner
}

// IndexData is the home page.
type IndexData struct {
	Layout
	Products []model.Product
}

// FormData is the registration and login pages.
type FormData struct {
	Layout
}

// CatalogData is the catalog page.
type CatalogData struct {
	Layout
	Products         []model.CatalogEntry
	Categories       []model.Category
	SelectedCategory uint
}

// ProductData is the product detail page.
type ProductData struct {
	Layout
	Product       model.Product
	OtherProducts []model.Product
}

// CartData is the cart page.
type CartData struct {
	Layout
	Cart model.Cart
}

// ProfileData is the profile page.
type ProfileData struct {
	Layout
	User model.User
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	pages map[string]*template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

// New parses every page together with the shared layout.
func New() (*Renderer, error) {
	return newRenderer(templateFS)
}

func newRenderer(fsys fs.FS) (*Renderer, error) {
	funcs := template.FuncMap{
		"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{PageIndex, PageRegister, PageLogin, PageCatalog, PageProduct, PageCart, PageProfile} {
		tmpl, err := template.New(path.Base(layoutFile)).Funcs(funcs).
			ParseFS(fsys, layoutFile, "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

// Render executes the named page.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}
