// Package seed loads the sample catalog into an empty store.
package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storefront/internal/model"
	"storefront/internal/repository"
)

// Result counts the rows inserted by Run.
type Result struct {
	Categories int
	Products   int
	Users      int
	CartItems  int
	Skipped    bool
}

type sampleUser struct {
	model.User
	password string
}

type sampleCartItem struct {
	userID, productID uint
	quantity          int
}

var categories = []model.Category{
	{ID: 1, Name: "camisa"},
	{ID: 2, Name: "pantalon"},
	{ID: 3, Name: "chaqueta"},
	{ID: 4, Name: "sueter"},
	{ID: 5, Name: "zapatos"},
}

var products = []model.Product{
	{ID: 1, Name: "Camisa de Algodón", Description: "Camisa de algodón ligera y cómoda", Price: decimal.RequireFromString("20.00"),
		Image: "https://redkap.mx/img/productos/CAMISA-SC30-KHAKI-FRENTE.jpg", CategoryID: 1},
	{ID: 2, Name: "Pantalones Jeans", Description: "Pantalones jeans de corte moderno.", Price: decimal.RequireFromString("30.00"),
		Image: "https://def-live.cdn.aboutyou.cloud/images/12662f28d2b6e7e06608ebbb6ada48b5.jpg?quality=75&height=832&width=596", CategoryID: 2},
	{ID: 3, Name: "Chaqueta de Cuero", Description: "Chaqueta de cuero auténtico.", Price: decimal.RequireFromString("60.00"),
		Image: "https://cdn.antonymorato.com.filoblu.com/rx/ofmt_webp/media/catalog/product/m/m/mmlc00082-fa200005-9000_01.jpg", CategoryID: 3},
	{ID: 4, Name: "Suéter Negro de Punto Suelto para Mujer", Description: "Suéter negro Estético y casual para mujer con hermoso cuello redondo y entramado", Price: decimal.RequireFromString("20.00"),
		Image: "https://i.pinimg.com/736x/c5/c3/dd/c5c3dd76f1d6175f26c63499c249bcd1.jpg", CategoryID: 4},
	{ID: 5, Name: "Suéter casual de moda para hombres Negro", Description: "El suéter está hecho de nuestra exclusiva tela ligera y es adecuado para la versión profesional.\r\nMúltiples colores y tamaños\r\nAdecuado para otoño, invierno y verano, se puede combinar con abrigo.\r\nComodidad única.", Price: decimal.RequireFromString("35.00"),
		Image: "https://imagedelivery.net/4fYuQyy-r8_rpBpcY7lH_A/falabellaPE/123989260_01/w=1500,h=1500,fit=pad", CategoryID: 4},
	// Shoes belong in "zapatos".
	{ID: 6, Name: "Zapatos para Mujer Louis Vuitton", Description: "Hermosos zapatos casuales y versatiles.", Price: decimal.RequireFromString("200.00"),
		Image: "https://zshopp.com/wp-content/uploads/2021/03/b1.jpg", CategoryID: 5},
}

var users = []sampleUser{
	{User: model.User{ID: 1, FirstName: "yondayler", LastName: "flores", Handle: "yondi", Email: "yondi1@gmail.com"}, password: "12345"},
	{User: model.User{ID: 2, FirstName: "prueba", LastName: "prb", Handle: "prb", Email: "prb@gmail.com"}, password: "1234"},
	{User: model.User{ID: 3, FirstName: "prb", LastName: "prb", Handle: "prr", Email: "prrrr@gmail.com"}, password: "1234"},
	{User: model.User{ID: 4, FirstName: "adawdawda", LastName: "2ee22e2", Handle: "abc", Email: "dwada@gmail.com"}, password: "1234"},
	{User: model.User{ID: 5, FirstName: "dayerlin", LastName: "rincon", Handle: "dayerlin", Email: "dgdadzafd@gmail.com"}, password: "1234"},
}

var cartItems = []sampleCartItem{
	{userID: 1, productID: 1, quantity: 3},
	{userID: 1, productID: 5, quantity: 1},
	{userID: 5, productID: 1, quantity: 1},
	{userID: 1, productID: 7, quantity: 6},
	{userID: 1, productID: 3, quantity: 1},
}

// Run inserts the sample data in one transaction. A store that already holds any
// category, product or user is left untouched.
func Run(ctx context.Context, db *gorm.DB) (Result, error) {
	var res Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []interface{}{&model.Category{}, &model.Product{}, &model.User{}} {
			var count int64
			if err := tx.Model(table).Count(&count).Error; err != nil {
				return fmt.Errorf("count existing rows: %w", err)
			}
			if count > 0 {
				res.Skipped = true
				return nil
			}
		}

		categoryRepo := repository.NewCategoryRepository(tx)
		productRepo := repository.NewProductRepository(tx)
		userRepo := repository.NewUserRepository(tx)
		cartRepo := repository.NewCartRepository(tx)

		for _, c := range categories {
			c := c
			if err := categoryRepo.Create(ctx, &c); err != nil {
				return err
			}
			res.Categories++
		}

		known := make(map[uint]bool, len(products))
		for _, p := range products {
			p := p
			if err := productRepo.Create(ctx, &p); err != nil {
				return err
			}
			known[p.ID] = true
			res.Products++
		}

		for _, u := range users {
			hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			user := u.User
			user.PasswordHash = string(hashed)
			if err := userRepo.Create(ctx, &user); err != nil {
				return err
			}
			res.Users++
		}

		for _, item := range cartItems {
			if !known[item.productID] {
				log.Warn().Uint("product_id", item.productID).Msg("skipping cart row for unknown product")
				continue
			}
			if err := cartRepo.Add(ctx, item.userID, item.productID, item.quantity); err != nil {
				return err
			}
			res.CartItems++
		}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("seed: %w", err)
	}
	return res, nil
}
