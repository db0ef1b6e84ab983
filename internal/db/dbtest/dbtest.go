// Package dbtest opens throwaway migrated stores for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"storefront/internal/db"
)

// legacyStore is the schema and sample data of a mi_tienda.db written by the
// previous version of the shop: clear-text passwords, a REAL price column,
// a product in a missing category and a cart row for a missing product.
var legacyStore = []string{
	`CREATE TABLE cart (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		usuario_id INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		cantidad INTEGER DEFAULT 1
	)`,
	`CREATE TABLE categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		price REAL NOT NULL,
		image TEXT NOT NULL,
		category_id INTEGER NOT NULL,
		FOREIGN KEY (category_id) REFERENCES categories (id)
	)`,
	`CREATE TABLE usuarios (
		id_usuario INTEGER PRIMARY KEY AUTOINCREMENT,
		nombre TEXT NOT NULL,
		apellido TEXT NOT NULL,
		contrasena TEXT NOT NULL,
		usuario TEXT NOT NULL,
		correo TEXT NOT NULL
	)`,
	`INSERT INTO cart (usuario_id, product_id, cantidad) VALUES
		(1, 1, 3), (1, 5, 1), (5, 1, 1), (1, 7, 6), (1, 3, 1)`,
	`INSERT INTO categories (name) VALUES
		('camisa'), ('pantalon'), ('chaqueta'), ('sueter'), ('zapatos')`,
	`INSERT INTO products (name, description, price, image, category_id) VALUES
		('Camisa de Algodón', 'Camisa de algodón ligera y cómoda', 20.00, 'camisa.jpg', 1),
		('Pantalones Jeans', 'Pantalones jeans de corte moderno.', 30.00, 'jeans.jpg', 2),
		('Chaqueta de Cuero', 'Chaqueta de cuero auténtico.', 60.00, 'chaqueta.jpg', 3),
		('Suéter Negro de Punto Suelto para Mujer', 'Suéter negro de punto suelto', 20.00, 'sueter-mujer.jpg', 4),
		('Suéter casual de moda para hombres Negro', 'Suéter de tela ligera', 35.00, 'sueter-hombre.jpg', 4),
		('Zapatos para Mujer Louis Vuitton', 'Hermosos zapatos casuales y versatiles.', 19.99, 'zapatos.jpg', 6)`,
	`INSERT INTO usuarios (nombre, apellido, contrasena, usuario, correo) VALUES
		('yondayler', 'flores', '12345', 'yondi', 'yondi1@gmail.com'),
		('prueba', 'prb', '1234', 'prb', 'prb@gmail.com'),
		('prb', 'prb', '1234', 'prr', 'prrrr@gmail.com'),
		('adawdawda', '2ee22e2', '1234', 'abc', 'dwada@gmail.com'),
		('dayerlin', 'rincon', '1234', 'dayerlin', 'dgdadzafd@gmail.com')`,
}

// New opens a migrated SQLite store in a temp dir that is removed with t.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	gdb := open(t)
	if err := db.Migrate(gdb, false); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return gdb
}

// NewLegacy opens a store holding the previous schema and sample rows, then
// migrates it the way the server does at startup.
func NewLegacy(t testing.TB) *gorm.DB {
	t.Helper()

	gdb := open(t)
	for _, stmt := range legacyStore {
		if err := gdb.Exec(stmt).Error; err != nil {
			t.Fatalf("build legacy db: %v", err)
		}
	}
	if err := db.Migrate(gdb, false); err != nil {
		t.Fatalf("migrate legacy db: %v", err)
	}
	return gdb
}

func open(t testing.TB) *gorm.DB {
	t.Helper()

	gdb, err := db.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}
