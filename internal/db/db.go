package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
)

const sqliteBusyPragma = "_pragma=busy_timeout(5000)"

// Row is one result row keyed by column name.
type Row = map[string]interface{}

// Open returns a connected GORM DB instance for driver ("sqlite" or "mysql").
func Open(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "", "sqlite":
		return NewSQLite(dsn)
	case "mysql":
		return NewMySQL(dsn)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}

// NewSQLite opens the embedded store at path. All statements share one
// connection; concurrent writers queue on the busy timeout.
func NewSQLite(path string) (*gorm.DB, error) {
	dsn := path
	if !strings.Contains(dsn, "_pragma=busy_timeout") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + sqliteBusyPragma
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// NewMySQL returns a connected GORM DB instance.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

// Migrate creates missing tables, columns and indexes. With reset the tables
// are dropped first. Existing columns are never altered, so a store created
// with the legacy schema keeps its column types and constraints.
func Migrate(db *gorm.DB, reset bool) error {
	tables := []interface{}{
		&model.Category{},
		&model.Product{},
		&model.User{},
		&model.CartItem{},
	}

	if reset {
		for i := len(tables) - 1; i >= 0; i-- {
			if err := db.Migrator().DropTable(tables[i]); err != nil {
				return fmt.Errorf("drop table: %w", err)
			}
		}
	}

	for _, table := range tables {
		if err := ensureTable(db, table); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func ensureTable(db *gorm.DB, value interface{}) error {
	m := db.Migrator()
	if !m.HasTable(value) {
		return m.CreateTable(value)
	}

	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(value); err != nil {
		return fmt.Errorf("parse %T: %w", value, err)
	}
	table := stmt.Schema.Table

	for _, column := range stmt.Schema.DBNames {
		if m.HasColumn(value, column) {
			continue
		}
		if err := m.AddColumn(value, column); err != nil {
			return fmt.Errorf("add column %s.%s: %w", table, column, err)
		}
	}

	for _, idx := range stmt.Schema.ParseIndexes() {
		if m.HasIndex(value, idx.Name) {
			continue
		}
		if err := m.CreateIndex(value, idx.Name); err != nil {
			return fmt.Errorf("create index %s on %s: %w", idx.Name, table, err)
		}
	}
	return nil
}

// Executor runs raw parameterized statements against the shared handle.
type Executor struct {
	db *gorm.DB
}

// NewExecutor wraps db.
func NewExecutor(db *gorm.DB) *Executor {
	return &Executor{db: db}
}

// Execute runs sqlText with params bound positionally and returns every row.
// Values must never be interpolated into sqlText.
func (e *Executor) Execute(ctx context.Context, sqlText string, params ...interface{}) ([]Row, error) {
	var rows []Row
	if err := e.db.WithContext(ctx).Raw(sqlText, params...).Scan(&rows).Error; err != nil {
		return nil, apperrors.NewQueryError("execute", err)
	}
	return rows, nil
}

// Ping checks the store answers a trivial query.
func (e *Executor) Ping(ctx context.Context) error {
	if _, err := e.Execute(ctx, "SELECT 1"); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
