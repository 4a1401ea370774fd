package db

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pedidos/internal/config"
	"pedidos/internal/models"
)

// ConnectAndMigrate opens the store selected by the DSN (sqlite file path or
// postgres DSN) and brings the schema up to date. With MIGRATIONS=1 the SQL
// files under ./migrations run via golang-migrate; otherwise AutoMigrate
// keeps the dev loop convenient.
func ConnectAndMigrate(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN is empty, check the environment configuration")
	}
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel), TranslateError: true}

	var dial gorm.Dialector
	if IsPostgresDSN(dsn) {
		dial = postgres.Open(NormalizePostgresDSN(dsn))
	} else {
		dial = sqlite.Open(NormalizeSQLiteDSN(dsn))
	}

	var db *gorm.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(dial, cfg)
		if err == nil {
			break
		}
		logrus.WithError(err).Warn("retrying DB connection")
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}

	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	if config.ParseBool("MIGRATIONS", false) {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		modelsToMigrate := []interface{}{
			&models.Client{}, &models.Product{}, &models.Order{}, &models.OrderItem{},
		}
		for _, m := range modelsToMigrate {
			if migErr := db.AutoMigrate(m); migErr != nil {
				return nil, fmt.Errorf("automigrate %T: %w", m, migErr)
			}
		}
	}

	// sanity check: ensure required core tables exist
	for _, table := range []string{"clients", "products", "orders", "order_items"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}

	// Seeding only when explicitly requested (e.g. development) via DB_SEED=1|true
	if config.ParseBool("DB_SEED", false) {
		seed(db)
	}
	return db, nil
}

func seed(db *gorm.DB) {
	demoProducts := []models.Product{
		{Name: "Notebook 14\"", UnitPrice: 3499.90, Stock: 12},
		{Name: "Mouse sem fio", UnitPrice: 89.90, Stock: 40},
		{Name: "Teclado mecânico", UnitPrice: 349.00, Stock: 25},
	}
	for _, p := range demoProducts {
		var existing models.Product
		if err := db.Where("name = ?", p.Name).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&p).Error; err != nil {
				logrus.WithError(err).WithField("product", p.Name).Warn("seed product failed")
			}
		}
	}
	logrus.Info("seed data ensured")
}
