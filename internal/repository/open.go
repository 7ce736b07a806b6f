package repository

import (
	"fmt"

	"go-pos-ledger/pkg/config"
	"go-pos-ledger/pkg/database"

	"gorm.io/gorm/logger"
)

// Stores is the catalog and ledger pair selected by STORE_DRIVER.
type Stores struct {
	Catalog CatalogStore
	Ledger  LedgerStore
	close   func() error
}

func (s *Stores) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open builds the stores for cfg. SQL drivers are connected and migrated.
func Open(cfg config.AppConfig) (*Stores, error) {
	if cfg.StoreDriver == config.DriverXLSX {
		return &Stores{
			Catalog: NewXLSXCatalogStore(cfg.CatalogPath, cfg.Location),
			Ledger:  NewXLSXLedgerStore(cfg.LedgerPath, cfg.Location),
		}, nil
	}

	logLevel := logger.Warn
	if cfg.LogLevel == "debug" {
		logLevel = logger.Info
	}
	db, err := database.Connect(cfg.StoreDriver, cfg.DSN(), logLevel)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	return &Stores{
		Catalog: NewGormCatalogStore(db),
		Ledger:  NewGormLedgerStore(db),
		close:   sqlDB.Close,
	}, nil
}
