package postgres

import (
	"fmt"

	"transferflow/internal/adapters/out/postgres/locationrepo"
	"transferflow/internal/adapters/out/postgres/transferrepo"
	"transferflow/internal/core/ports"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectionConfig holds the database coordinates.
type ConnectionConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func (c ConnectionConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, sslMode)
}

// Open connects to postgres and migrates the schema.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err = Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&transferrepo.TransferDTO{},
		&transferrepo.LineItemDTO{},
		&transferrepo.NumberSequenceDTO{},
		&locationrepo.LocationDTO{},
		&locationrepo.InventoryDTO{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// NewTransferReader reads transfers outside any unit of work. The write side
// of the repository is not reachable through it, so no tracker is needed.
func NewTransferReader(db *gorm.DB) ports.TransferReader {
	return transferrepo.NewGormTransferRepository(db, nil)
}
