package database

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/taskmanager/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// pure Go sqlite driver registered as "sqlite"
	_ "modernc.org/sqlite"
)

var (
	db          *gorm.DB
	err         error
	client_once sync.Once
)

// InitDB opens the configured database once for the process and runs migrations.
func InitDB(dbc config.Database) error {
	client_once.Do(func() {
		db, err = Open(dbc)
		if err != nil {
			slog.Error("failed to initialize database", "driver", dbc.Driver, "error", err)
			return
		}
		slog.Info("database connection established successfully", "driver", dbc.Driver)

		if err = AutoMigrate(db); err != nil {
			slog.Error("migration failed", "error", err)
			return
		}
		slog.Info("database migrations completed successfully")
	})
	return err
}

// Open connects to the database described by dbc and pings it.
func Open(dbc config.Database) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch dbc.Driver {
	case "", "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbc.Host, dbc.Port, dbc.User, dbc.Pass, dbc.Name)
		dialector = postgres.New(
			postgres.Config{
				DSN:                  dsn,
				PreferSimpleProtocol: true,
			},
		)
	case "sqlite":
		dialector = sqlite.Dialector{DriverName: "sqlite", DSN: dbc.Path}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", dbc.Driver)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: false,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying database connection: %w", err)
	}
	if dbc.Driver == "sqlite" {
		// sqlite serializes writers; one connection keeps :memory: databases shared
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return conn, nil
}

func DBClient() *gorm.DB {
	if db == nil {
		panic("database is not initialized. Call InitDB first.")
	}
	return db
}

// Close releases the process-wide connection pool opened by InitDB.
func Close() error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
