package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"

	"qa-forum/pkg/logger"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// MigrationsDir is the embedded directory holding the migrations for driver.
func MigrationsDir(driver string) string {
	if driver == DriverSQLite {
		return "migrations/sqlite"
	}
	return "migrations/postgres"
}

func gooseDialect(driver string) string {
	if driver == DriverSQLite {
		return "sqlite3"
	}
	return "postgres"
}

type gooseLogger struct {
	log *logger.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info("[migrate] "+format, v...)
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Error("[migrate] "+format, v...)
	os.Exit(1)
}

// SetupGoose points goose at the embedded migrations for driver.
func SetupGoose(driver string, log *logger.Logger) error {
	goose.SetBaseFS(migrations)
	if log != nil {
		goose.SetLogger(gooseLogger{log: log})
	} else {
		goose.SetLogger(goose.NopLogger())
	}
	if err := goose.SetDialect(gooseDialect(driver)); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return nil
}

// MigrateSQL applies all pending migrations on a plain *sql.DB.
func MigrateSQL(ctx context.Context, db *sql.DB, driver string, log *logger.Logger) error {
	if err := SetupGoose(driver, log); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, MigrationsDir(driver)); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Migrate applies all pending migrations on the connection behind db.
func Migrate(ctx context.Context, db *gorm.DB, driver string, log *logger.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return MigrateSQL(ctx, sqlDB, driver, log)
}
