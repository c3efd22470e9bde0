package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"

	"qa-forum/pkg/config"
	"qa-forum/pkg/database"
	"qa-forum/pkg/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	var (
		dir     = flag.String("dir", "pkg/database/migrations", "directory for new migration files (create only)")
		command = flag.String("command", "up", "migration command (up, down, status, version, create)")
		name    = flag.String("name", "", "name for new migration (used with create command)")
	)
	flag.Parse()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *command == "create" {
		if *name == "" {
			log.Fatal("Name is required for create command")
		}
		// New files go to disk, not the embedded set.
		goose.SetBaseFS(nil)
		target := fmt.Sprintf("%s/%s", *dir, cfg.DBDriver)
		if err := goose.Create(nil, target, *name, "sql"); err != nil {
			log.Fatalf("Failed to create migration: %v", err)
		}
		fmt.Printf("Created migration %s in %s\n", *name, target)
		return
	}

	db, closeDB, err := open(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer closeDB()

	if err := database.SetupGoose(cfg.DBDriver, logger.New()); err != nil {
		log.Fatalf("Failed to set up goose: %v", err)
	}
	migrationsDir := database.MigrationsDir(cfg.DBDriver)
	ctx := context.Background()

	// Execute command
	switch *command {
	case "up":
		if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		fmt.Println("Migrations applied successfully")
	case "down":
		if err := goose.DownContext(ctx, db, migrationsDir); err != nil {
			log.Fatalf("Failed to rollback migrations: %v", err)
		}
		fmt.Println("Migrations rolled back successfully")
	case "status":
		if err := goose.StatusContext(ctx, db, migrationsDir); err != nil {
			log.Fatalf("Failed to get migration status: %v", err)
		}
	case "version":
		if err := goose.VersionContext(ctx, db, migrationsDir); err != nil {
			log.Fatalf("Failed to get migration version: %v", err)
		}
	default:
		log.Fatalf("Unknown command: %s", *command)
	}
}

// open returns a plain connection for goose: pgx for PostgreSQL, the
// application's SQLite setup otherwise.
func open(cfg *config.Config) (*sql.DB, func(), error) {
	switch cfg.DBDriver {
	case database.DriverSQLite:
		gdb, err := database.NewSQLiteDB(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, nil, err
		}
		return sqlDB, func() { _ = sqlDB.Close() }, nil
	case database.DriverPostgres, "":
		sqlDB, err := sql.Open("pgx", database.PostgresDSN(cfg))
		if err != nil {
			return nil, nil, err
		}
		return sqlDB, func() { _ = sqlDB.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}
