package db

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// Migrate applies every pending goose migration found in dir.
func Migrate(db *sqlx.DB, dir string) error {
	goose.SetLogger(migrationLogger())
	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.Up(db.DB, dir); err != nil {
		return fmt.Errorf("apply migrations from %s: %w", dir, err)
	}
	return nil
}

// migrationLogger routes goose output through the global zap logger.
func migrationLogger() *log.Logger {
	return zap.NewStdLog(zap.L().Named("migrate"))
}
