package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql
var sqliteMigrations embed.FS

// UpSQLite applies the embedded sqlite schema. It does not depend on the
// working directory, so repository tests and local sqlite runs can share it.
func UpSQLite(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	goose.SetBaseFS(sqliteMigrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(DialectSQLite); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "sqlite"); err != nil {
		return fmt.Errorf("goose up (sqlite): %w", err)
	}
	return nil
}
