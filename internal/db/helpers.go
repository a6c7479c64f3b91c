package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"log"
)

// QueryRower is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// HasTable reports whether table exists in the current schema. Lookup errors
// read as "absent" so callers can fall back without failing the request.
func HasTable(ctx context.Context, q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if err != nil {
		logBadConn("HasTable", err)
		return false
	}
	return name.Valid && name.String != ""
}

// HasColumn reports whether table.column exists in the current schema.
func HasColumn(ctx context.Context, q QueryRower, table, column string) bool {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		  AND column_name = ?
		LIMIT 1
	`, table, column).Scan(&name)
	if err != nil {
		logBadConn("HasColumn", err)
		return false
	}
	return name.Valid && name.String != ""
}

// OptionalColumn returns a COALESCE select of column when it exists and the
// literal fallback otherwise, so one query shape serves older schemas.
func OptionalColumn(ctx context.Context, q QueryRower, table, column, fallback string) string {
	if HasColumn(ctx, q, table, column) {
		return "COALESCE(" + column + "," + fallback + ")"
	}
	return fallback
}

func logBadConn(tag string, err error) {
	if errors.Is(err, driver.ErrBadConn) {
		log.Println(tag, "driver.ErrBadConn")
	}
}
