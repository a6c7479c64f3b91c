package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestHasTable(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer sqlDB.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("users").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("users"))
	mock.ExpectQuery("information_schema\\.tables").WithArgs("orders").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	ctx := context.Background()
	if !HasTable(ctx, sqlDB, "users") {
		t.Fatalf("users table should exist")
	}
	if HasTable(ctx, sqlDB, "orders") {
		t.Fatalf("orders table should be absent")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOptionalColumn(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer sqlDB.Close()

	mock.ExpectQuery("information_schema\\.columns").WithArgs("users", "phone").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("phone"))
	mock.ExpectQuery("information_schema\\.columns").WithArgs("users", "website").
		WillReturnError(errors.New("boom"))

	ctx := context.Background()
	if got := OptionalColumn(ctx, sqlDB, "users", "phone", "''"); got != "COALESCE(phone,'')" {
		t.Fatalf("phone select: %q", got)
	}
	if got := OptionalColumn(ctx, sqlDB, "users", "website", "''"); got != "''" {
		t.Fatalf("website select: %q", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
