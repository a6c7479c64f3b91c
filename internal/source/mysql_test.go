package source

import (
	"context"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func expectUserColumns(mock sqlmock.Sqlmock, present map[string]bool) {
	for _, col := range []string{"username", "email", "phone", "website", "company_name", "city"} {
		rows := sqlmock.NewRows([]string{"column_name"})
		if present[col] {
			rows.AddRow(col)
		}
		mock.ExpectQuery("information_schema\\.columns").WithArgs("users", col).WillReturnRows(rows)
	}
}

func TestMySQLSourceList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("information_schema\\.tables").WithArgs("users").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("users"))
	expectUserColumns(mock, map[string]bool{"email": true, "phone": true, "company_name": true})
	mock.ExpectQuery("SELECT id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "username", "email", "phone", "website", "company_name", "city"}).
			AddRow(1, "Leanne Graham", "", "Sincere@april.biz", "1-770", "", "Romaguera-Crona", "").
			AddRow(2, "Ervin Howell", "", "Shanna@melissa.tv", "", "", "", ""))

	users, err := MySQLSource{DB: db}.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].CompanyName() != "Romaguera-Crona" || users[0].Address != nil {
		t.Fatalf("unexpected first user: %+v", users[0])
	}
	if users[1].Company != nil {
		t.Fatalf("empty company_name should leave Company nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMySQLSourceMissingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("users").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	_, err = MySQLSource{DB: db}.List(context.Background())
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected missing table error, got %v", err)
	}
}

func TestMySQLSourceNotConnected(t *testing.T) {
	if _, err := (MySQLSource{}).List(context.Background()); err == nil {
		t.Fatalf("expected error without a database")
	}
}
