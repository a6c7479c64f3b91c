package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intconfig "dashboard/internal/config"
	intdb "dashboard/internal/db"
	"dashboard/internal/domain/models"
)

const usersTable = "users"

// MySQLSource reads the users table. Only id and name are required; the other
// columns are selected when the schema has them.
type MySQLSource struct {
	DB *sql.DB
}

func (s MySQLSource) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s MySQLSource) Name() string { return "mysql" }

func (s MySQLSource) List(ctx context.Context) ([]models.User, error) {
	db := s.db()
	if db == nil {
		return nil, errors.New("database not connected")
	}
	if !intdb.HasTable(ctx, db, usersTable) {
		return nil, fmt.Errorf("table %s not found", usersTable)
	}

	usernameSel := intdb.OptionalColumn(ctx, db, usersTable, "username", "''")
	emailSel := intdb.OptionalColumn(ctx, db, usersTable, "email", "''")
	phoneSel := intdb.OptionalColumn(ctx, db, usersTable, "phone", "''")
	websiteSel := intdb.OptionalColumn(ctx, db, usersTable, "website", "''")
	companySel := intdb.OptionalColumn(ctx, db, usersTable, "company_name", "''")
	citySel := intdb.OptionalColumn(ctx, db, usersTable, "city", "''")

	rows, err := db.QueryContext(ctx, `
		SELECT id,
			   COALESCE(name,''),
			   `+usernameSel+`,
			   `+emailSel+`,
			   `+phoneSel+`,
			   `+websiteSel+`,
			   `+companySel+`,
			   `+citySel+`
		FROM `+usersTable+`
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var (
			u       models.User
			company string
			city    string
		)
		if err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.Website, &company, &city); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		if company != "" {
			u.Company = &models.Company{Name: company}
		}
		if city != "" {
			u.Address = &models.Address{City: city}
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}
