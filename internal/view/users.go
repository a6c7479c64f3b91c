package view

import "dashboard/internal/domain/models"

// Field keys of the users table.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldCompany = "company"
)

func userName(u models.User) string    { return u.Name }
func userEmail(u models.User) string   { return u.Email }
func userPhone(u models.User) string   { return u.Phone }
func userCompany(u models.User) string { return u.CompanyName() }

// Users is the schema of the dashboard users table. Sorting on "company"
// orders by the nested company name.
var Users = Schema[models.User]{
	Sortable: []Column[models.User]{
		{Key: FieldName, Text: userName},
		{Key: FieldEmail, Text: userEmail},
		{Key: FieldCompany, Text: userCompany},
	},
	Searchable: []Column[models.User]{
		{Key: FieldName, Text: userName},
		{Key: FieldEmail, Text: userEmail},
		{Key: FieldPhone, Text: userPhone},
		{Key: FieldCompany, Text: userCompany},
	},
}
