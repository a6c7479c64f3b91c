package models

// Address is the postal address nested in a user record.
type Address struct {
	Street  string `json:"street"`
	Suite   string `json:"suite"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
}

// Company is optional; remote records may omit it or send null.
type Company struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase,omitempty"`
	BS          string `json:"bs,omitempty"`
}

// User is one row of the dashboard users table.
type User struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Website  string   `json:"website,omitempty"`
	Address  *Address `json:"address,omitempty"`
	Company  *Company `json:"company,omitempty"`
}

// CompanyName returns the nested company name, or "" when the user has none.
func (u User) CompanyName() string {
	if u.Company == nil {
		return ""
	}
	return u.Company.Name
}
