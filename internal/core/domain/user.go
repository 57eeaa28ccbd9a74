package domain

const (
	RoleEmployee = "Employee"
	RoleManager  = "Manager"
	RoleAdmin    = "Admin"
)

// User is a staff account. ID is the canonical string form of the storage
// identifier; comparisons between users always go through it.
type User struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"`
	Roles        []string `json:"roles"`
	Active       bool     `json:"active"`
}

// HasAnyRole reports whether the user holds at least one of roles.
func (u *User) HasAnyRole(roles ...string) bool {
	for _, have := range u.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
