package enums

// UserRole is the role returned by login and persisted locally.
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}

// IsAdmin reports whether the role unlocks the admin console.
func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}
