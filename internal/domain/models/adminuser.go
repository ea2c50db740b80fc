// internal/domain/models/adminuser.go
package models

// AdminUser is the identity of a signed-in administrator. It never carries a
// password or hash.
type AdminUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Valid reports whether the record is complete enough to represent a session.
func (u AdminUser) Valid() bool {
	return u.ID != "" && u.Email != "" && u.Role.Valid()
}
