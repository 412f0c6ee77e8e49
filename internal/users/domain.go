// Package users implements the user administration screen.
package users

// Tab keys of the user screen.
const (
	TabUsers = "Users"
	TabRoles = "Roles"
)

// AllEmployees is the audience that addresses every active user.
const AllEmployees = "All Employees"

// User is a console operator.
type User struct {
	ID         int64  `yaml:"-" json:"id"`
	Name       string `yaml:"name" json:"name" form:"name" validate:"required"`
	Email      string `yaml:"email" json:"email" form:"email" validate:"required,email"`
	Role       string `yaml:"role" json:"role" form:"role" validate:"required"`
	Department string `yaml:"department" json:"department" form:"department"`
	Active     bool   `yaml:"active" json:"active" form:"active"`
}

// Role groups permissions under a name.
type Role struct {
	ID          int64  `yaml:"-" json:"id"`
	Name        string `yaml:"name" json:"name" form:"name" validate:"required"`
	Description string `yaml:"description" json:"description" form:"description"`
	Members     int    `yaml:"members" json:"members" form:"-"`
}

type fixture struct {
	Users []User `yaml:"users"`
	Roles []Role `yaml:"roles"`
}
