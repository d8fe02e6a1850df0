package model

import "fmt"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleBanker   Role = "banker"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleBanker:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

type User struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role"`
}

// Session is the persisted sign-in state: the bearer credential and the
// user it was issued to.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
