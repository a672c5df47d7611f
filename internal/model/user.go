package model

import "time"

// Role distinguishes the four kinds of accounts.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
	RoleFarmer   Role = "farmer"
	RoleVet      Role = "vet"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCustomer, RoleFarmer, RoleVet:
		return true
	}
	return false
}

// User is a registered account of any role. Farmers additionally carry a
// token ledger, see Farmer.
type User struct {
	ID           string    `json:"id"`
	Role         Role      `json:"role"`
	Login        string    `json:"login"`
	PasswordHash []byte    `json:"-"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Admin, Customer and Vet have no state beyond the account itself.
type (
	Admin    = User
	Customer = User
	Vet      = User
)
