package domain

import "time"

// Role is the closed set of actor roles. It is used everywhere a role appears:
// route declarations, token claims, and storage. Never compare raw strings.
type Role string

const (
	RoleSuperAdmin  Role = "SUPER_ADMIN"
	RoleCompanyUser Role = "COMPANY_USER"
	RoleCustomer    Role = "CUSTOMER"
)

// Roles lists every member of the closed role set.
var Roles = []Role{RoleSuperAdmin, RoleCompanyUser, RoleCustomer}

// ParseRole converts a raw string into a Role, reporting membership.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	for _, known := range Roles {
		if r == known {
			return r, true
		}
	}
	return "", false
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email,omitempty" bson:"email,omitempty"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         Role      `json:"role" bson:"role"`
	CompanyID    string    `json:"companyId,omitempty" bson:"company_id,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}

// Company groups users into one authorization scope. A shipment's ownership
// chain resolves shipment → creator → company.
type Company struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	CreatedByID string    `json:"createdById,omitempty" bson:"created_by_id,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}
