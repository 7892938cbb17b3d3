package handler

import (
	"strings"

	"github.com/freightline/shipment-tracker/internal/core/domain"
)

type createUserRequest struct {
	Username  string `json:"username"  validate:"required,min=3"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6"`
	Role      string `json:"role"      validate:"required,oneof=SUPER_ADMIN COMPANY_USER CUSTOMER"`
	CompanyID string `json:"companyId"`
}

func (r *createUserRequest) normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	r.Password = strings.TrimSpace(r.Password)
	r.CompanyID = strings.TrimSpace(r.CompanyID)
}

// updateUserRequest is the allow-listed patch: exactly the mutable fields,
// each optional. Unknown payload fields are dropped at bind time and can
// never reach storage.
type updateUserRequest struct {
	Username  *string `json:"username"  validate:"omitempty,min=3"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Password  *string `json:"password"  validate:"omitempty,min=6"`
	Role      *string `json:"role"      validate:"omitempty,oneof=SUPER_ADMIN COMPANY_USER CUSTOMER"`
	CompanyID *string `json:"companyId"`
}

func (r *updateUserRequest) normalize() {
	trimPtr(r.Username)
	trimPtr(r.Email)
	trimPtr(r.Password)
	trimPtr(r.CompanyID)
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

type listUsersResponse struct {
	Users      []domain.User  `json:"users"`
	Pagination paginationMeta `json:"pagination"`
}
