package handler

import "strings"

type signupRequest struct {
	Username  string `json:"username"  validate:"required,min=3"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6"`
	Role      string `json:"role"      validate:"required,oneof=SUPER_ADMIN COMPANY_USER CUSTOMER"`
	CompanyID string `json:"companyId"`
}

func (r *signupRequest) normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	r.Password = strings.TrimSpace(r.Password)
	r.CompanyID = strings.TrimSpace(r.CompanyID)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *loginRequest) normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Password = strings.TrimSpace(r.Password)
}

type loginUserResponse struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

type loginResponse struct {
	Token string            `json:"token"`
	User  loginUserResponse `json:"user"`
}
