package handler

import (
	"strings"

	"github.com/freightline/shipment-tracker/internal/core/domain"
)

type createCompanyRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

func (r *createCompanyRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

type listCompaniesResponse struct {
	Companies  []domain.Company `json:"companies"`
	Pagination paginationMeta   `json:"pagination"`
}
