package ports

import (
	"context"

	"github.com/freightline/shipment-tracker/internal/core/domain"
)

// ListCompaniesResult is one page of companies with pagination metadata.
type ListCompaniesResult struct {
	Items      []domain.Company
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CompanyService manages companies.
type CompanyService interface {
	Create(ctx context.Context, name, createdByID string) (*domain.Company, error)
	Get(ctx context.Context, id string) (*domain.Company, error)
	List(ctx context.Context, page, limit int) (*ListCompaniesResult, error)
}
