package ports

import (
	"context"

	"github.com/freightline/shipment-tracker/internal/core/domain"
)

// CompanyRepository defines persistence operations for companies.
type CompanyRepository interface {
	Insert(ctx context.Context, c *domain.Company) (*domain.Company, error)
	FindByID(ctx context.Context, id string) (*domain.Company, error)
	List(ctx context.Context, page, limit int) ([]domain.Company, int64, error)
}
