package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/freightline/shipment-tracker/internal/core/domain"
	"github.com/freightline/shipment-tracker/internal/core/ports"
)

// CompanyService implements company management.
type CompanyService struct {
	companies ports.CompanyRepository
	log       zerolog.Logger
}

func NewCompanyService(companies ports.CompanyRepository, log zerolog.Logger) *CompanyService {
	return &CompanyService{companies: companies, log: log}
}

func (s *CompanyService) Create(ctx context.Context, name, createdByID string) (*domain.Company, error) {
	now := time.Now().UTC()
	company := &domain.Company{
		Name:        name,
		CreatedByID: createdByID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.companies.Insert(ctx, company)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("company", created.Name).Str("created_by", createdByID).Msg("company created")
	return created, nil
}

func (s *CompanyService) Get(ctx context.Context, id string) (*domain.Company, error) {
	return s.companies.FindByID(ctx, id)
}

func (s *CompanyService) List(ctx context.Context, page, limit int) (*ports.ListCompaniesResult, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}

	items, total, err := s.companies.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	return &ports.ListCompaniesResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}
