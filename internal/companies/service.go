package companies

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/exportracker/quotation-backend/internal/pricing"
	dbpkg "github.com/exportracker/quotation-backend/pkg/db"
	"github.com/exportracker/quotation-backend/pkg/db/models"
	pkgerrors "github.com/exportracker/quotation-backend/pkg/errors"
)

type companiesRepository interface {
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Company, error)
	Create(ctx context.Context, company *models.Company) error
}

// Service exposes the caller's company list and company resolution.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]CompanyDTO, error)
	Create(ctx context.Context, userID uuid.UUID, input CreateCompanyInput) (CompanyDTO, error)
	Resolve(ctx context.Context, userID uuid.UUID, query string) (CompanyDTO, error)
}

type service struct {
	repo companiesRepository
}

// NewService builds a companies service.
func NewService(repo companiesRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("companies repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]CompanyDTO, error) {
	rows, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]CompanyDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDTO(row))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateCompanyInput) (CompanyDTO, error) {
	if userID == uuid.Nil {
		return CompanyDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user id is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return CompanyDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "company name is required")
	}

	company := &models.Company{UserID: userID, Name: name}
	if err := s.repo.Create(ctx, company); err != nil {
		if dbpkg.IsUniqueViolation(err, "") {
			return CompanyDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, fmt.Sprintf("company %q already exists", name))
		}
		return CompanyDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create company")
	}
	return toDTO(*company), nil
}

// Resolve returns the first of the caller's companies whose name contains query.
func (s *service) Resolve(ctx context.Context, userID uuid.UUID, query string) (CompanyDTO, error) {
	rows, err := s.load(ctx, userID)
	if err != nil {
		return CompanyDTO{}, err
	}
	match, err := pricing.ResolveCompany(rows, query)
	if err != nil {
		return CompanyDTO{}, err
	}
	return toDTO(match), nil
}

func (s *service) load(ctx context.Context, userID uuid.UUID) ([]models.Company, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user id is required")
	}
	rows, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list companies")
	}
	return rows, nil
}
