package destinations

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/exportracker/quotation-backend/internal/pricing"
	"github.com/exportracker/quotation-backend/pkg/db/models"
	pkgerrors "github.com/exportracker/quotation-backend/pkg/errors"
)

type destinationsRepository interface {
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Destination, error)
	Create(ctx context.Context, destination *models.Destination) error
}

// Service exposes the caller's destinations and destination resolution.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]DestinationDTO, error)
	Create(ctx context.Context, userID uuid.UUID, input CreateDestinationInput) (DestinationDTO, error)
	Resolve(ctx context.Context, userID uuid.UUID, query string) (DestinationDTO, error)
}

type service struct {
	repo destinationsRepository
}

func NewService(repo destinationsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("destinations repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]DestinationDTO, error) {
	rows, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]DestinationDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDTO(row))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateDestinationInput) (DestinationDTO, error) {
	if userID == uuid.Nil {
		return DestinationDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user id is required")
	}
	country := strings.TrimSpace(input.Country)
	if country == "" {
		return DestinationDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "country is required")
	}

	dest := &models.Destination{UserID: userID, Country: country}
	if input.Port != nil {
		if port := strings.TrimSpace(*input.Port); port != "" {
			dest.Port = &port
		}
	}
	if err := s.repo.Create(ctx, dest); err != nil {
		return DestinationDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create destination")
	}
	return toDTO(*dest), nil
}

// Resolve matches query against countries, then ports.
func (s *service) Resolve(ctx context.Context, userID uuid.UUID, query string) (DestinationDTO, error) {
	rows, err := s.load(ctx, userID)
	if err != nil {
		return DestinationDTO{}, err
	}
	match, err := pricing.ResolveDestination(rows, query)
	if err != nil {
		return DestinationDTO{}, err
	}
	return toDTO(match), nil
}

func (s *service) load(ctx context.Context, userID uuid.UUID) ([]models.Destination, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user id is required")
	}
	rows, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list destinations")
	}
	return rows, nil
}
