package quotations

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/exportracker/quotation-backend/internal/pricing"
	"github.com/exportracker/quotation-backend/pkg/db/models"
	"github.com/exportracker/quotation-backend/pkg/enums"
	pkgerrors "github.com/exportracker/quotation-backend/pkg/errors"
	"github.com/exportracker/quotation-backend/pkg/logger"
	"github.com/exportracker/quotation-backend/pkg/metrics"
	"github.com/exportracker/quotation-backend/pkg/outbox"
	"github.com/exportracker/quotation-backend/pkg/outbox/payloads"
	"github.com/exportracker/quotation-backend/pkg/pagination"
)

type quotationsRepository interface {
	Create(tx *gorm.DB, q *models.Quotation) error
	FindByIDForOwner(ctx context.Context, id, userID uuid.UUID) (*models.Quotation, error)
	List(ctx context.Context, userID uuid.UUID, params ListParams) ([]models.Quotation, error)
	ListForOwner(ctx context.Context, userID uuid.UUID, limit int) ([]models.Quotation, error)
	UpdateStatusForOwner(tx *gorm.DB, id, userID uuid.UUID, columns map[string]any) error
}

type companiesLister interface {
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Company, error)
}

type destinationsLister interface {
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Destination, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// ServiceParams groups the quotation service dependencies. Outbox and
// Metrics are optional.
type ServiceParams struct {
	Repo          quotationsRepository
	Companies     companiesLister
	Destinations  destinationsLister
	Tx            txRunner
	Outbox        outboxEmitter
	Metrics       *metrics.QuotationMetrics
	Logger        *logger.Logger
	Now           func() time.Time
	ExportMaxRows int
}

// Service prices, stores and moves quotations through their lifecycle.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateQuotationInput) (QuotationDTO, error)
	Preview(ctx context.Context, userID uuid.UUID, input CreateQuotationInput) (PreviewDTO, error)
	List(ctx context.Context, userID uuid.UUID, query ListQuery) (QuotationListDTO, error)
	Get(ctx context.Context, userID, quotationID uuid.UUID) (QuotationDTO, error)
	Transition(ctx context.Context, userID, quotationID uuid.UUID, status string) (QuotationDTO, error)
	TotalByCompany(ctx context.Context, userID uuid.UUID, query string) (CompanyTotalDTO, error)
	Export(ctx context.Context, userID uuid.UUID, w io.Writer) error
}

type service struct {
	repo          quotationsRepository
	companies     companiesLister
	destinations  destinationsLister
	tx            txRunner
	outbox        outboxEmitter
	metrics       *metrics.QuotationMetrics
	logg          *logger.Logger
	now           func() time.Time
	exportMaxRows int
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("quotations repository required")
	}
	if params.Companies == nil {
		return nil, fmt.Errorf("companies repository required")
	}
	if params.Destinations == nil {
		return nil, fmt.Errorf("destinations repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:          params.Repo,
		companies:     params.Companies,
		destinations:  params.Destinations,
		tx:            params.Tx,
		outbox:        params.Outbox,
		metrics:       params.Metrics,
		logg:          params.Logger,
		now:           now,
		exportMaxRows: params.ExportMaxRows,
	}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateQuotationInput) (QuotationDTO, error) {
	result, err := s.build(ctx, userID, input)
	if err != nil {
		return QuotationDTO{}, err
	}

	q := result.Quotation
	q.ID = uuid.New()
	now := s.now().UTC()
	q.CreatedAt = now
	q.UpdatedAt = now

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.Create(tx, q); err != nil {
			return err
		}
		return s.emit(ctx, tx, enums.EventQuotationCreated, q.ID, userID, payloads.QuotationCreatedEvent{
			QuotationID:      q.ID,
			UserID:           userID,
			CompanyID:        q.CompanyID,
			CompanyName:      q.CompanyName,
			Destination:      q.Destination,
			ChargeableWeight: q.ChargeableWeight,
			TotalCost:        q.TotalCost,
			Status:           q.Status,
		})
	})
	if err != nil {
		return QuotationDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create quotation")
	}

	s.metrics.ObserveCreated(q.ChargeableWeight)
	logCtx := s.logg.WithFields(s.logg.WithQuotationID(ctx, q.ID.String()), map[string]any{
		"company":           q.CompanyName,
		"destination":       q.Destination,
		"chargeable_weight": q.ChargeableWeight,
		"total_cost":        q.TotalCost,
	})
	s.logg.Info(logCtx, "quotation created")

	dto := toDTO(*q)
	dto.Breakdown = &result.Breakdown
	return dto, nil
}

func (s *service) Preview(ctx context.Context, userID uuid.UUID, input CreateQuotationInput) (PreviewDTO, error) {
	result, err := s.build(ctx, userID, input)
	if err != nil {
		return PreviewDTO{}, err
	}
	q := result.Quotation
	return PreviewDTO{
		CompanyName: q.CompanyName,
		Destination: q.Destination,
		Pallets:     q.Pallets,
		Breakdown:   result.Breakdown,
		Display:     displayAmounts(*q),
	}, nil
}

func (s *service) build(ctx context.Context, userID uuid.UUID, input CreateQuotationInput) (*pricing.BuildResult, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user id is required")
	}
	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required").
			WithDetails(map[string]any{"field": "customer_name"})
	}

	companies, err := s.companies.ListByOwner(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list companies")
	}
	destinations, err := s.destinations.ListByOwner(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list destinations")
	}

	return pricing.Build(pricing.BuildRequest{
		UserID:                  userID,
		CompanyQuery:            input.CompanyName,
		DestinationQuery:        input.Destination,
		Companies:               companies,
		Destinations:            destinations,
		Pallets:                 input.Pallets,
		AdditionalCharges:       input.AdditionalCharges,
		ClearanceCost:           input.ClearanceCost,
		CustomerName:            input.CustomerName,
		ContactPerson:           input.ContactPerson,
		ContractNo:              input.ContractNo,
		Notes:                   input.Notes,
		DeliveryServiceRequired: input.DeliveryServiceRequired,
		DeliveryVehicleType:     input.DeliveryVehicleType,
	})
}

func (s *service) List(ctx context.Context, userID uuid.UUID, query ListQuery) (QuotationListDTO, error) {
	if userID == uuid.Nil {
		return QuotationListDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user id is required")
	}

	params := ListParams{Limit: query.Limit}
	if raw := strings.TrimSpace(query.Status); raw != "" {
		status, err := pricing.ParseStatus(raw)
		if err != nil {
			return QuotationListDTO{}, err
		}
		params.Status = &status
	}
	cursor, err := pagination.ParseCursor(query.Cursor)
	if err != nil {
		return QuotationListDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	params.Cursor = cursor

	rows, err := s.repo.List(ctx, userID, params)
	if err != nil {
		return QuotationListDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quotations")
	}
	page, next := pagination.Trim(rows, query.Limit, cursorOf)

	out := QuotationListDTO{Quotations: make([]QuotationSummaryDTO, 0, len(page)), NextCursor: next}
	for _, row := range page {
		out.Quotations = append(out.Quotations, toSummary(row))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, userID, quotationID uuid.UUID) (QuotationDTO, error) {
	q, err := s.repo.FindByIDForOwner(ctx, quotationID, userID)
	if err != nil {
		return QuotationDTO{}, s.lookupError(err, quotationID)
	}
	return toDTO(*q), nil
}

// Transition moves the caller's quotation to status. A quotation that does
// not exist and one owned by someone else are reported the same way.
func (s *service) Transition(ctx context.Context, userID, quotationID uuid.UUID, status string) (QuotationDTO, error) {
	patch, err := pricing.PlanTransition(status, s.now())
	if err != nil {
		return QuotationDTO{}, err
	}
	if userID == uuid.Nil {
		return QuotationDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user id is required")
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.UpdateStatusForOwner(tx, quotationID, userID, patch.Columns()); err != nil {
			return err
		}
		return s.emit(ctx, tx, enums.EventQuotationStatusChanged, quotationID, userID, payloads.QuotationStatusChangedEvent{
			QuotationID: quotationID,
			UserID:      userID,
			Status:      patch.Status,
			CompletedAt: patch.CompletedAt,
		})
	})
	if err != nil {
		return QuotationDTO{}, s.lookupError(err, quotationID)
	}

	s.metrics.IncTransition(patch.Status.String())
	logCtx := s.logg.WithField(s.logg.WithQuotationID(ctx, quotationID.String()), "status", patch.Status.String())
	s.logg.Info(logCtx, "quotation status updated")

	return s.Get(ctx, userID, quotationID)
}

func (s *service) TotalByCompany(ctx context.Context, userID uuid.UUID, query string) (CompanyTotalDTO, error) {
	if userID == uuid.Nil {
		return CompanyTotalDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user id is required")
	}
	rows, err := s.repo.ListForOwner(ctx, userID, 0)
	if err != nil {
		return CompanyTotalDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quotations")
	}
	total, err := pricing.TotalByCompany(rows, query)
	if err != nil {
		return CompanyTotalDTO{}, err
	}
	return CompanyTotalDTO{
		CompanyTotal: total,
		Currency:     Currency,
		TotalDisplay: money(total.TotalAmount).StringFixed(2),
	}, nil
}

func (s *service) Export(ctx context.Context, userID uuid.UUID, w io.Writer) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user id is required")
	}
	rows, err := s.repo.ListForOwner(ctx, userID, s.exportMaxRows)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quotations")
	}
	if err := WriteWorkbook(w, rows); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render export")
	}
	return nil
}

func (s *service) emit(ctx context.Context, tx *gorm.DB, eventType enums.OutboxEventType, quotationID, userID uuid.UUID, data any) error {
	if s.outbox == nil {
		return nil
	}
	return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
		EventType:     eventType,
		AggregateType: enums.AggregateQuotation,
		AggregateID:   quotationID,
		Actor:         &outbox.ActorRef{UserID: userID},
		Data:          data,
		Version:       1,
		OccurredAt:    s.now().UTC(),
	})
}

func (s *service) lookupError(err error, quotationID uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFoundOrForbidden, err, fmt.Sprintf("quotation %s not found", quotationID))
	}
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quotation")
}
