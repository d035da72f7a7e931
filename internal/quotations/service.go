package quotations

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/propdock/propdock-backend/pkg/db/models"
	"github.com/propdock/propdock-backend/pkg/enums"
	pkgerrors "github.com/propdock/propdock-backend/pkg/errors"
	"github.com/propdock/propdock-backend/pkg/logger"
	"github.com/propdock/propdock-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams groups dependencies for the quotations service.
type ServiceParams struct {
	Repo   Repository
	Tx     txRunner
	Logger *logger.Logger
}

// Service drives custom-pricing requests through their lifecycle:
// pending -> quoted -> accepted/rejected/cancelled. Every transition appends
// one activity entry in the same transaction as the state change.
type Service struct {
	repo Repository
	tx   txRunner
	logg *logger.Logger
}

// NewService builds a quotations service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.Tx == nil {
		return nil, errors.New("tx runner is required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Service{repo: params.Repo, tx: params.Tx, logg: params.Logger}, nil
}

// canTransition encodes the status machine. Terminal states accept nothing.
func canTransition(from, to enums.QuotationStatus) bool {
	switch from {
	case enums.QuotationStatusPending:
		return to == enums.QuotationStatusCancelled
	case enums.QuotationStatusQuoted:
		return to == enums.QuotationStatusAccepted ||
			to == enums.QuotationStatusRejected ||
			to == enums.QuotationStatusCancelled
	default:
		return false
	}
}

func (s *Service) requireRequest(ctx context.Context, id uuid.UUID) (*models.QuotationRequest, error) {
	request, err := s.repo.FindRequest(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up quotation request")
	}
	if request == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quotation request not found")
	}
	return request, nil
}

// CreateRequestParams opens a custom-pricing request for an organization.
type CreateRequestParams struct {
	OrganizationID       uuid.UUID
	RequestedInspections int
	BillingPeriod        enums.BillingPeriod
	CurrencyCode         string
}

func (s *Service) CreateRequest(ctx context.Context, params CreateRequestParams) (*models.QuotationRequest, error) {
	if params.RequestedInspections <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "requested inspections must be positive")
	}
	if !params.BillingPeriod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid billing period")
	}
	code := strings.ToUpper(strings.TrimSpace(params.CurrencyCode))
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "currency code is required")
	}
	org, err := s.repo.FindOrganization(ctx, params.OrganizationID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up organization")
	}
	if org == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "organization not found")
	}

	request := &models.QuotationRequest{
		OrganizationID:       params.OrganizationID,
		Status:               enums.QuotationStatusPending,
		RequestedInspections: params.RequestedInspections,
		BillingPeriod:        params.BillingPeriod,
		CurrencyCode:         code,
	}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating quotation request")
	}
	return request, nil
}

// Assign records the admin working a pending request. The status does not
// change.
func (s *Service) Assign(ctx context.Context, requestID, adminID uuid.UUID) (*models.QuotationRequest, error) {
	request, err := s.requireRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != enums.QuotationStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only pending requests can be assigned").
			WithDetails(map[string]any{"status": request.Status})
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		request.AssignedAdminID = &adminID
		if err := repo.UpdateRequest(ctx, request); err != nil {
			return err
		}
		return repo.AppendActivity(ctx, &models.QuotationActivity{
			RequestID: request.ID,
			Type:      enums.QuotationActivityAssigned,
			ActorID:   &adminID,
		})
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "assigning quotation request")
	}
	return request, nil
}

// MarkContacted logs that the customer was reached on a pending request.
func (s *Service) MarkContacted(ctx context.Context, requestID, adminID uuid.UUID, note string) (*models.QuotationRequest, error) {
	request, err := s.requireRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != enums.QuotationStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only pending requests can be marked contacted").
			WithDetails(map[string]any{"status": request.Status})
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		request.Contacted = true
		if err := repo.UpdateRequest(ctx, request); err != nil {
			return err
		}
		return repo.AppendActivity(ctx, &models.QuotationActivity{
			RequestID: request.ID,
			Type:      enums.QuotationActivityContacted,
			ActorID:   &adminID,
			Note:      note,
		})
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marking quotation request contacted")
	}
	return request, nil
}

// CreateQuoteParams carries the admin-authored offer. InternalNotes are never
// shown to the customer; CustomerNotes are.
type CreateQuoteParams struct {
	RequestID       uuid.UUID
	ActorID         uuid.UUID
	PriceMinor      int64
	InspectionCount int
	BillingPeriod   enums.BillingPeriod
	InternalNotes   string
	CustomerNotes   string
}

// CreateQuote attaches an offer to a pending or already-quoted request and
// moves it to quoted. Re-quoting replaces the stored offer.
func (s *Service) CreateQuote(ctx context.Context, params CreateQuoteParams) (*models.Quotation, error) {
	if params.PriceMinor < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if params.InspectionCount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inspection count must be positive")
	}
	if !params.BillingPeriod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid billing period")
	}

	request, err := s.requireRequest(ctx, params.RequestID)
	if err != nil {
		return nil, err
	}
	if request.Status != enums.QuotationStatusPending && request.Status != enums.QuotationStatusQuoted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "request can no longer be quoted").
			WithDetails(map[string]any{"status": request.Status})
	}

	existing, err := s.repo.FindQuotationByRequest(ctx, params.RequestID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up quotation")
	}

	var quotation *models.Quotation
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if existing != nil {
			existing.PriceMinor = params.PriceMinor
			existing.InspectionCount = params.InspectionCount
			existing.BillingPeriod = params.BillingPeriod
			existing.InternalNotes = params.InternalNotes
			existing.CustomerNotes = params.CustomerNotes
			if err := repo.UpdateQuotation(ctx, existing); err != nil {
				return err
			}
			quotation = existing
		} else {
			quotation = &models.Quotation{
				RequestID:       params.RequestID,
				PriceMinor:      params.PriceMinor,
				InspectionCount: params.InspectionCount,
				BillingPeriod:   params.BillingPeriod,
				InternalNotes:   params.InternalNotes,
				CustomerNotes:   params.CustomerNotes,
			}
			if err := repo.CreateQuotation(ctx, quotation); err != nil {
				return err
			}
		}

		request.Status = enums.QuotationStatusQuoted
		if err := repo.UpdateRequest(ctx, request); err != nil {
			return err
		}
		actorID := params.ActorID
		return repo.AppendActivity(ctx, &models.QuotationActivity{
			RequestID: request.ID,
			Type:      enums.QuotationActivityQuoteCreated,
			ActorID:   &actorID,
		})
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving quote")
	}
	return quotation, nil
}

// UpdateStatusParams moves a request along the status machine.
type UpdateStatusParams struct {
	RequestID uuid.UUID
	ActorID   uuid.UUID
	Status    enums.QuotationStatus
	Note      string
}

func (s *Service) UpdateStatus(ctx context.Context, params UpdateStatusParams) (*models.QuotationRequest, error) {
	if !params.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid quotation status")
	}

	request, err := s.requireRequest(ctx, params.RequestID)
	if err != nil {
		return nil, err
	}
	if !canTransition(request.Status, params.Status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "status transition not allowed").
			WithDetails(map[string]any{"from": request.Status, "to": params.Status})
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		request.Status = params.Status
		if err := repo.UpdateRequest(ctx, request); err != nil {
			return err
		}
		actorID := params.ActorID
		return repo.AppendActivity(ctx, &models.QuotationActivity{
			RequestID: request.ID,
			Type:      enums.QuotationActivityStatusChanged,
			ActorID:   &actorID,
			Note:      params.Note,
		})
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating quotation status")
	}
	return request, nil
}

// RequestDetail joins a request with its organization, offer and full
// activity log.
type RequestDetail struct {
	Request      models.QuotationRequest    `json:"request"`
	Organization models.Organization        `json:"organization"`
	Quotation    *models.Quotation          `json:"quotation,omitempty"`
	Activities   []models.QuotationActivity `json:"activities"`
}

func (s *Service) Get(ctx context.Context, requestID uuid.UUID) (*RequestDetail, error) {
	request, err := s.requireRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	org, err := s.repo.FindOrganization(ctx, request.OrganizationID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up organization")
	}
	if org == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "quotation request has no organization")
	}
	quotation, err := s.repo.FindQuotationByRequest(ctx, requestID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up quotation")
	}
	activities, err := s.repo.ListActivities(ctx, requestID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing activities")
	}
	return &RequestDetail{
		Request:      *request,
		Organization: *org,
		Quotation:    quotation,
		Activities:   activities,
	}, nil
}

// ListRequestsParams filters the request list.
type ListRequestsParams struct {
	Status         *enums.QuotationStatus
	OrganizationID *uuid.UUID
	AssignedTo     *uuid.UUID
	Limit          int
	Cursor         string
}

// ListRequestsResult carries a page of requests plus the next cursor.
type ListRequestsResult struct {
	Requests   []models.QuotationRequest `json:"requests"`
	NextCursor string                    `json:"next_cursor,omitempty"`
}

func (s *Service) List(ctx context.Context, params ListRequestsParams) (*ListRequestsResult, error) {
	if params.Status != nil && !params.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid quotation status")
	}
	var cursor *pagination.Cursor
	if params.Cursor != "" {
		parsed, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		cursor = parsed
	}

	requests, next, err := s.repo.ListRequests(ctx, ListRequestsQuery{
		Status:         params.Status,
		OrganizationID: params.OrganizationID,
		AssignedTo:     params.AssignedTo,
		Limit:          params.Limit,
		Cursor:         cursor,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing quotation requests")
	}

	result := &ListRequestsResult{Requests: requests}
	if next != nil {
		result.NextCursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}
