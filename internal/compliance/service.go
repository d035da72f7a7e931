package compliance

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/propdock/propdock-backend/pkg/db/models"
	"github.com/propdock/propdock-backend/pkg/enums"
	pkgerrors "github.com/propdock/propdock-backend/pkg/errors"
)

// ServiceParams groups dependencies for the compliance service.
type ServiceParams struct {
	Repo Repository
	// NoticeWindow is how long before expiry a document counts as expiring.
	NoticeWindow time.Duration
}

// Service manages statutory compliance documents. Document status is derived
// from the expiry date on every read and never stored.
type Service struct {
	repo         Repository
	noticeWindow time.Duration
}

// NewService builds a compliance service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.NoticeWindow <= 0 {
		params.NoticeWindow = 30 * 24 * time.Hour
	}
	return &Service{repo: params.Repo, noticeWindow: params.NoticeWindow}, nil
}

// StatusAt derives a document's compliance status at the given instant.
func StatusAt(doc models.ComplianceDocument, now time.Time, noticeWindow time.Duration) enums.ComplianceStatus {
	if !doc.ExpiryDate.After(now) {
		return enums.ComplianceStatusExpired
	}
	if doc.ExpiryDate.Before(now.Add(noticeWindow)) {
		return enums.ComplianceStatusExpiring
	}
	return enums.ComplianceStatusValid
}

// DocumentView pairs a stored document with its derived status.
type DocumentView struct {
	models.ComplianceDocument
	Status enums.ComplianceStatus `json:"status"`
}

func (s *Service) view(doc models.ComplianceDocument, now time.Time) DocumentView {
	return DocumentView{
		ComplianceDocument: doc,
		Status:             StatusAt(doc, now, s.noticeWindow),
	}
}

// CreateParams records a new compliance document.
type CreateParams struct {
	OrganizationID uuid.UUID
	PropertyID     uuid.UUID
	Category       string
	Reference      string
	IssueDate      time.Time
	ExpiryDate     time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*DocumentView, error) {
	if strings.TrimSpace(params.Category) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "document category is required")
	}
	if params.IssueDate.IsZero() || params.ExpiryDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "issue and expiry dates are required")
	}
	if !params.ExpiryDate.After(params.IssueDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expiry date must be after issue date")
	}
	property, err := s.repo.FindProperty(ctx, params.PropertyID, params.OrganizationID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up property")
	}
	if property == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "property not found")
	}

	doc := &models.ComplianceDocument{
		PropertyID: params.PropertyID,
		Category:   strings.TrimSpace(params.Category),
		Reference:  strings.TrimSpace(params.Reference),
		IssueDate:  params.IssueDate,
		ExpiryDate: params.ExpiryDate,
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating compliance document")
	}
	view := s.view(*doc, time.Now())
	return &view, nil
}

// UpdateParams carries optional document updates, typically a renewal.
type UpdateParams struct {
	Reference  *string
	IssueDate  *time.Time
	ExpiryDate *time.Time
}

func (s *Service) Update(ctx context.Context, id, orgID uuid.UUID, params UpdateParams) (*DocumentView, error) {
	doc, err := s.repo.Find(ctx, id, orgID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up compliance document")
	}
	if doc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "compliance document not found")
	}

	if params.Reference != nil {
		doc.Reference = strings.TrimSpace(*params.Reference)
	}
	if params.IssueDate != nil {
		doc.IssueDate = *params.IssueDate
	}
	if params.ExpiryDate != nil {
		doc.ExpiryDate = *params.ExpiryDate
	}
	if !doc.ExpiryDate.After(doc.IssueDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expiry date must be after issue date")
	}

	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating compliance document")
	}
	view := s.view(*doc, time.Now())
	return &view, nil
}

func (s *Service) Delete(ctx context.Context, id, orgID uuid.UUID) error {
	doc, err := s.repo.Find(ctx, id, orgID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up compliance document")
	}
	if doc == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "compliance document not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting compliance document")
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id, orgID uuid.UUID) (*DocumentView, error) {
	doc, err := s.repo.Find(ctx, id, orgID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up compliance document")
	}
	if doc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "compliance document not found")
	}
	view := s.view(*doc, time.Now())
	return &view, nil
}

// ListByProperty returns every document for the property with derived
// statuses, optionally filtered to one status.
func (s *Service) ListByProperty(ctx context.Context, propertyID, orgID uuid.UUID, status *enums.ComplianceStatus) ([]DocumentView, error) {
	property, err := s.repo.FindProperty(ctx, propertyID, orgID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up property")
	}
	if property == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "property not found")
	}
	docs, err := s.repo.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing compliance documents")
	}

	now := time.Now()
	views := make([]DocumentView, 0, len(docs))
	for _, doc := range docs {
		view := s.view(doc, now)
		if status != nil && view.Status != *status {
			continue
		}
		views = append(views, view)
	}
	return views, nil
}
