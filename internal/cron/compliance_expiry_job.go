package cron

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/propdock/propdock-backend/internal/compliance"
	"github.com/propdock/propdock-backend/pkg/db/models"
	"github.com/propdock/propdock-backend/pkg/enums"
	"github.com/propdock/propdock-backend/pkg/logger"
)

const (
	complianceNoticeDays  = 30
	complianceScanBatch   = 500
	complianceLookbackDay = 24 * time.Hour
)

// ComplianceExpiryJobParams configures the compliance expiry scan.
type ComplianceExpiryJobParams struct {
	Logger     *logger.Logger
	Repository complianceExpiryRepo
	NoticeDays int
}

type complianceExpiryRepo interface {
	ListExpiringWithin(ctx context.Context, from, to time.Time, limit int) ([]models.ComplianceDocument, error)
}

// NewComplianceExpiryJob constructs the compliance expiry cron job.
func NewComplianceExpiryJob(params ComplianceExpiryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("compliance repository required")
	}
	noticeDays := params.NoticeDays
	if noticeDays <= 0 {
		noticeDays = complianceNoticeDays
	}
	return &complianceExpiryJob{
		logg:       params.Logger,
		repo:       params.Repository,
		noticeDays: noticeDays,
		now:        time.Now,
	}, nil
}

type complianceExpiryJob struct {
	logg       *logger.Logger
	repo       complianceExpiryRepo
	noticeDays int
	now        func() time.Time
}

func (j *complianceExpiryJob) Name() string { return "compliance-expiry" }

func (j *complianceExpiryJob) Run(ctx context.Context) error {
	var errs []error
	if err := j.flagExpired(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := j.flagExpiring(ctx); err != nil {
		errs = append(errs, err)
	}
	return multierr.Combine(errs...)
}

// flagExpired surfaces documents that lapsed in the last day so the log
// trail catches each lapse exactly once per daily cycle.
func (j *complianceExpiryJob) flagExpired(ctx context.Context) error {
	now := j.now().UTC()
	docs, err := j.repo.ListExpiringWithin(ctx, now.Add(-complianceLookbackDay), now, complianceScanBatch)
	if err != nil {
		return fmt.Errorf("query expired documents: %w", err)
	}
	for _, doc := range docs {
		logCtx := j.logg.WithFields(ctx, map[string]any{
			"document_id": doc.ID,
			"property_id": doc.PropertyID,
			"category":    doc.Category,
			"expiry_date": doc.ExpiryDate,
			"status":      enums.ComplianceStatusExpired,
		})
		j.logg.Warn(logCtx, "compliance document expired")
	}
	logCtx := j.logg.WithField(ctx, "expired_count", len(docs))
	j.logg.Info(logCtx, "compliance expired scan complete")
	return nil
}

func (j *complianceExpiryJob) flagExpiring(ctx context.Context) error {
	now := j.now().UTC()
	window := time.Duration(j.noticeDays) * 24 * time.Hour
	docs, err := j.repo.ListExpiringWithin(ctx, now, now.Add(window), complianceScanBatch)
	if err != nil {
		return fmt.Errorf("query expiring documents: %w", err)
	}
	for _, doc := range docs {
		status := compliance.StatusAt(doc, now, window)
		logCtx := j.logg.WithFields(ctx, map[string]any{
			"document_id": doc.ID,
			"property_id": doc.PropertyID,
			"category":    doc.Category,
			"expiry_date": doc.ExpiryDate,
			"status":      status,
		})
		j.logg.Warn(logCtx, "compliance document expiring soon")
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"expiring_count": len(docs),
		"notice_days":    j.noticeDays,
	})
	j.logg.Info(logCtx, "compliance expiring scan complete")
	return nil
}
