package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/propdock/propdock-backend/pkg/db/models"
	"github.com/propdock/propdock-backend/pkg/logger"
)

const (
	quotationStaleDays = 7
	quotationScanBatch = 500
)

// QuotationStaleJobParams configures the stale quotation request scan.
type QuotationStaleJobParams struct {
	Logger     *logger.Logger
	Repository quotationStaleRepo
	StaleDays  int
}

type quotationStaleRepo interface {
	ListStalePending(ctx context.Context, cutoff time.Time, limit int) ([]models.QuotationRequest, error)
}

// NewQuotationStaleJob constructs the stale quotation request cron job.
func NewQuotationStaleJob(params QuotationStaleJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("quotations repository required")
	}
	staleDays := params.StaleDays
	if staleDays <= 0 {
		staleDays = quotationStaleDays
	}
	return &quotationStaleJob{
		logg:      params.Logger,
		repo:      params.Repository,
		staleDays: staleDays,
		now:       time.Now,
	}, nil
}

type quotationStaleJob struct {
	logg      *logger.Logger
	repo      quotationStaleRepo
	staleDays int
	now       func() time.Time
}

func (j *quotationStaleJob) Name() string { return "quotation-stale" }

func (j *quotationStaleJob) Run(ctx context.Context) error {
	now := j.now().UTC()
	cutoff := now.Add(-time.Duration(j.staleDays) * 24 * time.Hour)
	requests, err := j.repo.ListStalePending(ctx, cutoff, quotationScanBatch)
	if err != nil {
		return fmt.Errorf("query stale quotation requests: %w", err)
	}
	for _, request := range requests {
		logCtx := j.logg.WithFields(ctx, map[string]any{
			"request_id":      request.ID,
			"organization_id": request.OrganizationID,
			"assigned":        request.AssignedAdminID != nil,
			"age_days":        int(now.Sub(request.CreatedAt).Hours() / 24),
		})
		j.logg.Warn(logCtx, "quotation request still pending")
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":      cutoff,
		"stale_count": len(requests),
		"stale_days":  j.staleDays,
	})
	j.logg.Info(logCtx, "quotation stale scan complete")
	return nil
}
