package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/propdock/propdock-backend/pkg/db/models"
	"github.com/propdock/propdock-backend/pkg/logger"
)

const (
	inspectionGraceHours = 24
	inspectionScanBatch  = 500
)

// InspectionOverdueJobParams configures the overdue inspection scan.
type InspectionOverdueJobParams struct {
	Logger     *logger.Logger
	Repository inspectionOverdueRepo
	GraceHours int
}

type inspectionOverdueRepo interface {
	ListOverdueScheduled(ctx context.Context, cutoff time.Time, limit int) ([]models.Inspection, error)
}

// NewInspectionOverdueJob constructs the overdue inspection cron job.
func NewInspectionOverdueJob(params InspectionOverdueJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("inspections repository required")
	}
	graceHours := params.GraceHours
	if graceHours <= 0 {
		graceHours = inspectionGraceHours
	}
	return &inspectionOverdueJob{
		logg:       params.Logger,
		repo:       params.Repository,
		graceHours: graceHours,
		now:        time.Now,
	}, nil
}

type inspectionOverdueJob struct {
	logg       *logger.Logger
	repo       inspectionOverdueRepo
	graceHours int
	now        func() time.Time
}

func (j *inspectionOverdueJob) Name() string { return "inspection-overdue" }

func (j *inspectionOverdueJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.graceHours) * time.Hour)
	inspections, err := j.repo.ListOverdueScheduled(ctx, cutoff, inspectionScanBatch)
	if err != nil {
		return fmt.Errorf("query overdue inspections: %w", err)
	}
	for _, inspection := range inspections {
		logCtx := j.logg.WithFields(ctx, map[string]any{
			"inspection_id": inspection.ID,
			"property_id":   inspection.PropertyID,
			"scheduled_for": inspection.ScheduledFor,
			"overdue_hours": j.now().UTC().Sub(inspection.ScheduledFor).Hours(),
		})
		j.logg.Warn(logCtx, "scheduled inspection overdue")
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":        cutoff,
		"overdue_count": len(inspections),
	})
	j.logg.Info(logCtx, "inspection overdue scan complete")
	return nil
}
