package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/propdock/propdock-backend/pkg/db/models"
	"github.com/propdock/propdock-backend/pkg/logger"
)

type fakeInspectionRepo struct {
	inspections []models.Inspection
	err         error
	lastCutoff  time.Time
	called      int
}

func (f *fakeInspectionRepo) ListOverdueScheduled(ctx context.Context, cutoff time.Time, limit int) ([]models.Inspection, error) {
	f.called++
	f.lastCutoff = cutoff
	if f.err != nil {
		return nil, f.err
	}
	return f.inspections, nil
}

func newInspectionOverdueJob(t *testing.T, repo *fakeInspectionRepo) *inspectionOverdueJob {
	t.Helper()
	jobIface, err := NewInspectionOverdueJob(InspectionOverdueJobParams{
		Logger:     logger.New(logger.Options{ServiceName: "test"}),
		Repository: repo,
	})
	if err != nil {
		t.Fatalf("NewInspectionOverdueJob: %v", err)
	}
	job, ok := jobIface.(*inspectionOverdueJob)
	if !ok {
		t.Fatalf("expected inspectionOverdueJob, got %T", jobIface)
	}
	return job
}

func TestInspectionOverdueJobUsesGraceCutoff(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	repo := &fakeInspectionRepo{
		inspections: []models.Inspection{
			{ID: uuid.New(), PropertyID: uuid.New(), ScheduledFor: now.Add(-72 * time.Hour)},
		},
	}
	job := newInspectionOverdueJob(t, repo)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	expectedCutoff := now.Add(-inspectionGraceHours * time.Hour)
	if !repo.lastCutoff.Equal(expectedCutoff) {
		t.Fatalf("expected cutoff %s, got %s", expectedCutoff, repo.lastCutoff)
	}
	if repo.called != 1 {
		t.Fatalf("expected repo called once, got %d", repo.called)
	}
}

func TestInspectionOverdueJobPropagatesErrors(t *testing.T) {
	repo := &fakeInspectionRepo{err: errors.New("boom")}
	job := newInspectionOverdueJob(t, repo)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
