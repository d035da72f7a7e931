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

type fakeQuotationRepo struct {
	requests   []models.QuotationRequest
	err        error
	lastCutoff time.Time
}

func (f *fakeQuotationRepo) ListStalePending(ctx context.Context, cutoff time.Time, limit int) ([]models.QuotationRequest, error) {
	f.lastCutoff = cutoff
	if f.err != nil {
		return nil, f.err
	}
	return f.requests, nil
}

func newQuotationStaleJob(t *testing.T, repo *fakeQuotationRepo, staleDays int) *quotationStaleJob {
	t.Helper()
	jobIface, err := NewQuotationStaleJob(QuotationStaleJobParams{
		Logger:     logger.New(logger.Options{ServiceName: "test"}),
		Repository: repo,
		StaleDays:  staleDays,
	})
	if err != nil {
		t.Fatalf("NewQuotationStaleJob: %v", err)
	}
	job, ok := jobIface.(*quotationStaleJob)
	if !ok {
		t.Fatalf("expected quotationStaleJob, got %T", jobIface)
	}
	return job
}

func TestQuotationStaleJobUsesConfiguredWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 4, 0, 0, 0, time.UTC)
	repo := &fakeQuotationRepo{
		requests: []models.QuotationRequest{
			{ID: uuid.New(), OrganizationID: uuid.New(), CreatedAt: now.AddDate(0, 0, -20)},
		},
	}
	job := newQuotationStaleJob(t, repo, 14)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	expectedCutoff := now.Add(-14 * 24 * time.Hour)
	if !repo.lastCutoff.Equal(expectedCutoff) {
		t.Fatalf("expected cutoff %s, got %s", expectedCutoff, repo.lastCutoff)
	}
}

func TestQuotationStaleJobDefaultsWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 4, 0, 0, 0, time.UTC)
	repo := &fakeQuotationRepo{}
	job := newQuotationStaleJob(t, repo, 0)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	expectedCutoff := now.Add(-quotationStaleDays * 24 * time.Hour)
	if !repo.lastCutoff.Equal(expectedCutoff) {
		t.Fatalf("expected cutoff %s, got %s", expectedCutoff, repo.lastCutoff)
	}
}

func TestQuotationStaleJobPropagatesErrors(t *testing.T) {
	repo := &fakeQuotationRepo{err: errors.New("boom")}
	job := newQuotationStaleJob(t, repo, 0)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
