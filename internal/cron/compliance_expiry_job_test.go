package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/propdock/propdock-backend/pkg/db/models"
	"github.com/propdock/propdock-backend/pkg/logger"
)

type fakeComplianceRepo struct {
	docs   []models.ComplianceDocument
	err    error
	ranges [][2]time.Time
}

func (f *fakeComplianceRepo) ListExpiringWithin(ctx context.Context, from, to time.Time, limit int) ([]models.ComplianceDocument, error) {
	f.ranges = append(f.ranges, [2]time.Time{from, to})
	if f.err != nil {
		return nil, f.err
	}
	return f.docs, nil
}

func newComplianceExpiryJob(t *testing.T, repo *fakeComplianceRepo) *complianceExpiryJob {
	t.Helper()
	jobIface, err := NewComplianceExpiryJob(ComplianceExpiryJobParams{
		Logger:     logger.New(logger.Options{ServiceName: "test"}),
		Repository: repo,
	})
	if err != nil {
		t.Fatalf("NewComplianceExpiryJob: %v", err)
	}
	job, ok := jobIface.(*complianceExpiryJob)
	if !ok {
		t.Fatalf("expected complianceExpiryJob, got %T", jobIface)
	}
	return job
}

func TestComplianceExpiryJobScansBothWindows(t *testing.T) {
	now := time.Date(2026, 3, 1, 2, 0, 0, 0, time.UTC)
	repo := &fakeComplianceRepo{}
	job := newComplianceExpiryJob(t, repo)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(repo.ranges) != 2 {
		t.Fatalf("expected 2 scans, got %d", len(repo.ranges))
	}

	expired := repo.ranges[0]
	if !expired[0].Equal(now.Add(-24*time.Hour)) || !expired[1].Equal(now) {
		t.Fatalf("unexpected expired window %v", expired)
	}
	expiring := repo.ranges[1]
	if !expiring[0].Equal(now) || !expiring[1].Equal(now.Add(complianceNoticeDays*24*time.Hour)) {
		t.Fatalf("unexpected expiring window %v", expiring)
	}
}

func TestComplianceExpiryJobAggregatesScanErrors(t *testing.T) {
	repo := &fakeComplianceRepo{err: errors.New("db down")}
	job := newComplianceExpiryJob(t, repo)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if len(repo.ranges) != 2 {
		t.Fatalf("expected both scans attempted, got %d", len(repo.ranges))
	}
}
