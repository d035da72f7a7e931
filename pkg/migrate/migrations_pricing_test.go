package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPricingCatalogMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_pricing_catalog.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no pricing catalog migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS currencies",
		"CREATE TABLE IF NOT EXISTS subscription_tiers",
		"CREATE TABLE IF NOT EXISTS tier_pricing",
		"CREATE TABLE IF NOT EXISTS addon_packs",
		"CREATE TABLE IF NOT EXISTS addon_pack_pricing",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_tier_pricing_tier_currency",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_pack_pricing_dims",
		"total_pack_price_minor BIGINT NOT NULL",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestQuotationMigrationContainsWorkflowTables(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_quotations.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no quotation migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TYPE quotation_status AS ENUM",
		"CREATE TYPE quotation_activity_type AS ENUM",
		"CREATE TABLE IF NOT EXISTS quotation_requests",
		"CREATE TABLE IF NOT EXISTS quotations",
		"CREATE TABLE IF NOT EXISTS quotation_activities",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
