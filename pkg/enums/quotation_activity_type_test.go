package enums

import "testing"

func TestQuotationActivityTypeIsValid(t *testing.T) {
	for _, activity := range validQuotationActivityTypes {
		if !activity.IsValid() {
			t.Errorf("expected %s to be valid", activity)
		}
	}
	if QuotationActivityType("escalated").IsValid() {
		t.Fatal("unknown activity type should be invalid")
	}
	if QuotationActivityAssigned.String() != "assigned" {
		t.Fatalf("unexpected string %q", QuotationActivityAssigned.String())
	}
}
