package enums

import "fmt"

// ComplianceStatus is derived from a document's expiry date at read time; it
// is never stored.
type ComplianceStatus string

const (
	ComplianceStatusValid    ComplianceStatus = "valid"
	ComplianceStatusExpiring ComplianceStatus = "expiring"
	ComplianceStatusExpired  ComplianceStatus = "expired"
)

var validComplianceStatuses = []ComplianceStatus{
	ComplianceStatusValid,
	ComplianceStatusExpiring,
	ComplianceStatusExpired,
}

// String implements fmt.Stringer.
func (c ComplianceStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ComplianceStatus.
func (c ComplianceStatus) IsValid() bool {
	for _, candidate := range validComplianceStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseComplianceStatus converts raw input into a ComplianceStatus.
func ParseComplianceStatus(value string) (ComplianceStatus, error) {
	for _, candidate := range validComplianceStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid compliance status %q", value)
}
