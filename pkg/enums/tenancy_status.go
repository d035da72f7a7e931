package enums

import "fmt"

// TenancyStatus tracks an agreement between an organization and its tenants.
type TenancyStatus string

const (
	TenancyStatusActive TenancyStatus = "active"
	TenancyStatusNotice TenancyStatus = "notice"
	TenancyStatusEnded  TenancyStatus = "ended"
)

var validTenancyStatuses = []TenancyStatus{
	TenancyStatusActive,
	TenancyStatusNotice,
	TenancyStatusEnded,
}

// String implements fmt.Stringer.
func (t TenancyStatus) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TenancyStatus.
func (t TenancyStatus) IsValid() bool {
	for _, candidate := range validTenancyStatuses {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTenancyStatus converts raw input into a TenancyStatus.
func ParseTenancyStatus(value string) (TenancyStatus, error) {
	for _, candidate := range validTenancyStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tenancy status %q", value)
}
